package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clubbot/internal/service"
	"clubbot/internal/store"

	"github.com/gin-gonic/gin"
)

func ListRoles(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		overview, err := roles.Overview()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list roles"})
			return
		}
		c.JSON(http.StatusOK, overview)
	}
}

func CreateRole(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        string  `json:"name"`
			Description *string `json:"description"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		role, err := roles.CreateRole(input.Name, input.Description)
		if err != nil {
			if errors.Is(err, store.ErrDuplicateName) {
				c.JSON(http.StatusConflict, gin.H{"error": "a role with that name already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create role"})
			return
		}

		c.JSON(http.StatusCreated, role)
	}
}

func DeleteRole(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role ID"})
			return
		}

		deleted, err := roles.DeleteRole(uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete role"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "role deleted, all member assignments removed"})
	}
}

func AssignRole(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role ID"})
			return
		}

		var input struct {
			UserID     int64 `json:"user_id"`
			AssignedBy int64 `json:"assigned_by"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.AssignedBy == 0 {
			if accountID, exists := c.Get("accountID"); exists {
				input.AssignedBy = int64(accountID.(uint))
			}
		}

		role, err := roles.RoleByID(uint(roleID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up role"})
			return
		}
		if role == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}

		assignment, err := roles.AssignRole(input.UserID, role.ID, input.AssignedBy)
		if err != nil {
			if errors.Is(err, store.ErrAlreadyAssigned) {
				c.JSON(http.StatusConflict, gin.H{"error": "member already has this role"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign role"})
			return
		}

		c.JSON(http.StatusCreated, assignment)
	}
}

func RemoveRole(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role ID"})
			return
		}
		userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
			return
		}

		removed, err := roles.RemoveRole(userID, uint(roleID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove role"})
			return
		}
		if !removed {
			c.JSON(http.StatusNotFound, gin.H{"error": "assignment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "role removed from member"})
	}
}

func RoleMembers(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role ID"})
			return
		}

		role, err := roles.RoleByID(uint(roleID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up role"})
			return
		}
		if role == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "role not found"})
			return
		}

		members, err := roles.RoleMembers(role.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list role members"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": role, "member_ids": members})
	}
}

func MemberRoles(roles *service.RoleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
			return
		}

		memberRoles, err := roles.MemberRoles(userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list member roles"})
			return
		}
		c.JSON(http.StatusOK, memberRoles)
	}
}
