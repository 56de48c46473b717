package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clubbot/internal/model"
	"clubbot/internal/service"

	"github.com/gin-gonic/gin"
)

func ListContributions(contributions *service.ContributionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = n
		}

		if raw := c.Query("user_id"); raw != "" {
			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
				return
			}
			list, err := contributions.UserContributions(userID, limit)
			if err != nil {
				writeListError(c, err)
				return
			}
			c.JSON(http.StatusOK, list)
			return
		}

		list, err := contributions.AllContributions(limit)
		if err != nil {
			writeListError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func PendingContributions(contributions *service.ContributionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := contributions.PendingContributions()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pending contributions"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func SubmitContribution(contributions *service.ContributionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			UserID      int64   `json:"user_id"`
			Username    string  `json:"username"`
			Description string  `json:"description"`
			Links       *string `json:"links"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Description == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "description is required"})
			return
		}

		contribution, err := contributions.Submit(input.UserID, input.Username, input.Description, input.Links)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record contribution"})
			return
		}
		c.JSON(http.StatusCreated, contribution)
	}
}

func ApproveContribution(contributions *service.ContributionService) gin.HandlerFunc {
	return reviewContribution(contributions, true)
}

func RejectContribution(contributions *service.ContributionService) gin.HandlerFunc {
	return reviewContribution(contributions, false)
}

func reviewContribution(contributions *service.ContributionService, approve bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contribution ID"})
			return
		}

		var input struct {
			ReviewerID int64 `json:"reviewer_id"`
		}
		// The body is optional; a missing reviewer falls back to the
		// authenticated account id.
		_ = c.ShouldBindJSON(&input)
		if input.ReviewerID == 0 {
			if accountID, exists := c.Get("accountID"); exists {
				input.ReviewerID = int64(accountID.(uint))
			}
		}

		var updated *model.Contribution
		if approve {
			updated, err = contributions.Approve(uint(id), input.ReviewerID)
		} else {
			updated, err = contributions.Reject(uint(id), input.ReviewerID)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update contribution"})
			return
		}
		if updated == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "contribution not found"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

func writeListError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrInvalidLimit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list contributions"})
}
