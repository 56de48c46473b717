package handler

import (
	"errors"
	"net/http"
	"strconv"

	"clubbot/internal/service"

	"github.com/gin-gonic/gin"
)

func ListWarnings(moderation *service.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID, err := strconv.ParseInt(c.Param("guildID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guild ID"})
			return
		}
		userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
			return
		}

		warnings, err := moderation.WarningsFor(guildID, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list warnings"})
			return
		}
		c.JSON(http.StatusOK, warnings)
	}
}

func WarnMember(moderation *service.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID, err := strconv.ParseInt(c.Param("guildID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guild ID"})
			return
		}

		var input struct {
			UserID      int64  `json:"user_id"`
			ModeratorID int64  `json:"moderator_id"`
			Reason      string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Reason == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
			return
		}
		if input.ModeratorID == 0 {
			if accountID, exists := c.Get("accountID"); exists {
				input.ModeratorID = int64(accountID.(uint))
			}
		}

		warning, err := moderation.Warn(guildID, input.UserID, input.ModeratorID, input.Reason)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record warning"})
			return
		}
		c.JSON(http.StatusCreated, warning)
	}
}

func ClearWarnings(moderation *service.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID, err := strconv.ParseInt(c.Param("guildID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guild ID"})
			return
		}
		userID, err := strconv.ParseInt(c.Param("userID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
			return
		}

		var moderatorID int64
		if accountID, exists := c.Get("accountID"); exists {
			moderatorID = int64(accountID.(uint))
		}

		cleared, err := moderation.ClearWarnings(guildID, userID, moderatorID, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to clear warnings"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": cleared})
	}
}

func ListModerationLogs(moderation *service.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		guildID, err := strconv.ParseInt(c.Param("guildID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guild ID"})
			return
		}

		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, convErr := strconv.Atoi(raw)
			if convErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
				return
			}
			limit = n
		}

		logs, err := moderation.RecentLogs(guildID, limit)
		if err != nil {
			if errors.Is(err, service.ErrInvalidLimit) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list moderation logs"})
			return
		}
		c.JSON(http.StatusOK, logs)
	}
}

func GetModerationLog(moderation *service.ModerationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid log ID"})
			return
		}

		entry, err := moderation.LogByID(uint(id))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch moderation log"})
			return
		}
		if entry == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "moderation log not found"})
			return
		}
		c.JSON(http.StatusOK, entry)
	}
}
