package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"clubbot/internal/model"
	"clubbot/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims issued by the login handler.
type Claims struct {
	AccountID    uint   `json:"account_id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	TokenVersion int64  `json:"token_version"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the JWT and attaches account info to the
// context. The token version is checked against the account row so a
// password change invalidates outstanding tokens.
func AuthMiddleware(st *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := getToken(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		account, err := st.AccountByID(claims.AccountID)
		if err != nil || account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "account not found"})
			c.Abort()
			return
		}

		if account.TokenVersion != claims.TokenVersion {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired, please login again"})
			c.Abort()
			return
		}

		c.Set("accountID", claims.AccountID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// RequireHR admits only HR accounts.
func RequireHR() gin.HandlerFunc {
	return requireRole(func(role string) bool {
		return role == model.AccountRoleHR
	}, model.AccountRoleHR)
}

// RequireStaff admits staff accounts; HR passes staff checks.
func RequireStaff() gin.HandlerFunc {
	return requireRole(func(role string) bool {
		return role == model.AccountRoleStaff || role == model.AccountRoleHR
	}, model.AccountRoleStaff)
}

func requireRole(allowed func(string) bool, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		accountRole, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "account role not found in context"})
			c.Abort()
			return
		}

		if !allowed(accountRole.(string)) {
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("requires %s role", requiredRole)})
			c.Abort()
			return
		}

		c.Next()
	}
}

func getToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1], nil
		}
	}

	// Try query parameter (used by the websocket feed)
	token := c.Query("token")
	if token != "" {
		return token, nil
	}

	return "", errors.New("authorization token required")
}

func parseToken(tokenString, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// CORSMiddleware sets up CORS headers for the dashboard frontend.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
