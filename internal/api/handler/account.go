package handler

import (
	"errors"
	"net/http"
	"time"

	"clubbot/internal/api/middleware"
	"clubbot/internal/model"
	"clubbot/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func Login(st *store.Store, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		account, err := st.AccountByUsername(input.Username)
		if err != nil || account == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		expirationTime := time.Now().Add(24 * time.Hour)
		claims := &middleware.Claims{
			AccountID:    account.ID,
			Username:     account.Username,
			Role:         account.Role,
			TokenVersion: account.TokenVersion,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(expirationTime),
			},
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte(secret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token"})
			return
		}

		now := time.Now()
		account.LastLogin = &now
		if err := st.SaveAccount(account); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update account"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": tokenString, "role": account.Role})
	}
}

func ChangePassword(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CurrentPassword string `json:"current_password"`
			NewPassword     string `json:"new_password"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		accountID, exists := c.Get("accountID")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		account, err := st.AccountByID(accountID.(uint))
		if err != nil || account == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(input.CurrentPassword)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Current password incorrect"})
			return
		}

		hashedPassword, err := model.HashPassword(input.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		// Bumping the token version invalidates all existing tokens.
		account.Password = hashedPassword
		account.TokenVersion++
		if err := st.SaveAccount(account); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
	}
}

func CreateAccount(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Role     string `json:"role"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Role != model.AccountRoleHR && input.Role != model.AccountRoleStaff {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be hr or staff"})
			return
		}

		account := model.Account{
			Username: input.Username,
			Password: input.Password, // BeforeCreate hook hashes this
			Role:     input.Role,
		}

		if err := st.CreateAccount(&account); err != nil {
			if errors.Is(err, store.ErrDuplicateName) {
				c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create account"})
			return
		}
		c.JSON(http.StatusCreated, account)
	}
}

func ListAccounts(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		accounts, err := st.ListAccounts()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
			return
		}
		c.JSON(http.StatusOK, accounts)
	}
}
