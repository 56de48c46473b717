package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clubbot/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func requestWithRole(t *testing.T, role string, guard gin.HandlerFunc) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/check", func(c *gin.Context) {
		c.Set("role", role)
	}, guard, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRequireHR(t *testing.T) {
	assert.Equal(t, http.StatusOK, requestWithRole(t, model.AccountRoleHR, RequireHR()))
	assert.Equal(t, http.StatusForbidden, requestWithRole(t, model.AccountRoleStaff, RequireHR()))
}

func TestRequireStaffAdmitsHR(t *testing.T) {
	assert.Equal(t, http.StatusOK, requestWithRole(t, model.AccountRoleStaff, RequireStaff()))
	assert.Equal(t, http.StatusOK, requestWithRole(t, model.AccountRoleHR, RequireStaff()))
	assert.Equal(t, http.StatusForbidden, requestWithRole(t, "member", RequireStaff()))
}
