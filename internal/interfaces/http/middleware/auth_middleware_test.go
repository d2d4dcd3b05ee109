package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"saldoku.backend/internal/domain/entities"
	"saldoku.backend/pkg/jwt"
)

func newAuthTestRouter(t *testing.T, jwtService *jwt.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		userID, _ := GetUserID(c)
		role, _ := GetUserRole(c)
		email, _ := GetUserEmail(c)
		c.JSON(http.StatusOK, gin.H{"userId": userID, "role": role, "email": email})
	})
	return r
}

func TestAuthMiddleware_HeaderValidation(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	r := newAuthTestRouter(t, jwtService)

	// No header
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Not a bearer token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, "Basic abc123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+"not.a.token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Invalid token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expiredService := jwt.NewJWTService("test-secret", -time.Minute, -time.Minute)
	pair, err := expiredService.GenerateTokenPair(uuid.New(), "budi@example.com", "USER")
	require.NoError(t, err)

	r := newAuthTestRouter(t, jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour))
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddleware_ValidTokenPopulatesContext(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "budi@example.com", "ADMIN")
	require.NoError(t, err)

	r := newAuthTestRouter(t, jwtService)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), userID.String())
	require.Contains(t, w.Body.String(), "ADMIN")
	require.Contains(t, w.Body.String(), "budi@example.com")
}

func TestAuthMiddleware_UnknownRoleClaimDemotedToUser(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour)
	pair, err := jwtService.GenerateTokenPair(uuid.New(), "budi@example.com", "OVERLORD")
	require.NoError(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthMiddleware(jwtService), func(c *gin.Context) {
		role, ok := GetUserRole(c)
		require.True(t, ok)
		require.Equal(t, entities.UserRoleUser, role)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set(AuthorizationHeader, BearerPrefix+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_Matrix(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(role entities.UserRole, gate gin.HandlerFunc, withRole bool) int {
		r := gin.New()
		r.GET("/admin", func(c *gin.Context) {
			if withRole {
				c.Set(UserRoleKey, role)
			}
			c.Next()
		}, gate, func(c *gin.Context) { c.Status(http.StatusOK) })
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	require.Equal(t, http.StatusOK, serve(entities.UserRoleAdmin, RequireAdmin(), true))
	require.Equal(t, http.StatusOK, serve(entities.UserRoleSuperAdmin, RequireAdmin(), true))
	require.Equal(t, http.StatusForbidden, serve(entities.UserRoleUser, RequireAdmin(), true))
	require.Equal(t, http.StatusForbidden, serve(entities.UserRoleAdmin, RequireSuperAdmin(), true))
	require.Equal(t, http.StatusOK, serve(entities.UserRoleSuperAdmin, RequireSuperAdmin(), true))
	// No role in context at all
	require.Equal(t, http.StatusUnauthorized, serve(entities.UserRoleAdmin, RequireAdmin(), false))
}
