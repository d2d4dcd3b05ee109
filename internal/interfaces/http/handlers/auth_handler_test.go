package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/interfaces/http/middleware"
	"saldoku.backend/pkg/jwt"
)

type authServiceStub struct {
	registerFn       func(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
	loginFn          func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	refreshFn        func(ctx context.Context, refreshToken string) (*jwt.TokenPair, error)
	logoutFn         func(ctx context.Context, userID uuid.UUID) error
	getUserFn        func(ctx context.Context, id uuid.UUID) (*entities.User, error)
	changePasswordFn func(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error
}

func (s authServiceStub) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	return s.registerFn(ctx, input)
}
func (s authServiceStub) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.loginFn(ctx, input)
}
func (s authServiceStub) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}
func (s authServiceStub) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.logoutFn(ctx, userID)
}
func (s authServiceStub) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.getUserFn(ctx, id)
}
func (s authServiceStub) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, userID, input)
}

func withUser(userID uuid.UUID, role entities.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Set(middleware.UserRoleKey, role)
		c.Next()
	}
}

func newJSONBody(s string) *bytes.Reader {
	return bytes.NewReader([]byte(s))
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_RegisterAndLoginMappings(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	service := authServiceStub{
		registerFn: func(_ context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
			if input.Email == "taken@example.com" {
				return nil, domainerrors.ErrAlreadyExists
			}
			return &entities.AuthResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         &entities.User{ID: userID, Email: input.Email, Role: entities.UserRoleUser},
			}, nil
		},
		loginFn: func(_ context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
			if input.Password != "correct-horse" {
				return nil, domainerrors.ErrInvalidCredentials
			}
			return &entities.AuthResponse{AccessToken: "access", User: &entities.User{ID: userID}}, nil
		},
	}

	h := NewAuthHandler(service)
	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	w := postJSON(r, "/auth/register", `{"email":"budi@example.com","name":"Budi","password":"secret-password"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", w.Code, w.Body.String())
	}

	// Duplicate email maps to conflict
	w = postJSON(r, "/auth/register", `{"email":"taken@example.com","name":"Budi","password":"secret-password"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
	}

	// Binding failure: password too short
	w = postJSON(r, "/auth/register", `{"email":"budi@example.com","name":"Budi","password":"short"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/login", `{"email":"budi@example.com","password":"correct-horse"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	// Wrong password maps to unauthorized
	w = postJSON(r, "/auth/login", `{"email":"budi@example.com","password":"wrong-password"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAuthHandler_RefreshAndLogout(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	service := authServiceStub{
		refreshFn: func(_ context.Context, refreshToken string) (*jwt.TokenPair, error) {
			if refreshToken == "stale" {
				return nil, domainerrors.ErrUnauthorized
			}
			return &jwt.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil
		},
		logoutFn: func(_ context.Context, gotID uuid.UUID) error {
			if gotID != userID {
				t.Fatalf("logout called with wrong user id")
			}
			return nil
		},
	}

	h := NewAuthHandler(service)
	r := gin.New()
	r.POST("/auth/refresh", h.RefreshToken)
	r.POST("/auth/logout", withUser(userID, entities.UserRoleUser), h.Logout)

	w := postJSON(r, "/auth/refresh", `{"refreshToken":"valid"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/refresh", `{"refreshToken":"stale"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}

	// Missing token fails binding
	w = postJSON(r, "/auth/refresh", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/logout", ``)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAuthHandler_MeRequiresAuthContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	service := authServiceStub{
		getUserFn: func(_ context.Context, id uuid.UUID) (*entities.User, error) {
			return &entities.User{ID: id, Email: "budi@example.com"}, nil
		},
	}

	h := NewAuthHandler(service)
	r := gin.New()
	r.GET("/auth/me", h.Me)
	r.GET("/authed/me", withUser(userID, entities.UserRoleUser), h.Me)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth context, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/authed/me", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	service := authServiceStub{
		changePasswordFn: func(_ context.Context, _ uuid.UUID, input *entities.ChangePasswordInput) error {
			if input.CurrentPassword == "wrong-password" {
				return domainerrors.ErrInvalidCredentials
			}
			return nil
		},
	}

	h := NewAuthHandler(service)
	r := gin.New()
	r.POST("/auth/change-password", withUser(userID, entities.UserRoleUser), h.ChangePassword)

	w := postJSON(r, "/auth/change-password", `{"currentPassword":"old-password","newPassword":"new-password-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", w.Code, w.Body.String())
	}

	w = postJSON(r, "/auth/change-password", `{"currentPassword":"wrong-password","newPassword":"new-password-1"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d body=%s", w.Code, w.Body.String())
	}
}
