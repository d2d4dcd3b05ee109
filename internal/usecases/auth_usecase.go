package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/domain/repositories"
	"saldoku.backend/pkg/crypto"
	"saldoku.backend/pkg/jwt"
	"saldoku.backend/pkg/redis"
	"saldoku.backend/pkg/utils"
)

// AuthUsecase handles registration, login and token refresh. A new
// account and its MAIN wallet are created in one unit of work. An
// encrypted session is kept in Redis per user; logout removes it and
// refresh requires it to still exist.
type AuthUsecase struct {
	uow           repositories.UnitOfWork
	userRepo      repositories.UserRepository
	walletUsecase *WalletUsecase
	jwtService    *jwt.JWTService
	sessionStore  *redis.SessionStore
	sessionExpiry time.Duration
	auditSink     *AuditSink
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	uow repositories.UnitOfWork,
	userRepo repositories.UserRepository,
	walletUsecase *WalletUsecase,
	jwtService *jwt.JWTService,
	sessionStore *redis.SessionStore,
	sessionExpiry time.Duration,
	auditSink *AuditSink,
) *AuthUsecase {
	return &AuthUsecase{
		uow:           uow,
		userRepo:      userRepo,
		walletUsecase: walletUsecase,
		jwtService:    jwtService,
		sessionStore:  sessionStore,
		sessionExpiry: sessionExpiry,
		auditSink:     auditSink,
	}
}

func (u *AuthUsecase) saveSession(ctx context.Context, user *entities.User, tokens *jwt.TokenPair) {
	if u.sessionStore == nil {
		return
	}
	// Session loss only means the user has to log in again
	_ = u.sessionStore.CreateSession(ctx, user.ID.String(), &redis.SessionData{
		UserID:       user.ID.String(),
		Role:         string(user.Role),
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, u.sessionExpiry)
}

// Register creates a new user together with their MAIN wallet
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := u.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, domainerrors.Conflict("email already registered")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entities.User{
		ID:                 utils.GenerateUUIDv7(),
		Email:              email,
		Name:               input.Name,
		PasswordHash:       hash,
		Role:               entities.UserRoleUser,
		IsVerified:         false,
		VerificationStatus: entities.VerificationPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.userRepo.Create(ctx, user); err != nil {
			return err
		}
		_, err := u.walletUsecase.CreateWallet(ctx, user.ID, "Main", entities.WalletTypeMain)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.auditSink.Notify(ctx, AuditEvent{
		UserID: &user.ID,
		Action: entities.ActionUserRegistered,
		Entity: "user:" + user.ID.String(),
		Level:  entities.LogLevelInfo,
	})

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	u.saveSession(ctx, user, tokens)

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Login authenticates a user by email and password
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	u.saveSession(ctx, user, tokens)

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The role claim is re-read from storage so a role change takes effect
// on the next refresh, and a logged-out session refuses to refresh.
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	if u.sessionStore != nil {
		if _, err := u.sessionStore.GetSession(ctx, claims.UserID.String()); err != nil {
			return nil, domainerrors.ErrUnauthorized
		}
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	u.saveSession(ctx, user, tokens)
	return tokens, nil
}

// Logout removes the user's session
func (u *AuthUsecase) Logout(ctx context.Context, userID uuid.UUID) error {
	if u.sessionStore == nil {
		return nil
	}
	return u.sessionStore.DeleteSession(ctx, userID.String())
}

// GetUserByID returns the user's profile
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// ChangePassword changes the user's password after verifying the
// current one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	hash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return u.userRepo.Update(ctx, user)
}
