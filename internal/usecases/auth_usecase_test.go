package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/usecases"
	"saldoku.backend/pkg/crypto"
	"saldoku.backend/pkg/jwt"
)

func newAuthFixture() (*usecases.AuthUsecase, *MockUnitOfWork, *MockUserRepository, *MockWalletRepository) {
	mockUOW := new(MockUnitOfWork)
	mockUserRepo := new(MockUserRepository)
	mockWalletRepo := new(MockWalletRepository)
	walletUC := usecases.NewWalletUsecase(mockWalletRepo, "IDR")
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	uc := usecases.NewAuthUsecase(mockUOW, mockUserRepo, walletUC, jwtService, nil, 7*24*time.Hour, usecases.NewAuditSink(nil))
	return uc, mockUOW, mockUserRepo, mockWalletRepo
}

func TestRegister_CreatesUserAndMainWallet(t *testing.T) {
	uc, mockUOW, mockUserRepo, mockWalletRepo := newAuthFixture()

	mockUserRepo.On("GetByEmail", mock.Anything, "budi@example.com").Return(nil, domainerrors.ErrNotFound)
	mockUOW.On("Do", mock.Anything, mock.Anything).Return(nil)
	mockUserRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).Return(nil)
	mockWalletRepo.On("Create", mock.Anything, mock.MatchedBy(func(w *entities.Wallet) bool {
		return w.WalletType == entities.WalletTypeMain && w.Balance == 0
	})).Return(nil)

	resp, err := uc.Register(context.Background(), &entities.RegisterInput{
		Email:    "Budi@Example.com",
		Name:     "Budi",
		Password: "supersecret1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "budi@example.com", resp.User.Email)
	assert.Equal(t, entities.UserRoleUser, resp.User.Role)
	assert.Equal(t, entities.VerificationPending, resp.User.VerificationStatus)
	mockWalletRepo.AssertExpectations(t)
	mockUserRepo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	uc, _, mockUserRepo, mockWalletRepo := newAuthFixture()

	existing := &entities.User{ID: uuid.New(), Email: "budi@example.com"}
	mockUserRepo.On("GetByEmail", mock.Anything, "budi@example.com").Return(existing, nil)

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Email:    "budi@example.com",
		Name:     "Budi",
		Password: "supersecret1",
	})

	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	mockWalletRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLogin_Success(t *testing.T) {
	uc, _, mockUserRepo, _ := newAuthFixture()

	hash, err := crypto.HashPassword("supersecret1")
	assert.NoError(t, err)

	user := &entities.User{ID: uuid.New(), Email: "budi@example.com", PasswordHash: hash, Role: entities.UserRoleUser}
	mockUserRepo.On("GetByEmail", mock.Anything, "budi@example.com").Return(user, nil)

	resp, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "budi@example.com",
		Password: "supersecret1",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, mockUserRepo, _ := newAuthFixture()

	hash, _ := crypto.HashPassword("supersecret1")
	user := &entities.User{ID: uuid.New(), Email: "budi@example.com", PasswordHash: hash}
	mockUserRepo.On("GetByEmail", mock.Anything, "budi@example.com").Return(user, nil)

	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "budi@example.com",
		Password: "wrongpassword",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	uc, _, mockUserRepo, _ := newAuthFixture()

	mockUserRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domainerrors.ErrNotFound)

	_, err := uc.Login(context.Background(), &entities.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestRefreshToken_RereadsRole(t *testing.T) {
	uc, _, mockUserRepo, _ := newAuthFixture()

	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()
	pair, err := jwtService.GenerateTokenPair(userID, "budi@example.com", string(entities.UserRoleUser))
	assert.NoError(t, err)

	promoted := &entities.User{ID: userID, Email: "budi@example.com", Role: entities.UserRoleAdmin}
	mockUserRepo.On("GetByID", mock.Anything, userID).Return(promoted, nil)

	newPair, err := uc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(newPair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, string(entities.UserRoleAdmin), claims.Role)
}

func TestRefreshToken_InvalidToken(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	_, err := uc.RefreshToken(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	uc, _, mockUserRepo, _ := newAuthFixture()

	hash, _ := crypto.HashPassword("supersecret1")
	user := &entities.User{ID: uuid.New(), PasswordHash: hash}
	mockUserRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := uc.ChangePassword(context.Background(), user.ID, &entities.ChangePasswordInput{
		CurrentPassword: "wrongpassword",
		NewPassword:     "newsecret123",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	mockUserRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
