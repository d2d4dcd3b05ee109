package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/interfaces/http/middleware"
	"saldoku.backend/internal/interfaces/http/response"
)

type WalletService interface {
	ResolveOwned(ctx context.Context, userID, walletID uuid.UUID) (*entities.Wallet, error)
	CreateSecondaryWallet(ctx context.Context, userID uuid.UUID, input *entities.CreateWalletInput) (*entities.Wallet, error)
	GetWallets(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error)
	DeleteWallet(ctx context.Context, userID, walletID uuid.UUID) error
}

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletUsecase WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletUsecase WalletService) *WalletHandler {
	return &WalletHandler{walletUsecase: walletUsecase}
}

// ListWallets lists the caller's wallets with balances
// GET /api/v1/wallets
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	wallets, err := h.walletUsecase.GetWallets(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// GetWallet returns one of the caller's wallets
// GET /api/v1/wallets/:id
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid wallet ID"))
		return
	}

	wallet, err := h.walletUsecase.ResolveOwned(c.Request.Context(), userID, walletID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet})
}

// CreateWallet creates an additional named wallet
// POST /api/v1/wallets
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.CreateWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	wallet, err := h.walletUsecase.CreateSecondaryWallet(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"wallet": wallet})
}

// DeleteWallet soft deletes an empty secondary wallet
// DELETE /api/v1/wallets/:id
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid wallet ID"))
		return
	}

	if err := h.walletUsecase.DeleteWallet(c.Request.Context(), userID, walletID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "wallet deleted"})
}
