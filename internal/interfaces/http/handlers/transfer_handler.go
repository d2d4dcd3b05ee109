package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/interfaces/http/middleware"
	"saldoku.backend/internal/interfaces/http/response"
	"saldoku.backend/pkg/utils"
)

type TransferService interface {
	Transfer(ctx context.Context, callerID uuid.UUID, input *entities.TransferInput) (*entities.Transaction, error)
	GetTransaction(ctx context.Context, callerID, transactionID uuid.UUID) (*entities.Transaction, error)
	GetHistory(ctx context.Context, callerID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error)
}

// TransferHandler handles transfer and transaction history endpoints
type TransferHandler struct {
	transferUsecase TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferUsecase TransferService) *TransferHandler {
	return &TransferHandler{transferUsecase: transferUsecase}
}

// Transfer executes a peer-to-peer transfer
// POST /api/v1/transfers
func (h *TransferHandler) Transfer(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	transaction, err := h.transferUsecase.Transfer(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": transaction})
}

// GetTransaction returns one transaction the caller participated in
// GET /api/v1/transactions/:id
func (h *TransferHandler) GetTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid transaction ID"))
		return
	}

	transaction, err := h.transferUsecase.GetTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transaction": transaction})
}

// ListTransactions lists the caller's transaction history
// GET /api/v1/transactions
func (h *TransferHandler) ListTransactions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	params := utils.NewPageRequest(page, limit, utils.DefaultPageSize, utils.MaxPageSize)

	transactions, total, err := h.transferUsecase.GetHistory(c.Request.Context(), userID, params.Size, params.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": transactions,
		"pagination":   params.Meta(total),
	})
}
