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

type TopupService interface {
	CreateRequest(ctx context.Context, userID uuid.UUID, input *entities.CreateTopupInput) (*entities.TopupRequest, error)
	GetMyRequests(ctx context.Context, userID uuid.UUID) ([]*entities.TopupRequest, error)
	GetPendingRequests(ctx context.Context, callerRole entities.UserRole) ([]*entities.TopupRequest, error)
	Settle(ctx context.Context, adminID uuid.UUID, adminRole entities.UserRole, requestID uuid.UUID, input *entities.SettleTopupInput) (*entities.TopupRequest, error)
}

// TopupHandler handles top-up request endpoints
type TopupHandler struct {
	topupUsecase TopupService
}

// NewTopupHandler creates a new top-up handler
func NewTopupHandler(topupUsecase TopupService) *TopupHandler {
	return &TopupHandler{topupUsecase: topupUsecase}
}

// CreateRequest files a top-up request
// POST /api/v1/topups
func (h *TopupHandler) CreateRequest(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.CreateTopupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.topupUsecase.CreateRequest(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"request": request})
}

// ListMyRequests lists the caller's top-up requests
// GET /api/v1/topups
func (h *TopupHandler) ListMyRequests(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	requests, err := h.topupUsecase.GetMyRequests(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// ListPending lists all pending top-up requests for admins
// GET /api/v1/admin/topups/pending
func (h *TopupHandler) ListPending(c *gin.Context) {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	requests, err := h.topupUsecase.GetPendingRequests(c.Request.Context(), role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"requests": requests})
}

// Settle applies an admin decision to a pending request
// POST /api/v1/admin/topups/:id/settle
func (h *TopupHandler) Settle(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	requestID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid request ID"))
		return
	}

	var input entities.SettleTopupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	request, err := h.topupUsecase.Settle(c.Request.Context(), adminID, role, requestID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"request": request})
}
