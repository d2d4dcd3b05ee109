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

type SavingsService interface {
	CreatePlan(ctx context.Context, userID uuid.UUID, input *entities.CreateSavingsPlanInput) (*entities.SavingsPlan, error)
	GetPlan(ctx context.Context, userID, planID uuid.UUID) (*entities.SavingsPlan, error)
	GetPlans(ctx context.Context, userID uuid.UUID) ([]*entities.SavingsPlan, error)
	UpdatePlan(ctx context.Context, userID, planID uuid.UUID, input *entities.UpdateSavingsPlanInput) (*entities.SavingsPlan, error)
	DeletePlan(ctx context.Context, userID, planID uuid.UUID) error
	Move(ctx context.Context, userID, planID uuid.UUID, input *entities.SavingsMovementInput) (*entities.SavingsPlan, error)
}

// SavingsHandler handles savings plan endpoints
type SavingsHandler struct {
	savingsUsecase SavingsService
}

// NewSavingsHandler creates a new savings handler
func NewSavingsHandler(savingsUsecase SavingsService) *SavingsHandler {
	return &SavingsHandler{savingsUsecase: savingsUsecase}
}

// CreatePlan creates a savings plan
// POST /api/v1/savings
func (h *SavingsHandler) CreatePlan(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.CreateSavingsPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	plan, err := h.savingsUsecase.CreatePlan(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"plan": plan})
}

// ListPlans lists the caller's savings plans
// GET /api/v1/savings
func (h *SavingsHandler) ListPlans(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	plans, err := h.savingsUsecase.GetPlans(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plans": plans})
}

// GetPlan returns one of the caller's savings plans
// GET /api/v1/savings/:id
func (h *SavingsHandler) GetPlan(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid plan ID"))
		return
	}

	plan, err := h.savingsUsecase.GetPlan(c.Request.Context(), userID, planID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}

// UpdatePlan updates plan metadata
// PATCH /api/v1/savings/:id
func (h *SavingsHandler) UpdatePlan(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid plan ID"))
		return
	}

	var input entities.UpdateSavingsPlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	plan, err := h.savingsUsecase.UpdatePlan(c.Request.Context(), userID, planID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}

// DeletePlan soft deletes an empty savings plan
// DELETE /api/v1/savings/:id
func (h *SavingsHandler) DeletePlan(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid plan ID"))
		return
	}

	if err := h.savingsUsecase.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "plan deleted"})
}

// Move tops up or redeems a savings plan
// POST /api/v1/savings/:id/movements
func (h *SavingsHandler) Move(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid plan ID"))
		return
	}

	var input entities.SavingsMovementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	plan, err := h.savingsUsecase.Move(c.Request.Context(), userID, planID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"plan": plan})
}
