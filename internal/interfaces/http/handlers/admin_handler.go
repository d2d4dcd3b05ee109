package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
	domainerrors "saldoku.backend/internal/domain/errors"
	"saldoku.backend/internal/domain/repositories"
	"saldoku.backend/internal/interfaces/http/middleware"
	"saldoku.backend/internal/interfaces/http/response"
	"saldoku.backend/internal/usecases"
	"saldoku.backend/pkg/utils"
)

// AdminHandler handles admin dashboard endpoints
type AdminHandler struct {
	userRepo        repositories.UserRepository
	walletRepo      repositories.WalletRepository
	transactionRepo repositories.TransactionRepository
	logRepo         repositories.LogRepository
	auditSink       *usecases.AuditSink
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	userRepo repositories.UserRepository,
	walletRepo repositories.WalletRepository,
	transactionRepo repositories.TransactionRepository,
	logRepo repositories.LogRepository,
	auditSink *usecases.AuditSink,
) *AdminHandler {
	return &AdminHandler{
		userRepo:        userRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		logRepo:         logRepo,
		auditSink:       auditSink,
	}
}

// Stats returns aggregate dashboard counters
// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	userCount, err := h.userRepo.Count(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	walletCount, err := h.walletRepo.Count(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	transactionCount, err := h.transactionRepo.Count(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	totalBalance, err := h.walletRepo.TotalBalance(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":        userCount,
		"wallets":      walletCount,
		"transactions": transactionCount,
		"totalBalance": totalBalance,
	})
}

// ListUsers lists all users, optionally filtered by a search term
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	search := c.Query("search")
	users, err := h.userRepo.List(c.Request.Context(), search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"users": users})
}

// UpdateVerification applies a verification decision to a user
// PUT /api/v1/admin/users/:id/verification
func (h *AdminHandler) UpdateVerification(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.UpdateVerificationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if _, err := h.userRepo.GetByID(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userRepo.UpdateVerification(c.Request.Context(), userID, input.Status); err != nil {
		response.Error(c, err)
		return
	}

	if adminID, ok := middleware.GetUserID(c); ok {
		h.auditSink.Notify(c.Request.Context(), usecases.AuditEvent{
			UserID:  &adminID,
			Action:  entities.ActionUserVerified,
			Entity:  "user:" + userID.String(),
			Details: "verification set to " + string(input.Status),
			Level:   entities.LogLevelInfo,
		})
	}

	response.Success(c, http.StatusOK, gin.H{"message": "verification updated", "status": input.Status})
}

// UpdateRole changes a user's role. Routed behind the super admin gate.
// PUT /api/v1/admin/users/:id/role
func (h *AdminHandler) UpdateRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.UpdateRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if _, err := h.userRepo.GetByID(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userRepo.UpdateRole(c.Request.Context(), userID, input.Role); err != nil {
		response.Error(c, err)
		return
	}

	if adminID, ok := middleware.GetUserID(c); ok {
		h.auditSink.Notify(c.Request.Context(), usecases.AuditEvent{
			UserID:  &adminID,
			Action:  entities.ActionUserRoleSet,
			Entity:  "user:" + userID.String(),
			Details: "role set to " + string(input.Role),
			Level:   entities.LogLevelWarning,
		})
	}

	response.Success(c, http.StatusOK, gin.H{"message": "role updated", "role": input.Role})
}

// ListTransactions lists all transactions across users
// GET /api/v1/admin/transactions
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	params := utils.NewPageRequest(page, limit, 20, 100)

	transactions, total, err := h.transactionRepo.List(c.Request.Context(), params.Size, params.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"transactions": transactions,
		"pagination":   params.Meta(total),
	})
}

// ListLogs lists audit records, optionally filtered by user or level
// GET /api/v1/admin/logs
func (h *AdminHandler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	params := utils.NewPageRequest(page, limit, 50, 200)

	var filter repositories.LogFilter
	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.Error(c, domainerrors.BadRequest("Invalid user ID"))
			return
		}
		filter.UserID = &userID
	}
	if level := c.Query("level"); level != "" {
		filter.Level = entities.LogLevel(level)
	}

	logs, total, err := h.logRepo.List(c.Request.Context(), filter, params.Size, params.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"logs":       logs,
		"pagination": params.Meta(total),
	})
}
