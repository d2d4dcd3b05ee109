package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"saldoku.backend/internal/domain/entities"
	"saldoku.backend/internal/domain/repositories"
	"saldoku.backend/pkg/logger"
	"saldoku.backend/pkg/utils"
)

// AuditEvent is one record handed to the audit sink.
type AuditEvent struct {
	UserID  *uuid.UUID
	Action  string
	Entity  string
	Details string
	Level   entities.LogLevel
}

// AuditSink writes audit records best-effort. A failed write is logged
// as a secondary LOG_ERROR event and swallowed; it never propagates to
// the operation that emitted it.
type AuditSink struct {
	logRepo repositories.LogRepository
}

// NewAuditSink creates a new audit sink
func NewAuditSink(logRepo repositories.LogRepository) *AuditSink {
	return &AuditSink{logRepo: logRepo}
}

// Notify records an audit event. Always returns; never fails the caller.
func (s *AuditSink) Notify(ctx context.Context, event AuditEvent) {
	if s == nil || s.logRepo == nil {
		return
	}

	record := &entities.Log{
		ID:        utils.GenerateUUIDv7(),
		UserID:    event.UserID,
		Action:    event.Action,
		Entity:    event.Entity,
		Details:   event.Details,
		Level:     event.Level,
		CreatedAt: time.Now(),
	}

	if err := s.logRepo.Create(ctx, record); err != nil {
		logger.Error(ctx, "audit write failed",
			zap.String("action", entities.ActionLogError),
			zap.String("failed_action", event.Action),
			zap.String("entity", event.Entity),
			zap.Error(err),
		)
	}
}
