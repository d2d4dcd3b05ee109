package repositories

import (
	"context"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
)

// LogFilter narrows audit log listing.
type LogFilter struct {
	UserID *uuid.UUID
	Level  entities.LogLevel
}

// LogRepository defines audit log data operations
type LogRepository interface {
	Create(ctx context.Context, log *entities.Log) error
	List(ctx context.Context, filter LogFilter, limit, offset int) ([]*entities.Log, int64, error)
}
