package repositories

import (
	"context"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
)

// TopupRequestRepository defines top-up request data operations.
// SettleIfPending performs the PENDING-guarded status transition as a
// single conditional update; settling a request that is no longer
// PENDING returns ErrAlreadySettled.
type TopupRequestRepository interface {
	Create(ctx context.Context, req *entities.TopupRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.TopupRequest, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.TopupRequest, error)
	ListPending(ctx context.Context) ([]*entities.TopupRequest, error)
	SettleIfPending(ctx context.Context, id uuid.UUID, status entities.TopupStatus, settledBy uuid.UUID) error
}
