package repositories

import (
	"context"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
)

// SavingsPlanRepository defines savings plan data operations.
// AddToCurrent applies a signed delta to currentAmount as one atomic
// row operation; a negative delta that would undershoot zero returns
// ErrInsufficientFunds.
type SavingsPlanRepository interface {
	Create(ctx context.Context, plan *entities.SavingsPlan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.SavingsPlan, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.SavingsPlan, error)
	Update(ctx context.Context, plan *entities.SavingsPlan) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.SavingsPlanStatus) error
	AddToCurrent(ctx context.Context, id uuid.UUID, delta int64) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListCompletable(ctx context.Context) ([]*entities.SavingsPlan, error)
}
