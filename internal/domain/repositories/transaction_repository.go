package repositories

import (
	"context"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
)

// TransactionRepository defines transaction data operations.
// Transactions are append-only; there is deliberately no Update or Delete.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entities.Transaction, int64, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Transaction, int64, error)
	Count(ctx context.Context) (int64, error)
}
