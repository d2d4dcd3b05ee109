package repositories

import (
	"context"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations. Balance only moves
// through Credit and Debit, which must be single atomic row operations
// composable into one unit of work; Debit is conditional and returns
// ErrInsufficientFunds instead of driving the balance negative.
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	GetByNumber(ctx context.Context, walletNumber string) (*entities.Wallet, error)
	GetByUserAndType(ctx context.Context, userID uuid.UUID, walletType entities.WalletType) (*entities.Wallet, error)
	GetMainByEmail(ctx context.Context, email string) (*entities.Wallet, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entities.Wallet, error)
	Credit(ctx context.Context, id uuid.UUID, amount int64) error
	Debit(ctx context.Context, id uuid.UUID, amount int64) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	TotalBalance(ctx context.Context) (int64, error)
}
