package repositories

import (
	"context"

	"github.com/google/uuid"
	"saldoku.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	UpdateVerification(ctx context.Context, id uuid.UUID, status entities.VerificationStatus) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entities.UserRole) error
	List(ctx context.Context, search string) ([]*entities.User, error)
	Count(ctx context.Context) (int64, error)
}
