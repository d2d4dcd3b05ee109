package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// SavingsPlanStatus represents the lifecycle of a savings goal
type SavingsPlanStatus string

const (
	SavingsPlanActive    SavingsPlanStatus = "ACTIVE"
	SavingsPlanCompleted SavingsPlanStatus = "COMPLETED"
	SavingsPlanArchived  SavingsPlanStatus = "ARCHIVED"
	SavingsPlanCancelled SavingsPlanStatus = "CANCELLED"
)

// SavingsDirection represents the direction of a savings movement
type SavingsDirection string

const (
	SavingsDirectionTopup  SavingsDirection = "TOPUP"
	SavingsDirectionRedeem SavingsDirection = "REDEEM"
)

// ParseSavingsDirection parses a direction case-insensitively.
func ParseSavingsDirection(s string) (SavingsDirection, bool) {
	switch SavingsDirection(strings.ToUpper(strings.TrimSpace(s))) {
	case SavingsDirectionTopup:
		return SavingsDirectionTopup, true
	case SavingsDirectionRedeem:
		return SavingsDirectionRedeem, true
	default:
		return "", false
	}
}

// SavingsPlan is a user-defined goal tracked against a backing SAVINGS
// wallet. CurrentAmount mirrors the money parked in the backing wallet
// attributable to this plan and only moves inside the same unit of work
// as the wallet balance.
type SavingsPlan struct {
	ID            uuid.UUID         `json:"id"`
	UserID        uuid.UUID         `json:"userId"`
	WalletID      uuid.UUID         `json:"walletId"`
	Title         string            `json:"title"`
	Description   string            `json:"description,omitempty"`
	GoalAmount    int64             `json:"goalAmount"`
	CurrentAmount int64             `json:"currentAmount"`
	TargetDate    time.Time         `json:"targetDate"`
	Status        SavingsPlanStatus `json:"status"`
	Category      string            `json:"category,omitempty"`
	Priority      string            `json:"priority,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	DeletedAt     *time.Time        `json:"-"`
}

// CreateSavingsPlanInput represents input for creating a savings plan
type CreateSavingsPlanInput struct {
	Title       string    `json:"title" binding:"required,min=2,max=100"`
	Description string    `json:"description" binding:"max=255"`
	GoalAmount  int64     `json:"goalAmount" binding:"required,gt=0"`
	TargetDate  time.Time `json:"targetDate" binding:"required"`
	Category    string    `json:"category" binding:"max=50"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// UpdateSavingsPlanInput represents metadata updates to a plan.
// Balance-affecting fields are deliberately absent.
type UpdateSavingsPlanInput struct {
	Title       *string    `json:"title" binding:"omitempty,min=2,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=255"`
	GoalAmount  *int64     `json:"goalAmount" binding:"omitempty,gt=0"`
	TargetDate  *time.Time `json:"targetDate"`
	Category    *string    `json:"category" binding:"omitempty,max=50"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
}

// SavingsMovementInput represents input for a top-up or redeem
type SavingsMovementInput struct {
	Amount    int64  `json:"amount" binding:"required,gt=0"`
	Direction string `json:"direction" binding:"required"`
}
