package models

import (
	"time"

	"github.com/google/uuid"
)

// Transaction rows are append-only; no UpdatedAt, no soft delete.
type Transaction struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	SenderID         uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverID       uuid.UUID `gorm:"type:uuid;not null;index"`
	SenderWalletID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ReceiverWalletID uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount           int64     `gorm:"not null;check:amount > 0"`
	Currency         string    `gorm:"type:varchar(10);not null"`
	Status           string    `gorm:"type:varchar(20);not null;index"`
	Description      string    `gorm:"type:varchar(255)"`
	CreatedAt        time.Time
	CompletedAt      *time.Time
}
