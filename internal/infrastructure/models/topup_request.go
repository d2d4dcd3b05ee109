package models

import (
	"time"

	"github.com/google/uuid"
)

type TopupRequest struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	WalletID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Amount        int64      `gorm:"not null;check:amount > 0"`
	PaymentMethod string     `gorm:"type:varchar(50);not null"`
	Status        string     `gorm:"type:varchar(20);not null;index;default:'PENDING'"`
	SettledBy     *uuid.UUID `gorm:"type:uuid"`
	SettledAt     *time.Time
	CreatedAt     time.Time
}
