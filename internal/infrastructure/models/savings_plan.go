package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SavingsPlan struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	WalletID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(100);not null"`
	Description   string    `gorm:"type:varchar(255)"`
	GoalAmount    int64     `gorm:"not null"`
	CurrentAmount int64     `gorm:"not null;default:0;check:current_amount >= 0"`
	TargetDate    time.Time `gorm:"not null"`
	Status        string    `gorm:"type:varchar(20);not null;index;default:'ACTIVE'"`
	Category      string    `gorm:"type:varchar(50)"`
	Priority      string    `gorm:"type:varchar(10)"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`

	Wallet Wallet `gorm:"foreignKey:WalletID"`
}
