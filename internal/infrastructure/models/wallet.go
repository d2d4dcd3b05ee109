package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Wallet struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index;index:idx_wallets_user_type,unique,priority:1"`
	WalletNumber string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Currency     string    `gorm:"type:varchar(10);not null;default:'IDR'"`
	// One MAIN and one SAVINGS wallet per user; SECONDARY wallets are unbounded.
	WalletType string `gorm:"type:varchar(20);not null;index:idx_wallets_user_type,unique,priority:2,where:wallet_type IN ('MAIN','SAVINGS') AND deleted_at IS NULL"`
	Balance    int64  `gorm:"not null;default:0;check:balance >= 0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	User User `gorm:"foreignKey:UserID"`
}
