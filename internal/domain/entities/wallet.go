package entities

import (
	"time"

	"github.com/google/uuid"
)

// WalletType represents the kind of balance bucket a wallet is
type WalletType string

const (
	WalletTypeMain      WalletType = "MAIN"
	WalletTypeSecondary WalletType = "SECONDARY"
	WalletTypeSavings   WalletType = "SAVINGS"
)

// Wallet represents a user's balance bucket. Balance is in IDR
// and never goes negative after a committed operation.
type Wallet struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"userId"`
	WalletNumber string     `json:"walletNumber"`
	Name         string     `json:"name"`
	Currency     string     `json:"currency"`
	WalletType   WalletType `json:"walletType"`
	Balance      int64      `json:"balance"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// CreateWalletInput represents input for creating a secondary wallet
type CreateWalletInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// WalletSelector identifies the destination wallet of a transfer.
// Exactly one of WalletNumber or Email must be set.
type WalletSelector struct {
	WalletNumber string `json:"walletNumber,omitempty"`
	Email        string `json:"email,omitempty"`
}
