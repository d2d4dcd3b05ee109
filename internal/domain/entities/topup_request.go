package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TopupStatus represents the settlement state of a top-up request
type TopupStatus string

const (
	TopupStatusPending  TopupStatus = "PENDING"
	TopupStatusApproved TopupStatus = "APPROVED"
	TopupStatusRejected TopupStatus = "REJECTED"
)

// TopupRequest is a user's request to add funds, requiring admin
// approval before the wallet is credited. The status moves exactly
// once: PENDING to APPROVED or REJECTED, terminal either way.
type TopupRequest struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"userId"`
	WalletID      uuid.UUID   `json:"walletId"`
	Amount        int64       `json:"amount"`
	PaymentMethod string      `json:"paymentMethod"`
	Status        TopupStatus `json:"status"`
	SettledBy     *uuid.UUID  `json:"settledBy,omitempty"`
	SettledAt     null.Time   `json:"settledAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

// CreateTopupInput represents input for creating a top-up request
type CreateTopupInput struct {
	WalletID      string `json:"walletId" binding:"required,uuid"`
	Amount        int64  `json:"amount" binding:"required,gt=0"`
	PaymentMethod string `json:"paymentMethod" binding:"required,min=2,max=50"`
}

// SettleTopupInput represents an admin settlement decision
type SettleTopupInput struct {
	Decision TopupStatus `json:"decision" binding:"required,oneof=APPROVED REJECTED"`
}
