package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionStatus represents the status of a money movement
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// Transaction is the immutable, append-only record of one completed
// money movement between two wallets. It is never updated or deleted.
type Transaction struct {
	ID               uuid.UUID         `json:"id"`
	SenderID         uuid.UUID         `json:"senderId"`
	ReceiverID       uuid.UUID         `json:"receiverId"`
	SenderWalletID   uuid.UUID         `json:"senderWalletId"`
	ReceiverWalletID uuid.UUID         `json:"receiverWalletId"`
	Amount           int64             `json:"amount"`
	Currency         string            `json:"currency"`
	Status           TransactionStatus `json:"status"`
	Description      string            `json:"description,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	CompletedAt      null.Time         `json:"completedAt,omitempty"`
}

// TransferInput represents input for a peer-to-peer transfer
type TransferInput struct {
	SourceWalletID string         `json:"sourceWalletId" binding:"required,uuid"`
	Destination    WalletSelector `json:"destination" binding:"required"`
	Amount         int64          `json:"amount" binding:"required,gt=0"`
	Description    string         `json:"description" binding:"max=255"`
}
