package entities

import (
	"time"

	"github.com/google/uuid"
)

// LogLevel represents the severity of an audit record
type LogLevel string

const (
	LogLevelInfo    LogLevel = "INFO"
	LogLevelSuccess LogLevel = "SUCCESS"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
)

// Log is an append-only audit record. Writing one is best effort and
// never blocks or fails the operation that produced it.
type Log struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"userId,omitempty"`
	Action    string     `json:"action"`
	Entity    string     `json:"entity"`
	Details   string     `json:"details,omitempty"`
	Level     LogLevel   `json:"level"`
	CreatedAt time.Time  `json:"createdAt"`
}

// Audit action tags used across the engines.
const (
	ActionTransfer       = "TRANSFER"
	ActionSavingsTopup   = "SAVINGS_TOPUP"
	ActionSavingsRedeem  = "SAVINGS_REDEEM"
	ActionTopupRequested = "TOPUP_REQUESTED"
	ActionTopupApproved  = "TOPUP_APPROVED"
	ActionTopupRejected  = "TOPUP_REJECTED"
	ActionUserRegistered = "USER_REGISTERED"
	ActionUserVerified   = "USER_VERIFIED"
	ActionUserRoleSet    = "USER_ROLE_SET"
	ActionLogError       = "LOG_ERROR"
)
