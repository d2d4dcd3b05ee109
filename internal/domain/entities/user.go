package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser       UserRole = "USER"
	UserRoleAdmin      UserRole = "ADMIN"
	UserRoleSuperAdmin UserRole = "SUPER_ADMIN"
)

// ParseUserRole normalizes a role string into the closed enum.
// Unknown values fall back to USER so a malformed claim never
// grants elevated access.
func ParseUserRole(s string) UserRole {
	switch UserRole(strings.ToUpper(strings.TrimSpace(s))) {
	case UserRoleAdmin:
		return UserRoleAdmin
	case UserRoleSuperAdmin:
		return UserRoleSuperAdmin
	default:
		return UserRoleUser
	}
}

// IsAdmin reports whether the role carries admin privileges.
func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin || r == UserRoleSuperAdmin
}

// VerificationStatus represents account verification status
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// User represents a user entity
type User struct {
	ID                 uuid.UUID          `json:"id"`
	Email              string             `json:"email"`
	Name               string             `json:"name"`
	PasswordHash       string             `json:"-"`
	Role               UserRole           `json:"role"`
	IsVerified         bool               `json:"isVerified"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
	DeletedAt          *time.Time         `json:"-"`
}

// RegisterInput represents input for creating a user
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateVerificationInput represents an admin verification decision.
type UpdateVerificationInput struct {
	Status VerificationStatus `json:"status" binding:"required,oneof=APPROVED REJECTED"`
}

// UpdateRoleInput represents a super-admin role change.
type UpdateRoleInput struct {
	Role UserRole `json:"role" binding:"required,oneof=USER ADMIN SUPER_ADMIN"`
}
