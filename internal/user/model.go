package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
)

// User represents an account. Operators see every booking and manage rooms;
// regular guests only see their own.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	FullName     *string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
	IsOperator   bool
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	IsActive *bool // pointer to distinguish false from not-set

	Page     int
	PageSize int
}
