package entities

import "time"

// Role values stored on the users table.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents a user entity in the database
type User struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"` // Don't expose password hash in JSON
	Role             string    `json:"role"`
	ResetToken       *string   `json:"-"` // Single-use password reset token
	ResetTokenExpiry *int64    `json:"-"` // Epoch milliseconds
	CreatedAt        time.Time `json:"created_at"`
}
