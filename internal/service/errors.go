package service

import "errors"

// Sentinel errors the controllers map to HTTP statuses.
var (
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrMailDelivery       = errors.New("error sending email")
	ErrTotalMismatch      = errors.New("total does not match item prices")
)
