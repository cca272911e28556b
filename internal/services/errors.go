package services

import "errors"

var (
	// ErrNotFound is returned when the target record does not exist or
	// belongs to another tenant.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidAmount is returned for a payment amount of zero or less.
	ErrInvalidAmount = errors.New("payment amount must be positive")

	// ErrOverPayment is returned when a payment would push the paid
	// amount above the invoice total.
	ErrOverPayment = errors.New("payment exceeds invoice balance")

	// ErrInvalidStatus is returned for an unknown invoice status value.
	ErrInvalidStatus = errors.New("invalid invoice status")

	// ErrStatusLocked is returned when a manual status override is
	// attempted on an invoice that already has payments.
	ErrStatusLocked = errors.New("status is derived from payments")
)
