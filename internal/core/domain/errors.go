package domain

import "errors"

// Authentication and account errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserBanned         = errors.New("account is banned")
	ErrInvalidRole        = errors.New("invalid role")
	ErrForbidden          = errors.New("access forbidden")
)

// Entity lookup errors.
var (
	ErrProductNotFound     = errors.New("product not found")
	ErrPetNotFound         = errors.New("pet not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrOrderNotFound       = errors.New("order not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
)

// Business-rule conflicts. These are distinct from validation errors so
// clients can react (retry with different items, pick another pet).
var (
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPetUnavailable    = errors.New("pet is not available")
	ErrOrderConflict     = errors.New("order was modified concurrently")
)

// Order and appointment lifecycle errors.
var (
	ErrEmptyOrder         = errors.New("order must contain at least one product or pet")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrPastAppointment    = errors.New("appointment date must be in the future")
	ErrNotAVeterinarian   = errors.New("user is not a veterinarian")
	ErrSelfTargetedChange = errors.New("operation may not target your own account")
)
