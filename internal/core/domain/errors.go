package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Claim errors
var (
	ErrClaimNotFound   = errors.New("claim not found")
	ErrClaimNotPending = errors.New("claim is not pending")
	ErrUnknownStatus   = errors.New("unknown claim status")
)

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
)
