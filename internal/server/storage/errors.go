package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrBarNotFound indicates that bar was not found
	ErrBarNotFound = errors.New("bar not found")

	// ErrNotMember indicates that user has no access to the bar
	ErrNotMember = errors.New("user is not a member of the bar")

	// ErrTicketNotFound indicates that ticket was not found
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketAlreadyPaid is returned when paying a ticket twice
	ErrTicketAlreadyPaid = errors.New("ticket already paid")

	// ErrMappingNotFound indicates that server mapping was not found
	ErrMappingNotFound = errors.New("server mapping not found")

	// ErrIdempotencyKeyNotFound indicates that no response is stored for the key
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
)
