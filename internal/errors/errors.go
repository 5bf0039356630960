package errors

import "errors"

// This package defines the sentinel errors shared by the service and API layers.
// Services wrap them with fmt.Errorf("...: %w", ...) and the API layer maps them
// to HTTP status codes with errors.Is().

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that input data provided by a client failed
	// validation. The wrapping message carries the field-level detail.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrConflict signifies that a write collided with existing data, such as
	// a reused id or a message sequence number. Mapped to 409 Conflict.
	ErrConflict = errors.New("resource conflict")

	// ErrPermission signifies that the caller does not own the resource.
	// Mapped to 403 Forbidden.
	ErrPermission = errors.New("permission denied")

	// ErrUpstream signifies that the completion API could not produce a reply,
	// either terminally (4xx, error payload) or after all retries were spent.
	// Mapped to 502 Bad Gateway.
	ErrUpstream = errors.New("upstream completion failed")
)
