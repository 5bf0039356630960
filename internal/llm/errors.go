package llm

import (
	"fmt"

	app_errors "routerchat/backend/internal/errors"
)

// ErrorKind classifies an upstream failure.
type ErrorKind string

const (
	// KindClient is a 4xx answer. Terminal.
	KindClient ErrorKind = "client"
	// KindTransient is a 5xx answer, a transport error or a timeout. Retried.
	KindTransient ErrorKind = "transient"
	// KindLogical is a 2xx answer carrying an error payload or an unreadable
	// body. Terminal.
	KindLogical ErrorKind = "logical"
)

// UpstreamError is returned by the gateway for every failed completion.
type UpstreamError struct {
	Kind       ErrorKind
	StatusCode int // 0 when no HTTP response was received
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("upstream %s error (status %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %s error: %s", e.Kind, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Is makes every UpstreamError match errors.ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == app_errors.ErrUpstream
}

func (e *UpstreamError) Retryable() bool { return e.Kind == KindTransient }
