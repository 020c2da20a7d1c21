package youtube

import (
	"errors"
	"fmt"
)

// Sentinel errors for metadata operations.
var (
	ErrNotFound           = errors.New("youtube: not found")
	ErrInvalidCredentials = errors.New("youtube: invalid credentials")
	ErrMissingAPIKey      = errors.New("youtube: api key required")
)

// NotFoundError reports a channel or playlist lookup that returned no record.
type NotFoundError struct {
	// Kind is "channel" or "playlist".
	Kind string
	// ID is the identifier that was looked up.
	ID string
	// ByUsername is set when ID is a legacy username rather than a channel id.
	ByUsername bool
}

// Error returns a string representation of the lookup failure.
func (e *NotFoundError) Error() string {
	if e.ByUsername {
		return fmt.Sprintf("youtube: invalid username %q: no %s found", e.ID, e.Kind)
	}
	return fmt.Sprintf("youtube: invalid %sId %q: no %s found", e.Kind, e.ID, e.Kind)
}

// Unwrap returns ErrNotFound.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// APIError wraps a failed remote call.
type APIError struct {
	// Op is the API method, e.g. "playlistItems.list".
	Op string
	// StatusCode is the HTTP status, 0 when the request never got a response.
	StatusCode int
	// Body is the raw error response body.
	Body string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the API error.
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("youtube: %s: HTTP %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("youtube: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *APIError) Unwrap() error { return e.Err }
