package providers

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable signals a misconfigured or missing provider.
var ErrProviderUnavailable = errors.New("stats provider unavailable")

// UpstreamError captures a non-success response from the stats source.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "upstream request failed"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status=%d)", e.Provider, msg, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Provider, msg)
}

// AsUpstreamError attempts to unwrap an error into an UpstreamError.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr, true
	}
	return nil, false
}

// MalformedError captures a response that arrived but is missing the
// expected fields.
type MalformedError struct {
	Provider string
	Reason   string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s: malformed response: %s", e.Provider, e.Reason)
}

// AsMalformedError attempts to unwrap an error into a MalformedError.
func AsMalformedError(err error) (*MalformedError, bool) {
	var malErr *MalformedError
	if errors.As(err, &malErr) {
		return malErr, true
	}
	return nil, false
}
