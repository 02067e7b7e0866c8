package submission

import (
	"errors"
	"fmt"

	"github.com/abhisek/tourpref/internal/store"
)

// GenericFailureMessage is shown when the service fails without saying why.
const GenericFailureMessage = "unknown error"

// ErrTransport marks failures where no usable HTTP response was received:
// dial errors, timeouts, cancelled contexts, unencodable payloads.
var ErrTransport = errors.New("preferences service unreachable")

// TransportError wraps the underlying transport failure. It matches
// ErrTransport under errors.Is.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%v: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// RemoteRejectedError is a non-2xx response whose body named the failure.
type RemoteRejectedError struct {
	StatusCode int
	Message    string
}

func (e *RemoteRejectedError) Error() string {
	return fmt.Sprintf("preferences rejected (status %d): %s", e.StatusCode, e.Message)
}

// MalformedResponseError is a non-2xx response without a usable error field.
type MalformedResponseError struct {
	StatusCode int
	Err        error // decode error, if any
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("preferences request failed (status %d): unreadable body: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("preferences request failed (status %d)", e.StatusCode)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Message returns the text shown to the tourist for a failed submission.
// It returns "" for a nil error.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var rejected *RemoteRejectedError
	if errors.As(err, &rejected) {
		return rejected.Message
	}

	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return GenericFailureMessage
	}

	var transport *TransportError
	if errors.As(err, &transport) && transport.Err != nil {
		return transport.Err.Error()
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericFailureMessage
}

// Outcome classifies a Submit result for the event log.
func Outcome(err error) string {
	var (
		rejected  *RemoteRejectedError
		malformed *MalformedResponseError
	)
	switch {
	case err == nil:
		return store.OutcomeSuccess
	case errors.As(err, &rejected):
		return store.OutcomeRejected
	case errors.As(err, &malformed):
		return store.OutcomeMalformed
	default:
		return store.OutcomeTransport
	}
}

// StatusCode extracts the HTTP status carried by err, or 0 when no response
// was received.
func StatusCode(err error) int {
	var rejected *RemoteRejectedError
	if errors.As(err, &rejected) {
		return rejected.StatusCode
	}
	var malformed *MalformedResponseError
	if errors.As(err, &malformed) {
		return malformed.StatusCode
	}
	return 0
}
