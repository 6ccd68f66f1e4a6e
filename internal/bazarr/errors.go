package bazarr

import (
	"fmt"
	"net/http"
)

// TransportError reports a failure before any HTTP status was obtained:
// DNS resolution, connection setup, timeouts, or a broken response body.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("bazarr: transport failure: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }

// ProtocolError reports a non-2xx HTTP status from the Bazarr API.
// Body holds a bounded prefix of the response body for diagnostics.
type ProtocolError struct {
	Status int
	Body   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("bazarr: unexpected status %d %s", e.Status, http.StatusText(e.Status))
}

// DecodeError reports a 2xx response whose body is not valid JSON.
type DecodeError struct {
	Cause error
	Body  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("bazarr: invalid JSON response: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// ActionOutcome classifies a single state-changing call.
type ActionOutcome int

const (
	// ActionTransportFailed covers transport failures and error statuses.
	ActionTransportFailed ActionOutcome = iota
	// ActionSucceeded means the service answered 204 No Content.
	ActionSucceeded
	// ActionRejected means a non-error status other than 204. The request
	// went through but the service did not confirm the action.
	ActionRejected
)

func (o ActionOutcome) String() string {
	switch o {
	case ActionSucceeded:
		return "succeeded"
	case ActionRejected:
		return "rejected"
	default:
		return "transport-failed"
	}
}
