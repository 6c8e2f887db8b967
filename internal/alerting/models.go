// Package alerting is a meaning-free outbound notification transport. It
// carries payloads without interpreting them, refuses payloads that smuggle
// in decision semantics (severity, priority), and logs dispatches without
// ever storing the raw payload for sensitive data classes.
package alerting

import (
	"context"
	"time"
)

// Dispatch is one outbound notification.
type Dispatch struct {
	Transport   string
	Destination string
	// Payload is handed to the sink untouched. Altering dispatch content is
	// not this library's business.
	Payload any
	// PayloadPointer is an opaque caller-supplied reference recorded in the
	// dispatch log for sensitive data classes.
	PayloadPointer string
}

// LogRecord is what remains of a dispatch after redaction: a hash and, for
// sensitive classes, an opaque pointer. Never the payload.
type LogRecord struct {
	DispatchedAt   time.Time `json:"dispatched_at"`
	WorkspaceID    string    `json:"workspace_id"`
	Transport      string    `json:"transport"`
	Destination    string    `json:"destination"`
	PayloadHash    string    `json:"payload_hash"`
	PayloadPointer string    `json:"payload_pointer,omitempty"`
}

// Sink is the transport capability: deliver one dispatch, possibly failing.
type Sink interface {
	Dispatch(ctx context.Context, d Dispatch) error
}
