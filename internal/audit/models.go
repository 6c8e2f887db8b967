// Package audit builds durable, tamper-evidenced records of actions and is
// honest about its own write failures: a sink append that fails produces a
// second, linked event instead of silently losing the audit intent.
package audit

import (
	"context"
	"time"

	"trustplane/internal/authority"
)

// Action is the closed set of auditable action kinds.
type Action string

const (
	ActionCreate            Action = "create"
	ActionUpdate            Action = "update"
	ActionDelete            Action = "delete"
	ActionRead              Action = "read"
	ActionExport            Action = "export"
	ActionPermissionChange  Action = "permission_change"
	ActionLogin             Action = "login"
	ActionTokenRotate       Action = "token_rotate"
	ActionAuditWriteFailure Action = "audit_write_failure"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionRead, ActionExport,
		ActionPermissionChange, ActionLogin, ActionTokenRotate, ActionAuditWriteFailure:
		return true
	}
	return false
}

// Result is the outcome of the audited action.
type Result string

const (
	ResultSuccess Result = "success"
	ResultDenied  Result = "denied"
	ResultError   Result = "error"
	ResultPartial Result = "partial"
)

func (r Result) Valid() bool {
	switch r {
	case ResultSuccess, ResultDenied, ResultError, ResultPartial:
		return true
	}
	return false
}

// Integrity is the tamper-evidence block of an event. EventHash covers the
// normalized serialization of the event itself (raw payloads excluded);
// PreviousAuditID chains causally related events.
type Integrity struct {
	EventHash       string `json:"event_hash"`
	PreviousAuditID string `json:"previous_audit_id,omitempty"`
	PayloadHash     string `json:"payload_hash,omitempty"`
}

// Event is an append-only audit record. Created once per action, never
// mutated.
type Event struct {
	AuditID        string                `json:"audit_id"`
	Timestamp      time.Time             `json:"timestamp"`
	WorkspaceID    string                `json:"workspace_id"`
	ActorID        string                `json:"actor_id"`
	ActorType      authority.ActorType   `json:"actor_type"`
	AppID          string                `json:"app_id"`
	Environment    authority.Environment `json:"environment"`
	Version        string                `json:"version"`
	BuildTimestamp string                `json:"build_timestamp"`
	RequestID      string                `json:"request_id"`
	TraceID        string                `json:"trace_id"`
	Action         Action                `json:"action"`
	ObjectType     string                `json:"object_type"`
	ObjectID       string                `json:"object_id,omitempty"`
	ObjectIDs      []string              `json:"object_ids,omitempty"`
	FieldMask      []string              `json:"field_mask,omitempty"`
	Result         Result                `json:"result"`
	ErrorCode      string                `json:"error_code,omitempty"`
	Integrity      Integrity             `json:"integrity"`
	DataClass      authority.DataClass   `json:"data_class"`
	// ContainsSensitive is derived: true when DataClass is neither none nor
	// internal. Stored explicitly so downstream consumers can filter without
	// re-deriving classification rules.
	ContainsSensitive bool `json:"contains_sensitive"`
}

// Sink is the single capability the emitter requires from its persistence
// collaborator. Append may fail; the emitter converts that failure into data
// rather than an error.
type Sink interface {
	Append(ctx context.Context, event Event) error
}
