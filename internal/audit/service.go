package audit

import (
	"context"
	"log/slog"
	"time"

	"trustplane/internal/audit/metrics"
	"trustplane/internal/authority"
	"trustplane/internal/identity"
	dErrors "trustplane/pkg/domain-errors"
	"trustplane/pkg/platform/hashing"
)

// Input carries the action-specific fields of an audit event. Actor, app,
// environment, and correlation fields are always copied from the validated
// authority context, never supplied by the caller.
type Input struct {
	Action          Action
	ObjectType      string
	ObjectID        string
	ObjectIDs       []string
	FieldMask       []string
	Result          Result
	ErrorCode       string
	PreviousAuditID string
	// PayloadForHash, when set, is fingerprinted into Integrity.PayloadHash.
	// The payload itself is never serialized into the event.
	PayloadForHash any
}

// EmitResult is the outcome of one Emit call. WriteFailure is non-nil only
// when the sink append failed; it is the caller's handle for routing the
// failure to a fallback telemetry path.
type EmitResult struct {
	Primary      Event
	WriteFailure *Event
}

// Emitter turns validated actions into audit events and appends them to a
// sink. It never returns an error for sink failures, only for invalid
// authority or input.
type Emitter struct {
	sink    Sink
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Emitter)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Emitter) { e.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Emitter) { e.metrics = m }
}

// WithClock overrides the timestamp source; tests use it for deterministic
// event times.
func WithClock(now func() time.Time) Option {
	return func(e *Emitter) { e.now = now }
}

// NewEmitter constructs an Emitter bound to a sink.
func NewEmitter(sink Sink, opts ...Option) *Emitter {
	e := &Emitter{sink: sink, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Emit validates authority and input, builds the event, and appends it.
//
// Failure handling: a sink append error does not propagate. The returned
// EmitResult then carries a second, linked audit_write_failure event whose
// PreviousAuditID points at the primary event, so the intent to audit is
// never silently lost.
func (e *Emitter) Emit(ctx context.Context, ac *authority.Context, input Input) (EmitResult, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return EmitResult{}, err
	}
	if !input.Action.Valid() || input.Action == ActionAuditWriteFailure {
		return EmitResult{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid audit action %q", input.Action)
	}
	if input.ObjectType == "" {
		return EmitResult{}, dErrors.New(dErrors.CodeInvalidInput, "objectType is required")
	}
	if !input.Result.Valid() {
		return EmitResult{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid audit result %q", input.Result)
	}

	primary, err := e.buildEvent(validated, input)
	if err != nil {
		return EmitResult{}, err
	}

	if appendErr := e.sink.Append(ctx, primary); appendErr != nil {
		e.logger.ErrorContext(ctx, "audit sink append failed",
			"audit_id", primary.AuditID,
			"action", primary.Action,
			"error", appendErr)
		e.metrics.IncWriteFailure()

		failure, buildErr := e.buildEvent(validated, Input{
			Action:          ActionAuditWriteFailure,
			ObjectType:      "audit_event",
			ObjectID:        primary.AuditID,
			Result:          ResultPartial,
			ErrorCode:       string(dErrors.CodeAuditWriteFailed),
			PreviousAuditID: primary.AuditID,
		})
		if buildErr != nil {
			return EmitResult{}, buildErr
		}
		e.metrics.IncEmitted(string(ResultPartial))
		return EmitResult{Primary: primary, WriteFailure: &failure}, nil
	}

	e.metrics.IncEmitted(string(primary.Result))
	return EmitResult{Primary: primary}, nil
}

// buildEvent assembles an immutable event from validated authority and
// input, then seals it with the integrity block.
func (e *Emitter) buildEvent(ac authority.Context, input Input) (Event, error) {
	event := Event{
		AuditID:           identity.NewOpaqueID(),
		Timestamp:         e.now().UTC(),
		WorkspaceID:       ac.WorkspaceID,
		ActorID:           ac.ActorID,
		ActorType:         ac.ActorType,
		AppID:             ac.AppID,
		Environment:       ac.Environment,
		Version:           ac.Version,
		BuildTimestamp:    ac.BuildTimestamp,
		RequestID:         ac.RequestID,
		TraceID:           ac.TraceID,
		Action:            input.Action,
		ObjectType:        input.ObjectType,
		ObjectID:          input.ObjectID,
		ObjectIDs:         append([]string(nil), input.ObjectIDs...),
		FieldMask:         append([]string(nil), input.FieldMask...),
		Result:            input.Result,
		ErrorCode:         input.ErrorCode,
		DataClass:         ac.DataClass,
		ContainsSensitive: ac.DataClass.Sensitive(),
	}

	integrity := Integrity{PreviousAuditID: input.PreviousAuditID}
	if input.PayloadForHash != nil {
		payloadHash, err := hashing.HashValue(input.PayloadForHash)
		if err != nil {
			return Event{}, err
		}
		integrity.PayloadHash = payloadHash
	}

	// The event hash covers the event with an unsealed integrity block so
	// verification can recompute it from the stored record.
	event.Integrity = Integrity{PreviousAuditID: integrity.PreviousAuditID, PayloadHash: integrity.PayloadHash}
	eventHash, err := hashing.HashValue(event)
	if err != nil {
		return Event{}, err
	}
	event.Integrity.EventHash = eventHash
	return event, nil
}
