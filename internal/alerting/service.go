package alerting

import (
	"context"
	"log/slog"
	"time"

	"trustplane/internal/alerting/metrics"
	"trustplane/internal/authority"
	dErrors "trustplane/pkg/domain-errors"
	"trustplane/pkg/platform/hashing"
	"trustplane/pkg/platform/scan"
)

// prohibitedKeys are decision-authority-implying keys. Alerting is a
// transport; severity judgments belong to a decision system.
var prohibitedKeys = []string{"severity", "priority"}

// Service validates and dispatches alerts through a Sink.
type Service struct {
	sink    Sink
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func New(sink Sink, opts ...Option) *Service {
	s := &Service{sink: sink, logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send validates authority and the dispatch, rejects payloads carrying
// decision semantics, invokes the sink with the untouched payload, and
// returns a redaction-safe log record.
//
// Sink failures propagate to the caller unchanged; retry policy belongs to
// the caller or the sink.
func (s *Service) Send(ctx context.Context, ac *authority.Context, d Dispatch) (LogRecord, error) {
	validated, err := authority.Assert(ac)
	if err != nil {
		return LogRecord{}, err
	}
	if d.Transport == "" {
		return LogRecord{}, dErrors.New(dErrors.CodeInvalidInput, "transport is required")
	}
	if d.Destination == "" {
		return LogRecord{}, dErrors.New(dErrors.CodeInvalidInput, "destination is required")
	}
	if err := scan.Prohibited(d.Payload, prohibitedKeys); err != nil {
		s.metrics.IncRejected()
		return LogRecord{}, err
	}

	payloadHash, err := hashing.HashValue(d.Payload)
	if err != nil {
		return LogRecord{}, err
	}

	if err := s.sink.Dispatch(ctx, d); err != nil {
		s.metrics.IncDispatched(d.Transport, "error")
		return LogRecord{}, err
	}

	record := LogRecord{
		DispatchedAt: s.now().UTC(),
		WorkspaceID:  validated.WorkspaceID,
		Transport:    d.Transport,
		Destination:  d.Destination,
		PayloadHash:  payloadHash,
	}
	if validated.DataClass.Sensitive() {
		record.PayloadPointer = d.PayloadPointer
	}
	s.metrics.IncDispatched(d.Transport, "success")
	s.logger.InfoContext(ctx, "alert dispatched",
		"workspace_id", record.WorkspaceID,
		"transport", record.Transport,
		"payload_hash", record.PayloadHash)
	return record, nil
}
