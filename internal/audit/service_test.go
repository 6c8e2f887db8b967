package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"trustplane/internal/audit"
	"trustplane/internal/audit/store/memory"
	"trustplane/internal/authority"
	dErrors "trustplane/pkg/domain-errors"
	"trustplane/pkg/testutil"
)

// failingSink always rejects appends, for exercising the write-failure path.
type failingSink struct {
	attempts int
}

func (f *failingSink) Append(_ context.Context, _ audit.Event) error {
	f.attempts++
	return errors.New("disk on fire")
}

type EmitterSuite struct {
	suite.Suite
	ctx context.Context
	ac  authority.Context
}

func TestEmitterSuite(t *testing.T) {
	suite.Run(t, new(EmitterSuite))
}

func (s *EmitterSuite) SetupTest() {
	s.ctx = context.Background()
	s.ac = testutil.Authority("ws-1")
}

func (s *EmitterSuite) input() audit.Input {
	return audit.Input{
		Action:     audit.ActionCreate,
		ObjectType: "timeline",
		ObjectID:   "tl-1",
		Result:     audit.ResultSuccess,
	}
}

func (s *EmitterSuite) TestSuccessfulEmit() {
	sink := memory.New()
	emitter := audit.NewEmitter(sink)

	res, err := emitter.Emit(s.ctx, &s.ac, s.input())
	s.Require().NoError(err)
	s.Nil(res.WriteFailure)

	s.Run("copies authority fields onto the event", func() {
		ev := res.Primary
		s.Equal("ws-1", ev.WorkspaceID)
		s.Equal(s.ac.ActorID, ev.ActorID)
		s.Equal(s.ac.AppID, ev.AppID)
		s.Equal(s.ac.Environment, ev.Environment)
		s.Equal(s.ac.RequestID, ev.RequestID)
		s.Equal(s.ac.TraceID, ev.TraceID)
	})

	s.Run("seals an event hash", func() {
		s.Len(res.Primary.Integrity.EventHash, 64)
	})

	s.Run("appends exactly one event to the sink", func() {
		events, err := sink.ListByWorkspace(s.ctx, "ws-1")
		s.Require().NoError(err)
		s.Len(events, 1)
		s.Equal(res.Primary.AuditID, events[0].AuditID)
	})
}

func (s *EmitterSuite) TestPayloadHash() {
	emitter := audit.NewEmitter(memory.New())
	in := s.input()
	in.PayloadForHash = map[string]any{"amount": 120, "currency": "EUR"}

	res, err := emitter.Emit(s.ctx, &s.ac, in)
	s.Require().NoError(err)
	s.Len(res.Primary.Integrity.PayloadHash, 64)
}

func (s *EmitterSuite) TestSinkFailureProducesLinkedEvent() {
	sink := &failingSink{}
	emitter := audit.NewEmitter(sink)

	res, err := emitter.Emit(s.ctx, &s.ac, s.input())
	s.Require().NoError(err, "sink failures must not surface as errors")

	s.Require().NotNil(res.WriteFailure)
	failure := *res.WriteFailure
	s.Equal(audit.ActionAuditWriteFailure, failure.Action)
	s.Equal(audit.ResultPartial, failure.Result)
	s.Equal("AUDIT_WRITE_FAILED", failure.ErrorCode)
	s.Equal(res.Primary.AuditID, failure.Integrity.PreviousAuditID)
	s.NotEqual(res.Primary.AuditID, failure.AuditID)
}

func (s *EmitterSuite) TestDerivedSensitivity() {
	emitter := audit.NewEmitter(memory.New())

	s.Run("internal data class is not sensitive", func() {
		ac := testutil.Authority("ws-1")
		ac.DataClass = authority.DataClassInternal
		res, err := emitter.Emit(s.ctx, &ac, s.input())
		s.Require().NoError(err)
		s.False(res.Primary.ContainsSensitive)
	})

	s.Run("phi data class is sensitive", func() {
		ac := testutil.Authority("ws-1")
		ac.DataClass = authority.DataClassPHI
		res, err := emitter.Emit(s.ctx, &ac, s.input())
		s.Require().NoError(err)
		s.True(res.Primary.ContainsSensitive)
	})
}

func (s *EmitterSuite) TestInvalidAuthorityOrInput() {
	emitter := audit.NewEmitter(memory.New())

	s.Run("rejects missing authority", func() {
		_, err := emitter.Emit(s.ctx, nil, s.input())
		s.Equal(dErrors.CodeAuthorityMissing, dErrors.CodeOf(err))
	})

	s.Run("rejects invalid action", func() {
		in := s.input()
		in.Action = "drop_table"
		_, err := emitter.Emit(s.ctx, &s.ac, in)
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})

	s.Run("rejects caller-supplied audit_write_failure action", func() {
		in := s.input()
		in.Action = audit.ActionAuditWriteFailure
		_, err := emitter.Emit(s.ctx, &s.ac, in)
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})

	s.Run("rejects missing object type", func() {
		in := s.input()
		in.ObjectType = ""
		_, err := emitter.Emit(s.ctx, &s.ac, in)
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})

	s.Run("rejects invalid result", func() {
		in := s.input()
		in.Result = "maybe"
		_, err := emitter.Emit(s.ctx, &s.ac, in)
		s.Equal(dErrors.CodeInvalidInput, dErrors.CodeOf(err))
	})
}

func (s *EmitterSuite) TestDeterministicClock() {
	at := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	emitter := audit.NewEmitter(memory.New(), audit.WithClock(func() time.Time { return at }))

	res, err := emitter.Emit(s.ctx, &s.ac, s.input())
	s.Require().NoError(err)
	s.Equal(at, res.Primary.Timestamp)
}
