package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorsSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsSuite))
}

func (s *ErrorsSuite) TestCodeExtraction() {
	s.Run("CodeOf returns the code of a coded error", func() {
		err := New(CodeWorkspaceMissing, "workspaceId is required")
		s.Equal(CodeWorkspaceMissing, CodeOf(err))
	})

	s.Run("CodeOf survives fmt wrapping", func() {
		err := fmt.Errorf("outer: %w", New(CodeCrossWorkspaceDenied, "denied"))
		s.Equal(CodeCrossWorkspaceDenied, CodeOf(err))
		s.True(HasCode(err, CodeCrossWorkspaceDenied))
	})

	s.Run("CodeOf returns empty for plain errors", func() {
		s.Equal(Code(""), CodeOf(errors.New("plain")))
		s.False(HasCode(errors.New("plain"), CodeInvalidInput))
	})
}

func (s *ErrorsSuite) TestWrapPreservesCause() {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeAuditWriteFailed, "sink append failed")

	s.True(errors.Is(err, cause))
	s.Equal(CodeAuditWriteFailed, CodeOf(err))
	s.Contains(err.Error(), "AUDIT_WRITE_FAILED")
	s.Contains(err.Error(), "connection refused")
}

func (s *ErrorsSuite) TestDetails() {
	err := New(CodeInvalidInput, "missing field").WithDetail("field", "requestId")
	s.Equal("requestId", err.Details["field"])
}
