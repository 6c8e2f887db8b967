package authority

import (
	"testing"

	"github.com/stretchr/testify/suite"

	dErrors "trustplane/pkg/domain-errors"
)

type AssertSuite struct {
	suite.Suite
}

func TestAssertSuite(t *testing.T) {
	suite.Run(t, new(AssertSuite))
}

func valid() Context {
	return Context{
		WorkspaceID:    "ws-1",
		ActorType:      ActorUser,
		ActorID:        "actor-1",
		AppID:          "app-1",
		Environment:    EnvProd,
		Version:        "1.4.2",
		BuildTimestamp: "2026-08-01T00:00:00Z",
		RequestID:      "req-1",
		TraceID:        "trace-1",
		DataClass:      DataClassInternal,
	}
}

func (s *AssertSuite) TestValidContextRoundTrips() {
	in := valid()
	out, err := Assert(&in)
	s.Require().NoError(err)
	s.Equal(in, out)

	// Mutating the input after validation must not affect the validated copy.
	in.WorkspaceID = "ws-other"
	s.Equal("ws-1", out.WorkspaceID)
}

func (s *AssertSuite) TestNilContext() {
	_, err := Assert(nil)
	s.Require().Error(err)
	s.Equal(dErrors.CodeAuthorityMissing, dErrors.CodeOf(err))
}

func (s *AssertSuite) TestEachFieldFailsClosed() {
	cases := []struct {
		name   string
		mutate func(*Context)
		code   dErrors.Code
	}{
		{"missing workspace", func(c *Context) { c.WorkspaceID = "" }, dErrors.CodeWorkspaceMissing},
		{"missing actor id", func(c *Context) { c.ActorID = "" }, dErrors.CodeActorMissing},
		{"missing actor type", func(c *Context) { c.ActorType = "" }, dErrors.CodeActorMissing},
		{"unknown actor type", func(c *Context) { c.ActorType = "robot" }, dErrors.CodeActorMissing},
		{"missing app id", func(c *Context) { c.AppID = "" }, dErrors.CodeAppMissing},
		{"missing environment", func(c *Context) { c.Environment = "" }, dErrors.CodeEnvMissing},
		{"unknown environment", func(c *Context) { c.Environment = "qa" }, dErrors.CodeEnvMissing},
		{"missing version", func(c *Context) { c.Version = "" }, dErrors.CodeVersionMissing},
		{"missing build timestamp", func(c *Context) { c.BuildTimestamp = "" }, dErrors.CodeVersionMissing},
		{"missing request id", func(c *Context) { c.RequestID = "" }, dErrors.CodeInvalidInput},
		{"missing trace id", func(c *Context) { c.TraceID = "" }, dErrors.CodeInvalidInput},
		{"missing data class", func(c *Context) { c.DataClass = "" }, dErrors.CodeDataClassInvalid},
		{"unknown data class", func(c *Context) { c.DataClass = "secret" }, dErrors.CodeDataClassInvalid},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			c := valid()
			tc.mutate(&c)
			_, err := Assert(&c)
			s.Require().Error(err)
			s.Equal(tc.code, dErrors.CodeOf(err))
		})
	}
}

func (s *AssertSuite) TestDenyCrossWorkspace() {
	s.Run("allows exact match", func() {
		s.NoError(DenyCrossWorkspace("ws-1", "ws-1"))
	})

	s.Run("denies mismatch", func() {
		err := DenyCrossWorkspace("ws-1", "ws-2")
		s.Require().Error(err)
		s.Equal(dErrors.CodeCrossWorkspaceDenied, dErrors.CodeOf(err))
	})

	s.Run("denies empty ids", func() {
		s.Equal(dErrors.CodeWorkspaceMissing, dErrors.CodeOf(DenyCrossWorkspace("", "ws-1")))
		s.Equal(dErrors.CodeWorkspaceMissing, dErrors.CodeOf(DenyCrossWorkspace("ws-1", "")))
		s.Equal(dErrors.CodeWorkspaceMissing, dErrors.CodeOf(DenyCrossWorkspace("", "")))
	})
}

func (s *AssertSuite) TestDataClassSensitivity() {
	s.False(DataClassNone.Sensitive())
	s.False(DataClassInternal.Sensitive())
	s.True(DataClassPII.Sensitive())
	s.True(DataClassPHI.Sensitive())
	s.True(DataClassRestricted.Sensitive())
}
