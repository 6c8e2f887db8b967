package alerting

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

type countingSink struct {
	mu    sync.Mutex
	count int
	err   error
}

func (c *countingSink) Dispatch(_ context.Context, _ Dispatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	return c.err
}

type FanoutSuite struct {
	suite.Suite
}

func TestFanoutSuite(t *testing.T) {
	suite.Run(t, new(FanoutSuite))
}

func (s *FanoutSuite) TestAllSinksReceiveDispatch() {
	a, b, c := &countingSink{}, &countingSink{}, &countingSink{}
	fanout := NewFanout(a, b, c)

	s.Require().NoError(fanout.Dispatch(context.Background(), Dispatch{Transport: "webhook"}))
	s.Equal(1, a.count)
	s.Equal(1, b.count)
	s.Equal(1, c.count)
}

func (s *FanoutSuite) TestPartialFailureReportsEveryError() {
	errA := errors.New("smtp down")
	errC := errors.New("webhook 500")
	a := &countingSink{err: errA}
	b := &countingSink{}
	c := &countingSink{err: errC}
	fanout := NewFanout(a, b, c)

	err := fanout.Dispatch(context.Background(), Dispatch{Transport: "webhook"})
	s.Require().Error(err)
	s.True(errors.Is(err, errA))
	s.True(errors.Is(err, errC))
	s.Equal(1, b.count, "healthy sinks are still attempted")
}

func (s *FanoutSuite) TestEmptyFanout() {
	s.NoError(NewFanout().Dispatch(context.Background(), Dispatch{}))
}
