package alerting

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

// FanoutSink delivers one dispatch to every wrapped sink concurrently. All
// sinks are attempted even when some fail; the joined error reports every
// failure so partial delivery is never silently dropped.
type FanoutSink struct {
	sinks []Sink
}

func NewFanout(sinks ...Sink) *FanoutSink {
	return &FanoutSink{sinks: sinks}
}

func (f *FanoutSink) Dispatch(ctx context.Context, d Dispatch) error {
	errs := make([]error, len(f.sinks))
	var g errgroup.Group
	for i, sink := range f.sinks {
		g.Go(func() error {
			errs[i] = sink.Dispatch(ctx, d)
			return nil
		})
	}
	_ = g.Wait() // workers record their own errors
	return errors.Join(errs...)
}
