// Package telemetry carries a ports.Telemetry sink through request contexts
// and provides the sinks the service ships with.
package telemetry

import (
	"context"
	"sync"

	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
)

type sinkKey struct{}

// WithSink returns a context that carries sink.
func WithSink(ctx context.Context, sink ports.Telemetry) context.Context {
	return context.WithValue(ctx, sinkKey{}, sink)
}

// FromContext returns the sink carried by ctx, or Nop.
func FromContext(ctx context.Context) ports.Telemetry {
	if sink, ok := ctx.Value(sinkKey{}).(ports.Telemetry); ok && sink != nil {
		return sink
	}
	return Nop{}
}

// Nop discards every event.
type Nop struct{}

func (Nop) Capture(context.Context, ports.Event) {}

// Multi fans an event out to several sinks in order.
type Multi []ports.Telemetry

func (m Multi) Capture(ctx context.Context, e ports.Event) {
	for _, s := range m {
		s.Capture(ctx, e)
	}
}

// Recorder keeps every event in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []ports.Event
}

func (r *Recorder) Capture(_ context.Context, e ports.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []ports.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.Event(nil), r.events...)
}

// Errors returns only the error events.
func (r *Recorder) Errors() []ports.Event {
	var out []ports.Event
	for _, e := range r.Events() {
		if e.Kind == ports.EventError {
			out = append(out, e)
		}
	}
	return out
}

var (
	_ ports.Telemetry = Nop{}
	_ ports.Telemetry = Multi(nil)
	_ ports.Telemetry = (*Recorder)(nil)
)
