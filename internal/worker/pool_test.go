package worker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ewilliams-labs/blendvoice/internal/core/ports"
	"github.com/ewilliams-labs/blendvoice/internal/telemetry"
)

func TestPool_DeliversEventsBeforeStop(t *testing.T) {
	rec := &telemetry.Recorder{}
	pool := NewPool(rec, zap.NewNop(), 2, 16)
	pool.Start()

	ctx, cancel := context.WithCancel(context.Background())
	for i := 0; i < 10; i++ {
		pool.Capture(ctx, ports.Event{Kind: ports.EventTurn})
	}
	cancel()
	pool.Stop()

	assert.Len(t, rec.Events(), 10)
}

func TestPool_DropsWhenQueueFull(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &telemetry.Recorder{}
	pool := NewPool(rec, zap.New(core), 1, 1)

	// Not started: the single queue slot fills and the rest are dropped.
	pool.Capture(context.Background(), ports.Event{TurnID: "kept"})
	pool.Capture(context.Background(), ports.Event{TurnID: "dropped"})

	pool.Start()
	pool.Stop()

	events := rec.Events()
	if assert.Len(t, events, 1) {
		assert.Equal(t, "kept", events[0].TurnID)
	}
	assert.Equal(t, 1, logs.FilterMessage("dropping telemetry event").Len())
}

func TestNewPool_ClampsSizes(t *testing.T) {
	pool := NewPool(telemetry.Nop{}, zap.NewNop(), 0, 0)
	assert.Equal(t, 1, pool.workers)
	assert.Equal(t, 1, cap(pool.jobs))
}

func TestPool_CaptureAfterStopIsDropped(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := &telemetry.Recorder{}
	pool := NewPool(rec, zap.New(core), 1, 4)
	pool.Start()
	pool.Stop()

	assert.NotPanics(t, func() {
		pool.Capture(context.Background(), ports.Event{TurnID: "late"})
	})
	assert.NotPanics(t, pool.Stop)

	assert.Empty(t, rec.Events())
	assert.Equal(t, 1, logs.FilterMessage("pool stopped, dropping telemetry event").Len())
}
