package ports

import (
	"context"
	"time"
)

// Outcome classifies how a turn ended.
type Outcome string

const (
	OutcomeOK              Outcome = "ok"
	OutcomePrompt          Outcome = "prompt"
	OutcomeUnresolvedSlot  Outcome = "unresolved_slot"
	OutcomeUnauthenticated Outcome = "unauthenticated"
	OutcomeAuthRejected    Outcome = "auth_rejected"
	OutcomeRemoteFailure   Outcome = "remote_failure"
	OutcomeStoreFailure    Outcome = "store_failure"
	OutcomeError           Outcome = "error"
)

// EventKind distinguishes finished turns from errors reported mid-turn.
type EventKind string

const (
	EventTurn  EventKind = "turn"
	EventError EventKind = "error"
)

// Event is one telemetry record.
type Event struct {
	Kind   EventKind
	TurnID string
	UserID string
	// Intent is a bounded label: a known intent name, a known request type or "Unknown".
	Intent string
	// RawIntent is the intent name as the platform sent it. Log fields only.
	RawIntent string
	Outcome   Outcome
	Err       error
	Duration  time.Duration
}

// Telemetry receives events. Implementations must not block the turn.
type Telemetry interface {
	Capture(ctx context.Context, e Event)
}
