package audit

import (
	"time"

	id "stablehand/pkg/domain"
)

// Event records one mutation attempt against the store, committed or
// rejected. Keep it transport-agnostic so stores and sinks can fan out; the
// Reason field carries the same human-readable text the gateway returns, so
// the notification collaborator can surface it verbatim.
type Event struct {
	Timestamp time.Time
	ActorID   id.UserID
	StableID  id.StableID
	Action    string
	EntityID  string
	Committed bool
	Reason    string
}
