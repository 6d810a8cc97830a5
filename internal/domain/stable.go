package domain

import (
	"strings"
	"time"

	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
)

// Stable is the aggregate root for one tenant organization. Paddocks,
// assignments, and memberships hang off it by StableID.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - Settings always resolves to a complete EventVisibility (missing
//     categories default to visible)
//
// Stables are soft-scoped rather than hard-deleted; no delete operation
// exists in this core and external collaborators decide retention.
type Stable struct {
	ID        id.StableID
	Name      string
	Location  string
	Settings  Settings
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewStable constructs an active stable with fully-visible event settings.
func NewStable(stableID id.StableID, name, location string, now time.Time) (*Stable, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "stable name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "stable name must be 128 characters or less")
	}
	return &Stable{
		ID:        stableID,
		Name:      name,
		Location:  strings.TrimSpace(location),
		Settings:  Settings{EventVisibility: DefaultEventVisibility()},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Clone returns a deep copy for defensive snapshots.
func (s *Stable) Clone() *Stable {
	if s == nil {
		return nil
	}
	cp := *s
	return &cp
}

// Settings is the per-stable configuration sub-record.
type Settings struct {
	EventVisibility EventVisibility
}

// EventCategory names a kind of schedule event that can be toggled on or off
// in calendar views.
type EventCategory string

const (
	EventFeeding     EventCategory = "feeding"
	EventCleaning    EventCategory = "cleaning"
	EventRiderAway   EventCategory = "riderAway"
	EventFarrierAway EventCategory = "farrierAway"
	EventVetAway     EventCategory = "vetAway"
	EventEvening     EventCategory = "evening"
)

// EventCategories lists every category in display order.
func EventCategories() []EventCategory {
	return []EventCategory{
		EventFeeding,
		EventCleaning,
		EventRiderAway,
		EventFarrierAway,
		EventVetAway,
		EventEvening,
	}
}

// EventVisibility holds the per-category visibility toggles.
type EventVisibility struct {
	Feeding     bool
	Cleaning    bool
	RiderAway   bool
	FarrierAway bool
	VetAway     bool
	Evening     bool
}

// DefaultEventVisibility returns the everything-visible baseline.
func DefaultEventVisibility() EventVisibility {
	return EventVisibility{
		Feeding:     true,
		Cleaning:    true,
		RiderAway:   true,
		FarrierAway: true,
		VetAway:     true,
		Evening:     true,
	}
}

// Visible reports whether the given category is shown. Unknown categories are
// visible; hiding is always an explicit choice.
func (v EventVisibility) Visible(category EventCategory) bool {
	switch category {
	case EventFeeding:
		return v.Feeding
	case EventCleaning:
		return v.Cleaning
	case EventRiderAway:
		return v.RiderAway
	case EventFarrierAway:
		return v.FarrierAway
	case EventVetAway:
		return v.VetAway
	case EventEvening:
		return v.Evening
	default:
		return true
	}
}

// EventVisibilityPatch is a partial update; nil fields keep the current
// value, which is how "missing keys default to visible" survives updates
// that only mention some categories.
type EventVisibilityPatch struct {
	Feeding     *bool
	Cleaning    *bool
	RiderAway   *bool
	FarrierAway *bool
	VetAway     *bool
	Evening     *bool
}

// Apply merges the patch over the current visibility.
func (p EventVisibilityPatch) Apply(current EventVisibility) EventVisibility {
	if p.Feeding != nil {
		current.Feeding = *p.Feeding
	}
	if p.Cleaning != nil {
		current.Cleaning = *p.Cleaning
	}
	if p.RiderAway != nil {
		current.RiderAway = *p.RiderAway
	}
	if p.FarrierAway != nil {
		current.FarrierAway = *p.FarrierAway
	}
	if p.VetAway != nil {
		current.VetAway = *p.VetAway
	}
	if p.Evening != nil {
		current.Evening = *p.Evening
	}
	return current
}

// StablePatch is a partial update applied by the gateway. Nil fields are
// untouched.
type StablePatch struct {
	Name            *string
	Location        *string
	EventVisibility *EventVisibilityPatch
}

// CanApply validates the patch against the stable's invariants.
func (s *Stable) CanApply(patch StablePatch) error {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "stable name cannot be empty")
		}
		if len(name) > 128 {
			return dErrors.New(dErrors.CodeInvariantViolation, "stable name must be 128 characters or less")
		}
	}
	return nil
}

// Apply commits the patch. Call CanApply first; Apply assumes a valid patch.
func (s *Stable) Apply(patch StablePatch, now time.Time) {
	if patch.Name != nil {
		s.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Location != nil {
		s.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.EventVisibility != nil {
		s.Settings.EventVisibility = patch.EventVisibility.Apply(s.Settings.EventVisibility)
	}
	s.UpdatedAt = now
}
