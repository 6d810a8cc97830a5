// Package onboarding holds the short-lived setup wizard state. The machine
// is session-scoped: it lives as long as the setup flow is on screen and is
// discarded (Reset) when the flow unmounts. Nothing here is persisted.
package onboarding

import (
	"sync"

	"stablehand/internal/access"
	"stablehand/internal/domain"
	dErrors "stablehand/pkg/domain-errors"
)

// Mode selects between the two setup flavors.
type Mode string

const (
	ModeQuick  Mode = "quick"
	ModeGuided Mode = "guided"
)

// Step is the wizard's current position.
type Step string

const (
	StepNotStarted   Step = "not-started"
	StepModeSelected Step = "mode-selected"
	StepFarmDecision Step = "farm-decision"
	StepStables      Step = "stables"
	StepEvents       Step = "events"
	StepComplete     Step = "complete"
)

// State is a snapshot of the wizard. HasFarm is tri-state: nil until the
// user decides whether they run a multi-stable farm.
type State struct {
	Step    Step
	Mode    Mode
	HasFarm *bool
}

// Machine drives the wizard:
//
//	not-started → mode-selected → (guided: farm-decision → stables) → events → complete
//
// Quick mode jumps from mode-selected straight to events; events itself is
// optional and can be skipped into complete.
type Machine struct {
	mu    sync.Mutex
	state State
}

// NewMachine returns a machine at not-started.
func NewMachine() *Machine {
	return &Machine{state: State{Step: StepNotStarted}}
}

// Snapshot returns a copy of the current state.
func (m *Machine) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	if s.HasFarm != nil {
		v := *s.HasFarm
		s.HasFarm = &v
	}
	return s
}

// SetMode records the chosen mode. Allowed at not-started and again at
// mode-selected (the user may flip before advancing).
func (m *Machine) SetMode(mode Mode) error {
	if mode != ModeQuick && mode != ModeGuided {
		return dErrors.New(dErrors.CodeInvalidInput, "unknown onboarding mode: "+string(mode))
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Step != StepNotStarted && m.state.Step != StepModeSelected {
		return dErrors.New(dErrors.CodeInvariantViolation, "mode can only be chosen before setup begins")
	}
	m.state.Mode = mode
	m.state.Step = StepModeSelected
	return nil
}

// SetHasFarm records the multi-stable farm decision during the guided flow.
func (m *Machine) SetHasFarm(hasFarm bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Mode != ModeGuided || m.state.Step != StepFarmDecision {
		return dErrors.New(dErrors.CodeInvariantViolation, "farm decision only applies to the guided flow")
	}
	m.state.HasFarm = &hasFarm
	return nil
}

// Advance moves to the next step. Guided flow requires the farm decision
// before leaving farm-decision.
func (m *Machine) Advance() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch m.state.Step {
	case StepNotStarted:
		return m.state, dErrors.New(dErrors.CodeInvariantViolation, "choose a setup mode first")
	case StepModeSelected:
		if m.state.Mode == ModeGuided {
			m.state.Step = StepFarmDecision
		} else {
			m.state.Step = StepEvents
		}
	case StepFarmDecision:
		if m.state.HasFarm == nil {
			return m.state, dErrors.New(dErrors.CodeInvariantViolation, "decide on the farm question first")
		}
		m.state.Step = StepStables
	case StepStables:
		m.state.Step = StepEvents
	case StepEvents:
		m.state.Step = StepComplete
	case StepComplete:
		return m.state, dErrors.New(dErrors.CodeInvariantViolation, "setup is already complete")
	}
	return m.state, nil
}

// SkipEvents completes setup without the optional event-visibility step.
func (m *Machine) SkipEvents() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Step != StepEvents {
		return m.state, dErrors.New(dErrors.CodeInvariantViolation, "nothing to skip at this step")
	}
	m.state.Step = StepComplete
	return m.state, nil
}

// Reset discards the wizard back to not-started. Called when the setup flow
// unmounts.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{Step: StepNotStarted}
}

// Guard is the protective re-entry check performed on every mount of the
// setup flow, not just the first transition: the acting user must be able to
// manage onboarding somewhere.
func Guard(user *domain.User) error {
	if !access.CanManageOnboardingAny(user) {
		return dErrors.New(dErrors.CodeForbidden, "insufficient access to manage onboarding")
	}
	return nil
}
