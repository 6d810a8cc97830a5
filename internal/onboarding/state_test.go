package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
)

func TestSetMode(t *testing.T) {
	t.Run("rejects unknown modes", func(t *testing.T) {
		m := NewMachine()
		err := m.SetMode(Mode("express"))
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	t.Run("mode can be flipped before advancing", func(t *testing.T) {
		m := NewMachine()
		require.NoError(t, m.SetMode(ModeQuick))
		require.NoError(t, m.SetMode(ModeGuided))
		assert.Equal(t, ModeGuided, m.Snapshot().Mode)
		assert.Equal(t, StepModeSelected, m.Snapshot().Step)
	})

	t.Run("mode is locked once setup has begun", func(t *testing.T) {
		m := NewMachine()
		require.NoError(t, m.SetMode(ModeQuick))
		_, err := m.Advance()
		require.NoError(t, err)
		assert.Error(t, m.SetMode(ModeGuided))
	})
}

func TestQuickFlow(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.SetMode(ModeQuick))

	state, err := m.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepEvents, state.Step)

	state, err = m.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepComplete, state.Step)

	_, err = m.Advance()
	assert.Error(t, err, "advancing past complete must fail")
}

func TestGuidedFlow(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.SetMode(ModeGuided))

	state, err := m.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepFarmDecision, state.Step)

	t.Run("cannot advance without the farm decision", func(t *testing.T) {
		_, err := m.Advance()
		assert.Error(t, err)
	})

	require.NoError(t, m.SetHasFarm(true))
	state, err = m.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepStables, state.Step)

	state, err = m.Advance()
	require.NoError(t, err)
	assert.Equal(t, StepEvents, state.Step)

	state, err = m.SkipEvents()
	require.NoError(t, err)
	assert.Equal(t, StepComplete, state.Step)
}

func TestSetHasFarm(t *testing.T) {
	t.Run("rejected outside the guided farm-decision step", func(t *testing.T) {
		m := NewMachine()
		assert.Error(t, m.SetHasFarm(true))

		require.NoError(t, m.SetMode(ModeQuick))
		assert.Error(t, m.SetHasFarm(true))
	})
}

func TestSkipEvents(t *testing.T) {
	t.Run("only available at the events step", func(t *testing.T) {
		m := NewMachine()
		_, err := m.SkipEvents()
		assert.Error(t, err)
	})
}

func TestReset(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.SetMode(ModeGuided))
	_, err := m.Advance()
	require.NoError(t, err)
	require.NoError(t, m.SetHasFarm(false))

	m.Reset()
	state := m.Snapshot()
	assert.Equal(t, StepNotStarted, state.Step)
	assert.Empty(t, state.Mode)
	assert.Nil(t, state.HasFarm)
}

func TestSnapshotCopiesHasFarm(t *testing.T) {
	m := NewMachine()
	require.NoError(t, m.SetMode(ModeGuided))
	_, err := m.Advance()
	require.NoError(t, err)
	require.NoError(t, m.SetHasFarm(true))

	snap := m.Snapshot()
	*snap.HasFarm = false

	again := m.Snapshot()
	assert.True(t, *again.HasFarm, "mutating a snapshot must not touch the machine")
}

func TestGuard(t *testing.T) {
	membership := func(role domain.Role, tier domain.AccessLevel) domain.Membership {
		return domain.Membership{
			UserID:   id.NewUserID(),
			StableID: id.NewStableID(),
			Role:     role,
			Access:   tier,
		}
	}

	t.Run("nil user is rejected", func(t *testing.T) {
		err := Guard(nil)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeForbidden))
	})

	t.Run("plain member is rejected", func(t *testing.T) {
		user := &domain.User{Memberships: []domain.Membership{membership(domain.RoleRider, domain.AccessView)}}
		assert.Error(t, Guard(user))
	})

	t.Run("owner anywhere passes", func(t *testing.T) {
		user := &domain.User{Memberships: []domain.Membership{
			membership(domain.RoleRider, domain.AccessView),
			membership(domain.RoleRider, domain.AccessOwner),
		}}
		assert.NoError(t, Guard(user))
	})

	t.Run("admin role anywhere passes", func(t *testing.T) {
		user := &domain.User{Memberships: []domain.Membership{membership(domain.RoleAdmin, domain.AccessView)}}
		assert.NoError(t, Guard(user))
	})
}
