package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
)

func TestParseDate(t *testing.T) {
	t.Run("accepts ISO dates", func(t *testing.T) {
		d, err := ParseDate("2024-03-09")
		require.NoError(t, err)
		assert.Equal(t, Date("2024-03-09"), d)
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		for _, raw := range []string{"", "09/03/2024", "2024-3-9", "2024-03-09T00:00:00Z", "tomorrow"} {
			_, err := ParseDate(raw)
			require.Error(t, err, "input %q", raw)
			assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
		}
	})
}

func TestDateArithmetic(t *testing.T) {
	t.Run("AddDays crosses month boundaries", func(t *testing.T) {
		assert.Equal(t, Date("2024-04-01"), Date("2024-03-31").AddDays(1))
	})

	t.Run("AddDays handles leap years", func(t *testing.T) {
		assert.Equal(t, Date("2024-02-29"), Date("2024-02-28").AddDays(1))
	})

	t.Run("DateOf truncates to the calendar day", func(t *testing.T) {
		at := time.Date(2024, 3, 9, 23, 59, 0, 0, time.Local)
		assert.Equal(t, Date("2024-03-09"), DateOf(at))
	})
}

func TestNewAssignment(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	stableID := id.NewStableID()

	t.Run("valid construction trims the assignee", func(t *testing.T) {
		a, err := NewAssignment(id.NewAssignmentID(), stableID, "2024-03-09", SlotMorning, TaskFeeding, "  Astrid ", now)
		require.NoError(t, err)
		assert.Equal(t, "Astrid", a.Assignee)
	})

	t.Run("rejects a nil stable", func(t *testing.T) {
		_, err := NewAssignment(id.NewAssignmentID(), id.StableID{}, "2024-03-09", SlotMorning, TaskFeeding, "", now)
		assert.Error(t, err)
	})

	t.Run("rejects unknown slot and task", func(t *testing.T) {
		_, err := NewAssignment(id.NewAssignmentID(), stableID, "2024-03-09", Slot("dawn"), TaskFeeding, "", now)
		assert.Error(t, err)

		_, err = NewAssignment(id.NewAssignmentID(), stableID, "2024-03-09", SlotMorning, TaskKind("juggling"), "", now)
		assert.Error(t, err)
	})
}

func TestAssignmentPatch(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	a, err := NewAssignment(id.NewAssignmentID(), id.NewStableID(), "2024-03-09", SlotMorning, TaskFeeding, "Astrid", now)
	require.NoError(t, err)

	t.Run("malformed date fails validation", func(t *testing.T) {
		bad := Date("someday")
		assert.Error(t, a.CanApply(AssignmentPatch{Date: &bad}))
	})

	t.Run("nil fields keep current values", func(t *testing.T) {
		cp := a.Clone()
		newDate := Date("2024-03-12")
		patch := AssignmentPatch{Date: &newDate}
		require.NoError(t, cp.CanApply(patch))

		later := now.Add(time.Hour)
		cp.Apply(patch, later)
		assert.Equal(t, newDate, cp.Date)
		assert.Equal(t, SlotMorning, cp.Slot)
		assert.Equal(t, TaskFeeding, cp.Task)
		assert.Equal(t, "Astrid", cp.Assignee)
		assert.Equal(t, later, cp.UpdatedAt)
	})
}
