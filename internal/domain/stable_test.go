package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "stablehand/pkg/domain"
)

func TestNewStable(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)

	t.Run("starts with every event category visible", func(t *testing.T) {
		s, err := NewStable(id.NewStableID(), "Hilltop", "Uppsala", now)
		require.NoError(t, err)
		for _, c := range EventCategories() {
			assert.True(t, s.Settings.EventVisibility.Visible(c), "category %s", c)
		}
	})

	t.Run("trims name and location", func(t *testing.T) {
		s, err := NewStable(id.NewStableID(), "  Hilltop  ", "  Uppsala  ", now)
		require.NoError(t, err)
		assert.Equal(t, "Hilltop", s.Name)
		assert.Equal(t, "Uppsala", s.Location)
	})

	t.Run("rejects blank and oversized names", func(t *testing.T) {
		_, err := NewStable(id.NewStableID(), "   ", "", now)
		assert.Error(t, err)

		_, err = NewStable(id.NewStableID(), strings.Repeat("x", 129), "", now)
		assert.Error(t, err)
	})
}

func TestEventVisibility(t *testing.T) {
	t.Run("unknown categories default to visible", func(t *testing.T) {
		hiddenEverything := EventVisibility{}
		assert.True(t, hiddenEverything.Visible(EventCategory("parade")))
		assert.False(t, hiddenEverything.Visible(EventFeeding))
	})

	t.Run("patch merges only the set fields", func(t *testing.T) {
		hide := false
		got := EventVisibilityPatch{Cleaning: &hide}.Apply(DefaultEventVisibility())
		assert.False(t, got.Cleaning)
		assert.True(t, got.Feeding)
		assert.True(t, got.RiderAway)
		assert.True(t, got.Evening)
	})
}

func TestStablePatch(t *testing.T) {
	now := time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC)
	s, err := NewStable(id.NewStableID(), "Hilltop", "Uppsala", now)
	require.NoError(t, err)

	t.Run("blank name fails validation", func(t *testing.T) {
		blank := "   "
		assert.Error(t, s.CanApply(StablePatch{Name: &blank}))
	})

	t.Run("apply touches only set fields and bumps UpdatedAt", func(t *testing.T) {
		cp := s.Clone()
		name := " New Name "
		later := now.Add(time.Hour)
		cp.Apply(StablePatch{Name: &name}, later)

		assert.Equal(t, "New Name", cp.Name)
		assert.Equal(t, "Uppsala", cp.Location)
		assert.Equal(t, later, cp.UpdatedAt)
	})

	t.Run("visibility patch nested in a stable patch", func(t *testing.T) {
		cp := s.Clone()
		hide := false
		cp.Apply(StablePatch{EventVisibility: &EventVisibilityPatch{VetAway: &hide}}, now)
		assert.False(t, cp.Settings.EventVisibility.VetAway)
		assert.True(t, cp.Settings.EventVisibility.Feeding)
	})
}
