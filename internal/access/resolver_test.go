package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
)

func member(role domain.Role, access domain.AccessLevel, stableID id.StableID) domain.Membership {
	return domain.Membership{
		UserID:    id.NewUserID(),
		StableID:  stableID,
		Role:      role,
		Access:    access,
		GrantedAt: time.Now(),
	}
}

func userWith(memberships ...domain.Membership) *domain.User {
	return &domain.User{
		ID:          id.NewUserID(),
		DisplayName: "Test User",
		Memberships: memberships,
	}
}

func TestResolve(t *testing.T) {
	stableID := id.NewStableID()

	t.Run("nil user has no access", func(t *testing.T) {
		assert.Equal(t, NoAccess(), Resolve(nil, stableID))
	})

	t.Run("no membership yields all-false capabilities", func(t *testing.T) {
		user := userWith(member(domain.RoleStaff, domain.AccessEdit, id.NewStableID()))
		caps := Resolve(user, stableID)
		assert.Equal(t, NoAccess(), caps)
		assert.False(t, caps.CanView)
	})

	t.Run("view tier sees but cannot edit", func(t *testing.T) {
		user := userWith(member(domain.RoleRider, domain.AccessView, stableID))
		caps := Resolve(user, stableID)
		assert.True(t, caps.CanView)
		assert.False(t, caps.CanEditSchedule)
		assert.False(t, caps.CanManagePaddocks)
		assert.False(t, caps.CanManageMembers)
		assert.False(t, caps.CanEditStableSettings)
	})

	t.Run("edit tier edits schedule and paddocks but not members", func(t *testing.T) {
		user := userWith(member(domain.RoleStaff, domain.AccessEdit, stableID))
		caps := Resolve(user, stableID)
		assert.True(t, caps.CanView)
		assert.True(t, caps.CanEditSchedule)
		assert.True(t, caps.CanManagePaddocks)
		assert.False(t, caps.CanManageMembers)
		assert.False(t, caps.CanEditStableSettings)
	})

	t.Run("owner tier grants everything", func(t *testing.T) {
		user := userWith(member(domain.RoleGuest, domain.AccessOwner, stableID))
		caps := Resolve(user, stableID)
		assert.True(t, caps.CanView)
		assert.True(t, caps.CanEditSchedule)
		assert.True(t, caps.CanManagePaddocks)
		assert.True(t, caps.CanManageMembers)
		assert.True(t, caps.CanEditStableSettings)
		assert.True(t, caps.CanManageOnboarding)
	})

	t.Run("tiers are monotonic supersets", func(t *testing.T) {
		flags := func(c Capabilities) []bool {
			return []bool{c.CanView, c.CanEditSchedule, c.CanManagePaddocks, c.CanManageMembers, c.CanEditStableSettings}
		}
		view := flags(Resolve(userWith(member(domain.RoleRider, domain.AccessView, stableID)), stableID))
		edit := flags(Resolve(userWith(member(domain.RoleRider, domain.AccessEdit, stableID)), stableID))
		owner := flags(Resolve(userWith(member(domain.RoleRider, domain.AccessOwner, stableID)), stableID))
		for i := range view {
			if view[i] {
				assert.True(t, edit[i], "edit must grant everything view grants")
			}
			if edit[i] {
				assert.True(t, owner[i], "owner must grant everything edit grants")
			}
		}
	})

	t.Run("admin role grants onboarding without owner tier", func(t *testing.T) {
		user := userWith(member(domain.RoleAdmin, domain.AccessView, stableID))
		caps := Resolve(user, stableID)
		assert.True(t, caps.CanManageOnboarding)
		assert.False(t, caps.CanManageMembers)
	})
}

func TestDisplayLabel(t *testing.T) {
	stableID := id.NewStableID()

	t.Run("owner tier always labels Owner", func(t *testing.T) {
		m := member(domain.RoleFarrier, domain.AccessOwner, stableID)
		m.CustomRole = "Head Smith"
		assert.Equal(t, "Owner", DisplayLabel(m))
	})

	t.Run("custom role beats the role table", func(t *testing.T) {
		m := member(domain.RoleFarrier, domain.AccessEdit, stableID)
		m.CustomRole = "Head Smith"
		assert.Equal(t, "Head Smith", DisplayLabel(m))
	})

	t.Run("whitespace-only custom role falls through", func(t *testing.T) {
		m := member(domain.RoleFarrier, domain.AccessEdit, stableID)
		m.CustomRole = "   "
		assert.Equal(t, domain.RoleFarrier.Label(), DisplayLabel(m))
	})

	t.Run("unknown role falls back to the raw tag", func(t *testing.T) {
		m := member(domain.Role("wrangler"), domain.AccessView, stableID)
		assert.Equal(t, "wrangler", DisplayLabel(m))
	})
}

func TestCanManageOnboardingAny(t *testing.T) {
	t.Run("nil user cannot", func(t *testing.T) {
		assert.False(t, CanManageOnboardingAny(nil))
	})

	t.Run("plain memberships cannot", func(t *testing.T) {
		user := userWith(
			member(domain.RoleRider, domain.AccessView, id.NewStableID()),
			member(domain.RoleStaff, domain.AccessEdit, id.NewStableID()),
		)
		assert.False(t, CanManageOnboardingAny(user))
	})

	t.Run("a single owner membership anywhere flips it", func(t *testing.T) {
		user := userWith(
			member(domain.RoleRider, domain.AccessView, id.NewStableID()),
			member(domain.RoleRider, domain.AccessOwner, id.NewStableID()),
		)
		assert.True(t, CanManageOnboardingAny(user))
	})

	t.Run("an admin role anywhere flips it", func(t *testing.T) {
		user := userWith(member(domain.RoleAdmin, domain.AccessView, id.NewStableID()))
		assert.True(t, CanManageOnboardingAny(user))
	})

	t.Run("revoking the qualifying membership revokes entry", func(t *testing.T) {
		owner := member(domain.RoleRider, domain.AccessOwner, id.NewStableID())
		user := userWith(member(domain.RoleRider, domain.AccessView, id.NewStableID()), owner)
		require.True(t, CanManageOnboardingAny(user))

		user.Memberships = user.Memberships[:1]
		assert.False(t, CanManageOnboardingAny(user))
	})
}
