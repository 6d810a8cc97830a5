// Package access derives effective permissions. Everything here is pure
// domain logic - no I/O, no side effects - so resolving on every render is
// cheap and safe.
package access

import (
	"strings"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
)

// OwnerLabel is the fixed display label for owner-tier members, independent
// of their descriptive role.
const OwnerLabel = "Owner"

// Capabilities is the derived permission record for one user within one
// stable. Flags are monotonic in the access tier: owner implies everything
// edit implies, which implies everything view implies.
type Capabilities struct {
	Access domain.AccessLevel

	CanView               bool
	CanEditSchedule       bool
	CanManagePaddocks     bool
	CanManageMembers      bool
	CanEditStableSettings bool
	CanManageOnboarding   bool
}

// NoAccess is the all-false capability set returned when no membership links
// the user to the stable.
func NoAccess() Capabilities {
	return Capabilities{}
}

// Resolve derives the capability record for the user against the target
// stable. A missing membership yields NoAccess; there is no super-admin
// override in this system.
func Resolve(user *domain.User, stableID id.StableID) Capabilities {
	if user == nil {
		return NoAccess()
	}
	m, ok := user.MembershipFor(stableID)
	if !ok {
		return NoAccess()
	}
	return fromMembership(m)
}

func fromMembership(m domain.Membership) Capabilities {
	c := Capabilities{Access: m.Access}
	if m.Access.AtLeast(domain.AccessView) {
		c.CanView = true
	}
	if m.Access.AtLeast(domain.AccessEdit) {
		c.CanEditSchedule = true
		c.CanManagePaddocks = true
	}
	if m.Access.AtLeast(domain.AccessOwner) {
		c.CanManageMembers = true
		c.CanEditStableSettings = true
	}
	// Onboarding management follows ownership or the admin role, whichever
	// is present.
	if m.Access.AtLeast(domain.AccessOwner) || m.Role == domain.RoleAdmin {
		c.CanManageOnboarding = true
	}
	return c
}

// DisplayLabel resolves the member's display label.
// Priority: owner tier wins, then a non-blank custom role verbatim, then the
// role's table label. Unknown roles fall back to the raw tag, never a crash.
func DisplayLabel(m domain.Membership) string {
	if m.Access == domain.AccessOwner {
		return OwnerLabel
	}
	if custom := strings.TrimSpace(m.CustomRole); custom != "" {
		return custom
	}
	return m.Role.Label()
}

// CanManageOnboardingAny reports whether any membership of the user, across
// any stable, carries owner access or the admin role. It gates entry into
// the setup flow and must be recomputed whenever memberships or the current
// user change; being pure, callers just call it again.
func CanManageOnboardingAny(user *domain.User) bool {
	if user == nil {
		return false
	}
	for _, m := range user.Memberships {
		if m.Access == domain.AccessOwner || m.Role == domain.RoleAdmin {
			return true
		}
	}
	return false
}
