package domain

import (
	"strings"
	"time"

	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
)

// User is the account holder tracked by the store.
//
// Invariants:
//   - DisplayName is non-empty and at most 128 characters
//   - Memberships holds at most one entry per stable (enforced by the store
//     on every write)
//   - A user is never deleted while any membership references them
type User struct {
	ID          id.UserID
	DisplayName string
	Phone       string
	Location    string
	Memberships []Membership
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewUser constructs a user at account provisioning time.
func NewUser(userID id.UserID, displayName string, now time.Time) (*User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user display name cannot be empty")
	}
	if len(displayName) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "user display name must be 128 characters or less")
	}
	return &User{
		ID:          userID,
		DisplayName: displayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// MembershipFor returns the membership for the given stable, if any.
func (u *User) MembershipFor(stableID id.StableID) (Membership, bool) {
	for _, m := range u.Memberships {
		if m.StableID == stableID {
			return m, true
		}
	}
	return Membership{}, false
}

// Clone returns a deep copy; stores hand these out so callers cannot reach
// into shared state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	cp.Memberships = append([]Membership(nil), u.Memberships...)
	return &cp
}

// Membership links one user to one stable with a role and an access tier.
//
// Invariants:
//   - at most one membership per (user, stable) pair
//   - Role and Access are valid enum values
//   - Access=owner implies full management capability regardless of Role
type Membership struct {
	UserID     id.UserID
	StableID   id.StableID
	Role       Role
	CustomRole string
	Access     AccessLevel
	GrantedAt  time.Time
}

// NewMembership validates and constructs a membership.
func NewMembership(userID id.UserID, stableID id.StableID, role Role, access AccessLevel, now time.Time) (Membership, error) {
	if userID.IsNil() {
		return Membership{}, dErrors.New(dErrors.CodeInvariantViolation, "membership requires a user")
	}
	if stableID.IsNil() {
		return Membership{}, dErrors.New(dErrors.CodeInvariantViolation, "membership requires a stable")
	}
	if !role.IsValid() {
		return Membership{}, dErrors.New(dErrors.CodeInvariantViolation, "unknown role: "+string(role))
	}
	if !access.IsValid() {
		return Membership{}, dErrors.New(dErrors.CodeInvariantViolation, "unknown access level: "+string(access))
	}
	return Membership{
		UserID:    userID,
		StableID:  stableID,
		Role:      role,
		Access:    access,
		GrantedAt: now,
	}, nil
}
