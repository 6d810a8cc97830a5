package storage

import (
	"context"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
)

// Stores are interface-driven to keep the domain logic testable and to allow
// swapping the in-memory implementation without rewiring business code. All
// reads return defensive snapshots; callers must treat them as value copies.
// The gateway is the only caller of the write methods.

// UserStore owns the id→User mapping, including each user's ordered
// membership list.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	FindUser(ctx context.Context, userID id.UserID) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	// ExecuteUser holds the store lock across validate-then-mutate so a
	// rejected validation leaves the user untouched.
	ExecuteUser(ctx context.Context, userID id.UserID, validate func(*domain.User) error, mutate func(*domain.User)) (*domain.User, error)
}

// StableStore owns the ordered stable sequence.
type StableStore interface {
	CreateStable(ctx context.Context, stable *domain.Stable) error
	FindStable(ctx context.Context, stableID id.StableID) (*domain.Stable, error)
	ListStables(ctx context.Context) ([]*domain.Stable, error)
	ExecuteStable(ctx context.Context, stableID id.StableID, validate func(*domain.Stable) error, mutate func(*domain.Stable)) (*domain.Stable, error)
}

// MembershipStore relates users to stables. Writes reject memberships whose
// user or stable is absent from the store (no orphans, ever).
type MembershipStore interface {
	PutMembership(ctx context.Context, m domain.Membership) error
	RemoveMembership(ctx context.Context, userID id.UserID, stableID id.StableID) error
	ListMemberships(ctx context.Context, userID id.UserID) ([]domain.Membership, error)
	ListMembers(ctx context.Context, stableID id.StableID) ([]domain.Membership, error)
}

// PaddockStore owns paddocks keyed by id, scoped to their stable.
type PaddockStore interface {
	CreatePaddock(ctx context.Context, p *domain.Paddock) error
	FindPaddock(ctx context.Context, paddockID id.PaddockID) (*domain.Paddock, error)
	ListPaddocks(ctx context.Context, stableID id.StableID) ([]*domain.Paddock, error)
	ExecutePaddock(ctx context.Context, paddockID id.PaddockID, validate func(*domain.Paddock) error, mutate func(*domain.Paddock)) (*domain.Paddock, error)
	DeletePaddock(ctx context.Context, paddockID id.PaddockID) error
}

// AssignmentStore owns assignments keyed by id, scoped to their stable.
type AssignmentStore interface {
	CreateAssignment(ctx context.Context, a *domain.Assignment) error
	FindAssignment(ctx context.Context, assignmentID id.AssignmentID) (*domain.Assignment, error)
	ListAssignments(ctx context.Context, stableID id.StableID) ([]*domain.Assignment, error)
	ListAssignmentsInRange(ctx context.Context, stableID id.StableID, from, to domain.Date) ([]*domain.Assignment, error)
	ExecuteAssignment(ctx context.Context, assignmentID id.AssignmentID, validate func(*domain.Assignment) error, mutate func(*domain.Assignment)) (*domain.Assignment, error)
	DeleteAssignment(ctx context.Context, assignmentID id.AssignmentID) error
}

// SelectionStore owns the current user/stable pointers. Switches validate
// that the target exists and fail without moving the pointer otherwise.
type SelectionStore interface {
	Selection(ctx context.Context) (domain.Selection, error)
	SetCurrentUser(ctx context.Context, userID id.UserID) error
	SetCurrentStable(ctx context.Context, stableID id.StableID) error
}
