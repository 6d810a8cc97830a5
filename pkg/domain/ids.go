// Package domain holds typed identifiers shared across modules.
//
// IDs are distinct named uuid types so the compiler rejects cross-entity
// assignment; construct them via the Parse helpers at trust boundaries.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "stablehand/pkg/domain-errors"
)

type (
	// UserID identifies an account holder.
	UserID uuid.UUID
	// StableID identifies a stable (the tenant/organization unit).
	StableID uuid.UUID
	// PaddockID identifies a paddock within a stable.
	PaddockID uuid.UUID
	// AssignmentID identifies a dated schedule entry.
	AssignmentID uuid.UUID
)

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id StableID) String() string     { return uuid.UUID(id).String() }
func (id PaddockID) String() string    { return uuid.UUID(id).String() }
func (id AssignmentID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id StableID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id PaddockID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id AssignmentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// NewUserID returns a fresh random user ID.
func NewUserID() UserID { return UserID(uuid.New()) }

// NewStableID returns a fresh random stable ID.
func NewStableID() StableID { return StableID(uuid.New()) }

// NewPaddockID returns a fresh random paddock ID.
func NewPaddockID() PaddockID { return PaddockID(uuid.New()) }

// NewAssignmentID returns a fresh random assignment ID.
func NewAssignmentID() AssignmentID { return AssignmentID(uuid.New()) }

// ParseUserID validates s as a non-nil UUID and returns it as a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return UserID{}, err
	}
	return UserID(u), nil
}

// ParseStableID validates s as a non-nil UUID and returns it as a StableID.
func ParseStableID(s string) (StableID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return StableID{}, err
	}
	return StableID(u), nil
}

// ParsePaddockID validates s as a non-nil UUID and returns it as a PaddockID.
func ParsePaddockID(s string) (PaddockID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return PaddockID{}, err
	}
	return PaddockID(u), nil
}

// ParseAssignmentID validates s as a non-nil UUID and returns it as an
// AssignmentID.
func ParseAssignmentID(s string) (AssignmentID, error) {
	u, err := parseUUID(s)
	if err != nil {
		return AssignmentID{}, err
	}
	return AssignmentID(u), nil
}

func parseUUID(s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be empty")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id cannot be the nil UUID")
	}
	return u, nil
}
