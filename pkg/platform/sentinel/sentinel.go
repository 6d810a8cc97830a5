package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the gateway can translate them into domain errors and result
// reasons.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the store
// - ErrConflict: unique constraint (e.g. one membership per user+stable) hit
// - ErrInvalidState: entity in the wrong state for the requested transition
// - ErrOrphaned: a write would reference an entity absent from the store
// - ErrUnavailable: external collaborator temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrOrphaned     = errors.New("orphaned reference")
	ErrUnavailable  = errors.New("unavailable")
)
