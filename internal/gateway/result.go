package gateway

import (
	"errors"

	"stablehand/internal/domain"
	dErrors "stablehand/pkg/domain-errors"
	"stablehand/pkg/platform/sentinel"
)

// Result is the discriminated outcome of every mutation. Expected business
// failures come back as OK=false with a human-readable Reason; the gateway
// never panics for them. Code is the structured kind added alongside the
// message; the message text stays the compatibility baseline for callers
// that match on it.
type Result struct {
	OK     bool
	Code   dErrors.Code
	Reason string
}

// Failed reports a non-success for call sites that read better positively.
func (r Result) Failed() bool {
	return !r.OK
}

// StableResult carries the updated stable on success.
type StableResult struct {
	Result
	Stable *domain.Stable
}

// PaddockResult carries the updated paddock on success.
type PaddockResult struct {
	Result
	Paddock *domain.Paddock
}

// AssignmentResult carries the updated assignment on success.
type AssignmentResult struct {
	Result
	Assignment *domain.Assignment
}

// UserResult carries the updated user on success.
type UserResult struct {
	Result
	User *domain.User
}

func ok() Result {
	return Result{OK: true}
}

func fail(code dErrors.Code, reason string) Result {
	return Result{OK: false, Code: code, Reason: reason}
}

// failFrom converts an error from a store or domain constructor into a
// Result, translating sentinels into the fixed business-rule wording.
func failFrom(err error, notFoundReason string) Result {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return fail(dErrors.CodeNotFound, notFoundReason)
	case errors.Is(err, sentinel.ErrOrphaned):
		return fail(dErrors.CodeValidation, notFoundReason)
	case errors.Is(err, sentinel.ErrConflict):
		return fail(dErrors.CodeConflict, "already exists")
	default:
		return fail(dErrors.CodeOf(err), dErrors.MessageOf(err))
	}
}

// Fixed reasons for the recurring failure modes. Free text, but stable:
// callers are allowed to match on them.
const (
	reasonNoSuchUser         = "no such user"
	reasonNoSuchStable       = "no such stable"
	reasonNoSuchPaddock      = "no such paddock"
	reasonNoSuchAssignment   = "no such assignment"
	reasonNoSuchMembership   = "no such membership"
	reasonInsufficientAccess = "insufficient access"
)
