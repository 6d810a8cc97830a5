package domain

import id "stablehand/pkg/domain"

// Selection is the process-wide pair of pointers deciding whose permissions
// and which stable's data the UI observes. Both pointers either reference an
// existing entity or are empty; the store enforces that on every switch.
type Selection struct {
	CurrentUserID   id.UserID
	CurrentStableID id.StableID
}

// HasUser reports whether a current user is selected.
func (s Selection) HasUser() bool {
	return !s.CurrentUserID.IsNil()
}

// HasStable reports whether a current stable is selected.
func (s Selection) HasStable() bool {
	return !s.CurrentStableID.IsNil()
}
