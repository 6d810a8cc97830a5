package securestore

import (
	"context"
	"encoding/json"
	"strings"
)

// Keys under which onboarding flows park state across the sign-up boundary.
const (
	keyPendingInviteCode  = "pending_invite_code"
	keyPendingOwnerStable = "pending_owner_stable"
)

// PendingStable is the string-serialized record of a stable the user started
// creating before authenticating.
type PendingStable struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Pending wraps a Store with absorb-all-failures semantics: reads of missing
// or malformed values come back as absent, and write errors are dropped. The
// core never propagates an exception from this best-effort helper.
type Pending struct {
	store Store
}

// NewPending wraps the given store.
func NewPending(store Store) *Pending {
	return &Pending{store: store}
}

// InviteCode returns the parked invitation code, ok=false when absent.
func (p *Pending) InviteCode(ctx context.Context) (string, bool) {
	v, ok, err := p.store.Get(ctx, keyPendingInviteCode)
	if err != nil || !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return "", false
	}
	return v, true
}

// SetInviteCode parks an invitation code. Blank codes clear instead.
func (p *Pending) SetInviteCode(ctx context.Context, code string) {
	code = strings.TrimSpace(code)
	if code == "" {
		p.ClearInviteCode(ctx)
		return
	}
	_ = p.store.Set(ctx, keyPendingInviteCode, code)
}

// ClearInviteCode removes the parked code.
func (p *Pending) ClearInviteCode(ctx context.Context) {
	_ = p.store.Delete(ctx, keyPendingInviteCode)
}

// OwnerStable returns the parked owner-stable record, ok=false when absent
// or malformed.
func (p *Pending) OwnerStable(ctx context.Context) (PendingStable, bool) {
	v, ok, err := p.store.Get(ctx, keyPendingOwnerStable)
	if err != nil || !ok || strings.TrimSpace(v) == "" {
		return PendingStable{}, false
	}
	var rec PendingStable
	if err := json.Unmarshal([]byte(v), &rec); err != nil {
		return PendingStable{}, false
	}
	if rec.ID == "" && rec.Name == "" {
		return PendingStable{}, false
	}
	return rec, true
}

// SetOwnerStable parks an owner-stable record.
func (p *Pending) SetOwnerStable(ctx context.Context, rec PendingStable) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_ = p.store.Set(ctx, keyPendingOwnerStable, string(raw))
}

// ClearOwnerStable removes the parked record.
func (p *Pending) ClearOwnerStable(ctx context.Context) {
	_ = p.store.Delete(ctx, keyPendingOwnerStable)
}
