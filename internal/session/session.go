// Package session is the boundary to the remote authentication provider.
// The core consumes sessions; it never performs sign-in, sign-out, or token
// refresh itself.
package session

import (
	"context"
	"time"

	id "stablehand/pkg/domain"
)

// Session is the authenticated identity handed to the core at start-up and
// on every switch-user operation.
type Session struct {
	UserID    id.UserID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Provider is implemented by the external authentication/session service.
//
// Loading reports whether the provider is still resolving the session; the
// UI shows a splash until it settles. SignOut is fire-and-forget from the
// core's perspective.
type Provider interface {
	Session(ctx context.Context) (Session, bool, error)
	Loading() bool
	SignOut(ctx context.Context) error
}
