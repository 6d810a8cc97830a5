// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// The acting user and selected stable are explicit request-scoped facts, not
// ambient globals: middleware sets them, services read them, and tests inject
// them directly. Keeping this package free of net/http lets the gateway and
// resolver import only what they need.
//
// Usage in services (read values):
//
//	userID := requestcontext.ActingUserID(ctx)
//	now := requestcontext.Now(ctx)
//
// Usage in middleware (set values):
//
//	ctx = requestcontext.WithActingUserID(ctx, userID)
//
// Usage in tests (inject values):
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "stablehand/pkg/domain"
)

// Context key types (unexported for encapsulation).
type (
	actingUserIDKey struct{}
	stableIDKey     struct{}
	requestIDKey    struct{}
	requestTimeKey  struct{}
)

// ActingUserID retrieves the authenticated acting user from the context.
// Returns the zero value (nil UUID) if not set.
func ActingUserID(ctx context.Context) id.UserID {
	if userID, ok := ctx.Value(actingUserIDKey{}).(id.UserID); ok {
		return userID
	}
	return id.UserID{}
}

// WithActingUserID injects the acting user into the context.
func WithActingUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, actingUserIDKey{}, userID)
}

// StableID retrieves the stable targeted by the request, when one was routed.
func StableID(ctx context.Context) id.StableID {
	if stableID, ok := ctx.Value(stableIDKey{}).(id.StableID); ok {
		return stableID
	}
	return id.StableID{}
}

// WithStableID injects the targeted stable into the context.
func WithStableID(ctx context.Context, stableID id.StableID) context.Context {
	return context.WithValue(ctx, stableIDKey{}, stableID)
}

// RequestID retrieves the request correlation ID, empty when unset.
func RequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return requestID
	}
	return ""
}

// WithRequestID injects a correlation ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now returns the request time injected by middleware, falling back to the
// wall clock. Tests pin time with WithTime.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request time on the context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
