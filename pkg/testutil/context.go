package testutil

import (
	"context"
	"time"

	id "stablehand/pkg/domain"
	"stablehand/pkg/requestcontext"
)

// Ctx returns a context with the acting user and a pinned request time, the
// typical state for a gateway unit test.
func Ctx(userID id.UserID, at time.Time) context.Context {
	ctx := requestcontext.WithActingUserID(context.Background(), userID)
	return requestcontext.WithTime(ctx, at)
}

// CtxAt returns a context with only a pinned request time.
func CtxAt(at time.Time) context.Context {
	return requestcontext.WithTime(context.Background(), at)
}
