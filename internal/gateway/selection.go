package gateway

import (
	"context"
	"time"

	id "stablehand/pkg/domain"
)

// SetCurrentUser switches the current-user pointer. Unknown ids are rejected
// with a failure result and the pointer stays where it was; it never dangles.
func (g *Gateway) SetCurrentUser(ctx context.Context, userID id.UserID) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.SetCurrentUser")
	start := time.Now()

	res := ok()
	if err := g.selection.SetCurrentUser(ctx, userID); err != nil {
		res = failFrom(err, reasonNoSuchUser)
	}
	g.finish(ctx, span, "set_current_user", userID, id.StableID{}, userID.String(), start, res)
	return res
}

// SetCurrentStable switches the current-stable pointer with the same
// validate-first contract.
func (g *Gateway) SetCurrentStable(ctx context.Context, actor id.UserID, stableID id.StableID) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.SetCurrentStable")
	start := time.Now()

	res := ok()
	if err := g.selection.SetCurrentStable(ctx, stableID); err != nil {
		res = failFrom(err, reasonNoSuchStable)
	}
	g.finish(ctx, span, "set_current_stable", actor, stableID, stableID.String(), start, res)
	return res
}
