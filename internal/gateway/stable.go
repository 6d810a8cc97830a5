package gateway

import (
	"context"
	"time"

	"stablehand/internal/access"
	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
	"stablehand/pkg/requestcontext"
)

// CreateStableRequest carries the inputs for a new stable.
type CreateStableRequest struct {
	Name     string
	Location string
}

// CreateStable provisions a stable and makes the actor its owner. Creating
// stables is the onboarding flow's job, so the actor must be able to manage
// onboarding somewhere, or must be a brand-new user with no memberships at
// all (the quick-start case).
func (g *Gateway) CreateStable(ctx context.Context, actor id.UserID, req CreateStableRequest) StableResult {
	ctx, span := g.tracer.Start(ctx, "gateway.CreateStable")
	start := time.Now()
	now := requestcontext.Now(ctx)

	user, err := g.users.FindUser(ctx, actor)
	if err != nil {
		res := failFrom(err, reasonNoSuchUser)
		g.finish(ctx, span, "create_stable", actor, id.StableID{}, "", start, res)
		return StableResult{Result: res}
	}
	if len(user.Memberships) > 0 && !access.CanManageOnboardingAny(user) {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "create_stable", actor, id.StableID{}, "", start, res)
		return StableResult{Result: res}
	}

	stable, err := domain.NewStable(id.NewStableID(), req.Name, req.Location, now)
	if err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "create_stable", actor, id.StableID{}, "", start, res)
		return StableResult{Result: res}
	}
	if err := g.stables.CreateStable(ctx, stable); err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "create_stable", actor, stable.ID, stable.ID.String(), start, res)
		return StableResult{Result: res}
	}

	// The creator becomes owner. Validated inputs cannot fail here; an
	// orphan at this point would mean the store lost the rows we just put.
	m, err := domain.NewMembership(actor, stable.ID, domain.RoleAdmin, domain.AccessOwner, now)
	if err == nil {
		err = g.memberships.PutMembership(ctx, m)
	}
	if err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "create_stable", actor, stable.ID, stable.ID.String(), start, res)
		return StableResult{Result: res}
	}

	res := ok()
	g.finish(ctx, span, "create_stable", actor, stable.ID, stable.ID.String(), start, res)
	return StableResult{Result: res, Stable: stable}
}

// UpdateStableRequest identifies the target stable and the partial update.
type UpdateStableRequest struct {
	StableID id.StableID
	Patch    domain.StablePatch
}

// UpdateStable applies a partial update after checking existence, then the
// actor's settings capability. Validate-then-commit: a rejected patch leaves
// the stable untouched.
func (g *Gateway) UpdateStable(ctx context.Context, actor id.UserID, req UpdateStableRequest) StableResult {
	ctx, span := g.tracer.Start(ctx, "gateway.UpdateStable")
	start := time.Now()
	now := requestcontext.Now(ctx)

	if _, err := g.stables.FindStable(ctx, req.StableID); err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "update_stable", actor, req.StableID, req.StableID.String(), start, res)
		return StableResult{Result: res}
	}
	if !g.capabilitiesFor(ctx, actor, req.StableID).CanEditStableSettings {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "update_stable", actor, req.StableID, req.StableID.String(), start, res)
		return StableResult{Result: res}
	}

	stable, err := g.stables.ExecuteStable(ctx, req.StableID,
		func(s *domain.Stable) error { return s.CanApply(req.Patch) },
		func(s *domain.Stable) { s.Apply(req.Patch, now) },
	)
	if err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "update_stable", actor, req.StableID, req.StableID.String(), start, res)
		return StableResult{Result: res}
	}

	res := ok()
	g.finish(ctx, span, "update_stable", actor, req.StableID, req.StableID.String(), start, res)
	return StableResult{Result: res, Stable: stable}
}

// UpdateEventVisibility is the settings-screen shortcut that patches only
// the visibility toggles.
func (g *Gateway) UpdateEventVisibility(ctx context.Context, actor id.UserID, stableID id.StableID, patch domain.EventVisibilityPatch) StableResult {
	return g.UpdateStable(ctx, actor, UpdateStableRequest{
		StableID: stableID,
		Patch:    domain.StablePatch{EventVisibility: &patch},
	})
}
