package gateway

import (
	"context"
	"time"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
	"stablehand/pkg/requestcontext"
)

// CreatePaddockRequest carries the inputs for a new paddock.
type CreatePaddockRequest struct {
	StableID id.StableID
	Name     string
	Season   domain.Season
	Horses   []string
	Image    *domain.PaddockImage
}

// CreatePaddock adds a paddock to a stable the actor can manage paddocks in.
func (g *Gateway) CreatePaddock(ctx context.Context, actor id.UserID, req CreatePaddockRequest) PaddockResult {
	ctx, span := g.tracer.Start(ctx, "gateway.CreatePaddock")
	start := time.Now()
	now := requestcontext.Now(ctx)

	if _, err := g.stables.FindStable(ctx, req.StableID); err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "create_paddock", actor, req.StableID, "", start, res)
		return PaddockResult{Result: res}
	}
	if !g.capabilitiesFor(ctx, actor, req.StableID).CanManagePaddocks {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "create_paddock", actor, req.StableID, "", start, res)
		return PaddockResult{Result: res}
	}

	p, err := domain.NewPaddock(id.NewPaddockID(), req.StableID, req.Name, req.Season, req.Horses, req.Image, now)
	if err == nil {
		err = g.paddocks.CreatePaddock(ctx, p)
	}
	if err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "create_paddock", actor, req.StableID, "", start, res)
		return PaddockResult{Result: res}
	}

	res := ok()
	g.finish(ctx, span, "create_paddock", actor, req.StableID, p.ID.String(), start, res)
	return PaddockResult{Result: res, Paddock: p}
}

// UpdatePaddockRequest identifies the target paddock and the partial update.
type UpdatePaddockRequest struct {
	PaddockID id.PaddockID
	Patch     domain.PaddockPatch
}

// UpdatePaddock applies a partial update with the usual existence-then-
// capability ordering.
func (g *Gateway) UpdatePaddock(ctx context.Context, actor id.UserID, req UpdatePaddockRequest) PaddockResult {
	ctx, span := g.tracer.Start(ctx, "gateway.UpdatePaddock")
	start := time.Now()
	now := requestcontext.Now(ctx)

	existing, err := g.paddocks.FindPaddock(ctx, req.PaddockID)
	if err != nil {
		res := failFrom(err, reasonNoSuchPaddock)
		g.finish(ctx, span, "update_paddock", actor, id.StableID{}, req.PaddockID.String(), start, res)
		return PaddockResult{Result: res}
	}
	if !g.capabilitiesFor(ctx, actor, existing.StableID).CanManagePaddocks {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "update_paddock", actor, existing.StableID, req.PaddockID.String(), start, res)
		return PaddockResult{Result: res}
	}

	p, err := g.paddocks.ExecutePaddock(ctx, req.PaddockID,
		func(p *domain.Paddock) error { return p.CanApply(req.Patch) },
		func(p *domain.Paddock) { p.Apply(req.Patch, now) },
	)
	if err != nil {
		res := failFrom(err, reasonNoSuchPaddock)
		g.finish(ctx, span, "update_paddock", actor, existing.StableID, req.PaddockID.String(), start, res)
		return PaddockResult{Result: res}
	}

	res := ok()
	g.finish(ctx, span, "update_paddock", actor, existing.StableID, req.PaddockID.String(), start, res)
	return PaddockResult{Result: res, Paddock: p}
}

// DeletePaddock removes a paddock.
func (g *Gateway) DeletePaddock(ctx context.Context, actor id.UserID, paddockID id.PaddockID) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.DeletePaddock")
	start := time.Now()

	existing, err := g.paddocks.FindPaddock(ctx, paddockID)
	if err != nil {
		res := failFrom(err, reasonNoSuchPaddock)
		g.finish(ctx, span, "delete_paddock", actor, id.StableID{}, paddockID.String(), start, res)
		return res
	}
	if !g.capabilitiesFor(ctx, actor, existing.StableID).CanManagePaddocks {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "delete_paddock", actor, existing.StableID, paddockID.String(), start, res)
		return res
	}

	res := ok()
	if err := g.paddocks.DeletePaddock(ctx, paddockID); err != nil {
		res = failFrom(err, reasonNoSuchPaddock)
	}
	g.finish(ctx, span, "delete_paddock", actor, existing.StableID, paddockID.String(), start, res)
	return res
}
