package gateway

import (
	"context"
	"time"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
	"stablehand/pkg/requestcontext"
)

// CreateAssignmentRequest carries the inputs for a new schedule entry.
type CreateAssignmentRequest struct {
	StableID id.StableID
	Date     domain.Date
	Slot     domain.Slot
	Task     domain.TaskKind
	Assignee string
}

// CreateAssignment adds a schedule entry to a stable the actor can edit the
// schedule of.
func (g *Gateway) CreateAssignment(ctx context.Context, actor id.UserID, req CreateAssignmentRequest) AssignmentResult {
	ctx, span := g.tracer.Start(ctx, "gateway.CreateAssignment")
	start := time.Now()
	now := requestcontext.Now(ctx)

	if _, err := g.stables.FindStable(ctx, req.StableID); err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "create_assignment", actor, req.StableID, "", start, res)
		return AssignmentResult{Result: res}
	}
	if !g.capabilitiesFor(ctx, actor, req.StableID).CanEditSchedule {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "create_assignment", actor, req.StableID, "", start, res)
		return AssignmentResult{Result: res}
	}

	a, err := domain.NewAssignment(id.NewAssignmentID(), req.StableID, req.Date, req.Slot, req.Task, req.Assignee, now)
	if err == nil {
		err = g.assignments.CreateAssignment(ctx, a)
	}
	if err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "create_assignment", actor, req.StableID, "", start, res)
		return AssignmentResult{Result: res}
	}

	res := ok()
	g.finish(ctx, span, "create_assignment", actor, req.StableID, a.ID.String(), start, res)
	return AssignmentResult{Result: res, Assignment: a}
}

// UpdateAssignmentRequest identifies the target assignment and the partial
// update; a Date in the patch reschedules it.
type UpdateAssignmentRequest struct {
	AssignmentID id.AssignmentID
	Patch        domain.AssignmentPatch
}

// UpdateAssignment applies a partial update, including rescheduling onto a
// different day.
func (g *Gateway) UpdateAssignment(ctx context.Context, actor id.UserID, req UpdateAssignmentRequest) AssignmentResult {
	ctx, span := g.tracer.Start(ctx, "gateway.UpdateAssignment")
	start := time.Now()
	now := requestcontext.Now(ctx)

	existing, err := g.assignments.FindAssignment(ctx, req.AssignmentID)
	if err != nil {
		res := failFrom(err, reasonNoSuchAssignment)
		g.finish(ctx, span, "update_assignment", actor, id.StableID{}, req.AssignmentID.String(), start, res)
		return AssignmentResult{Result: res}
	}
	if !g.capabilitiesFor(ctx, actor, existing.StableID).CanEditSchedule {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "update_assignment", actor, existing.StableID, req.AssignmentID.String(), start, res)
		return AssignmentResult{Result: res}
	}

	a, err := g.assignments.ExecuteAssignment(ctx, req.AssignmentID,
		func(a *domain.Assignment) error { return a.CanApply(req.Patch) },
		func(a *domain.Assignment) { a.Apply(req.Patch, now) },
	)
	if err != nil {
		res := failFrom(err, reasonNoSuchAssignment)
		g.finish(ctx, span, "update_assignment", actor, existing.StableID, req.AssignmentID.String(), start, res)
		return AssignmentResult{Result: res}
	}

	res := ok()
	g.finish(ctx, span, "update_assignment", actor, existing.StableID, req.AssignmentID.String(), start, res)
	return AssignmentResult{Result: res, Assignment: a}
}

// DeleteAssignment removes a schedule entry; cancelling a task is a delete.
func (g *Gateway) DeleteAssignment(ctx context.Context, actor id.UserID, assignmentID id.AssignmentID) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.DeleteAssignment")
	start := time.Now()

	existing, err := g.assignments.FindAssignment(ctx, assignmentID)
	if err != nil {
		res := failFrom(err, reasonNoSuchAssignment)
		g.finish(ctx, span, "delete_assignment", actor, id.StableID{}, assignmentID.String(), start, res)
		return res
	}
	if !g.capabilitiesFor(ctx, actor, existing.StableID).CanEditSchedule {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "delete_assignment", actor, existing.StableID, assignmentID.String(), start, res)
		return res
	}

	res := ok()
	if err := g.assignments.DeleteAssignment(ctx, assignmentID); err != nil {
		res = failFrom(err, reasonNoSuchAssignment)
	}
	g.finish(ctx, span, "delete_assignment", actor, existing.StableID, assignmentID.String(), start, res)
	return res
}
