package gateway

import (
	"context"
	"strings"
	"time"

	"stablehand/internal/domain"
	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
	"stablehand/pkg/requestcontext"
)

// GrantMembershipRequest links a user to a stable with a role and tier.
type GrantMembershipRequest struct {
	UserID     id.UserID
	StableID   id.StableID
	Role       domain.Role
	Access     domain.AccessLevel
	CustomRole string
}

// GrantMembership creates or replaces the membership for (user, stable).
// Only members who can manage members may grant.
func (g *Gateway) GrantMembership(ctx context.Context, actor id.UserID, req GrantMembershipRequest) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.GrantMembership")
	start := time.Now()
	now := requestcontext.Now(ctx)

	if _, err := g.stables.FindStable(ctx, req.StableID); err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "grant_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}
	if _, err := g.users.FindUser(ctx, req.UserID); err != nil {
		res := failFrom(err, reasonNoSuchUser)
		g.finish(ctx, span, "grant_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}
	if !g.capabilitiesFor(ctx, actor, req.StableID).CanManageMembers {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "grant_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}

	m, err := domain.NewMembership(req.UserID, req.StableID, req.Role, req.Access, now)
	if err != nil {
		res := failFrom(err, reasonNoSuchMembership)
		g.finish(ctx, span, "grant_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}
	m.CustomRole = strings.TrimSpace(req.CustomRole)

	res := ok()
	if err := g.memberships.PutMembership(ctx, m); err != nil {
		res = failFrom(err, reasonNoSuchMembership)
	}
	g.finish(ctx, span, "grant_membership", actor, req.StableID, req.UserID.String(), start, res)
	return res
}

// UpdateMembershipRequest is the partial membership update. Nil fields keep
// the current value.
type UpdateMembershipRequest struct {
	UserID     id.UserID
	StableID   id.StableID
	Role       *domain.Role
	Access     *domain.AccessLevel
	CustomRole *string
}

// UpdateMembership edits an existing membership's role, tier, or custom
// label. Demoting the stable's last owner is refused for the same reason
// revoking them is.
func (g *Gateway) UpdateMembership(ctx context.Context, actor id.UserID, req UpdateMembershipRequest) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.UpdateMembership")
	start := time.Now()

	if _, err := g.stables.FindStable(ctx, req.StableID); err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "update_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}
	if !g.capabilitiesFor(ctx, actor, req.StableID).CanManageMembers {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "update_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}

	members, err := g.memberships.ListMembers(ctx, req.StableID)
	if err != nil {
		res := failFrom(err, reasonNoSuchMembership)
		g.finish(ctx, span, "update_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}
	var current *domain.Membership
	for i := range members {
		if members[i].UserID == req.UserID {
			current = &members[i]
			break
		}
	}
	if current == nil {
		res := fail(dErrors.CodeNotFound, reasonNoSuchMembership)
		g.finish(ctx, span, "update_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}

	role := current.Role
	if req.Role != nil {
		role = *req.Role
	}
	access := current.Access
	if req.Access != nil {
		access = *req.Access
	}
	customRole := current.CustomRole
	if req.CustomRole != nil {
		customRole = strings.TrimSpace(*req.CustomRole)
	}

	if current.Access == domain.AccessOwner && access != domain.AccessOwner {
		if last, err := g.isLastOwner(ctx, req.UserID, req.StableID); err == nil && last {
			res := fail(dErrors.CodeConflict, "cannot revoke the last owner")
			g.finish(ctx, span, "update_membership", actor, req.StableID, req.UserID.String(), start, res)
			return res
		}
	}

	m, err := domain.NewMembership(req.UserID, req.StableID, role, access, current.GrantedAt)
	if err != nil {
		res := failFrom(err, reasonNoSuchMembership)
		g.finish(ctx, span, "update_membership", actor, req.StableID, req.UserID.String(), start, res)
		return res
	}
	m.CustomRole = customRole

	res := ok()
	if err := g.memberships.PutMembership(ctx, m); err != nil {
		res = failFrom(err, reasonNoSuchMembership)
	}
	g.finish(ctx, span, "update_membership", actor, req.StableID, req.UserID.String(), start, res)
	return res
}

// RevokeMembership removes the (user, stable) link. Owners cannot revoke
// themselves while they are the stable's last owner; a stable must keep at
// least one member who can manage it.
func (g *Gateway) RevokeMembership(ctx context.Context, actor id.UserID, userID id.UserID, stableID id.StableID) Result {
	ctx, span := g.tracer.Start(ctx, "gateway.RevokeMembership")
	start := time.Now()

	if _, err := g.stables.FindStable(ctx, stableID); err != nil {
		res := failFrom(err, reasonNoSuchStable)
		g.finish(ctx, span, "revoke_membership", actor, stableID, userID.String(), start, res)
		return res
	}
	if !g.capabilitiesFor(ctx, actor, stableID).CanManageMembers {
		res := fail(dErrors.CodeForbidden, reasonInsufficientAccess)
		g.finish(ctx, span, "revoke_membership", actor, stableID, userID.String(), start, res)
		return res
	}
	if userID == actor {
		if last, err := g.isLastOwner(ctx, userID, stableID); err == nil && last {
			res := fail(dErrors.CodeConflict, "cannot revoke the last owner")
			g.finish(ctx, span, "revoke_membership", actor, stableID, userID.String(), start, res)
			return res
		}
	}

	res := ok()
	if err := g.memberships.RemoveMembership(ctx, userID, stableID); err != nil {
		res = failFrom(err, reasonNoSuchMembership)
	}
	g.finish(ctx, span, "revoke_membership", actor, stableID, userID.String(), start, res)
	return res
}

func (g *Gateway) isLastOwner(ctx context.Context, userID id.UserID, stableID id.StableID) (bool, error) {
	members, err := g.memberships.ListMembers(ctx, stableID)
	if err != nil {
		return false, err
	}
	for _, m := range members {
		if m.Access == domain.AccessOwner && m.UserID != userID {
			return false, nil
		}
	}
	return true, nil
}

// UpdateUserProfileRequest is the partial profile update. Nil fields keep
// the current value.
type UpdateUserProfileRequest struct {
	DisplayName *string
	Phone       *string
	Location    *string
}

// UpdateUserProfile edits the actor's own profile; users cannot edit each
// other's.
func (g *Gateway) UpdateUserProfile(ctx context.Context, actor id.UserID, req UpdateUserProfileRequest) UserResult {
	ctx, span := g.tracer.Start(ctx, "gateway.UpdateUserProfile")
	start := time.Now()
	now := requestcontext.Now(ctx)

	user, err := g.users.ExecuteUser(ctx, actor,
		func(u *domain.User) error {
			if req.DisplayName != nil && strings.TrimSpace(*req.DisplayName) == "" {
				return dErrors.New(dErrors.CodeInvariantViolation, "user display name cannot be empty")
			}
			return nil
		},
		func(u *domain.User) {
			if req.DisplayName != nil {
				u.DisplayName = strings.TrimSpace(*req.DisplayName)
			}
			if req.Phone != nil {
				u.Phone = strings.TrimSpace(*req.Phone)
			}
			if req.Location != nil {
				u.Location = strings.TrimSpace(*req.Location)
			}
			u.UpdatedAt = now
		},
	)
	if err != nil {
		res := failFrom(err, reasonNoSuchUser)
		g.finish(ctx, span, "update_user_profile", actor, id.StableID{}, actor.String(), start, res)
		return UserResult{Result: res}
	}

	res := ok()
	g.finish(ctx, span, "update_user_profile", actor, id.StableID{}, actor.String(), start, res)
	return UserResult{Result: res, User: user}
}
