package httptransport

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"stablehand/internal/access"
	"stablehand/internal/domain"
	"stablehand/internal/schedule"
	id "stablehand/pkg/domain"
	dErrors "stablehand/pkg/domain-errors"
	"stablehand/pkg/platform/httputil"
	"stablehand/pkg/requestcontext"
)

type selectionResponse struct {
	CurrentUserID   string `json:"current_user_id,omitempty"`
	CurrentStableID string `json:"current_stable_id,omitempty"`
}

func (h *Handler) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	sel, err := h.selection.Selection(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	resp := selectionResponse{}
	if sel.HasUser() {
		resp.CurrentUserID = sel.CurrentUserID.String()
	}
	if sel.HasStable() {
		resp.CurrentStableID = sel.CurrentStableID.String()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListStables(w http.ResponseWriter, r *http.Request) {
	stables, err := h.stables.ListStables(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	views := make([]stableView, 0, len(stables))
	for _, s := range stables {
		views = append(views, toStableView(s))
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetCapabilities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	user, err := h.users.FindUser(ctx, requestcontext.ActingUserID(ctx))
	if err != nil {
		// An unknown acting user simply has no capabilities anywhere.
		user = nil
	}
	httputil.WriteJSON(w, http.StatusOK, toCapabilitiesView(access.Resolve(user, stableID)))
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	members, err := h.memberships.ListMembers(r.Context(), stableID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	views := make([]membershipView, 0, len(members))
	for _, m := range members {
		views = append(views, toMembershipView(m))
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleGetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.users.FindUser(ctx, requestcontext.ActingUserID(ctx))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "no account for session user"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toUserView(user))
}

func (h *Handler) handleListMyMemberships(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	memberships, err := h.memberships.ListMemberships(ctx, requestcontext.ActingUserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	views := make([]membershipView, 0, len(memberships))
	for _, m := range memberships {
		views = append(views, toMembershipView(m))
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

func (h *Handler) handleListPaddocks(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	paddocks, err := h.paddocks.ListPaddocks(r.Context(), stableID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	views := make([]paddockView, 0, len(paddocks))
	for _, p := range paddocks {
		views = append(views, toPaddockView(p))
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

// handleGetSchedule returns assignments grouped into day sections, filtered
// by the stable's event visibility settings. An optional from/to pair
// narrows the range; otherwise the whole schedule comes back.
func (h *Handler) handleGetSchedule(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stable, err := h.stables.FindStable(ctx, stableID)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeNotFound, "no such stable"))
		return
	}

	var assignments []*domain.Assignment
	fromParam, toParam := r.URL.Query().Get("from"), r.URL.Query().Get("to")
	if fromParam != "" || toParam != "" {
		from, err := domain.ParseDate(fromParam)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		to, err := domain.ParseDate(toParam)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		assignments, err = h.assignments.ListAssignmentsInRange(ctx, stableID, from, to)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	} else {
		assignments, err = h.assignments.ListAssignments(ctx, stableID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	visible := schedule.FilterVisible(assignments, stable.Settings.EventVisibility)
	groups := schedule.GroupAssignmentsByDay(visible)
	views := make([]dayGroupView, 0, len(groups))
	for _, g := range groups {
		views = append(views, toDayGroupView(g))
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}

// handleDateOptions serves the date picker: existing schedule days first,
// any explicitly requested dates, then future days padded from today.
func (h *Handler) handleDateOptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	count := 14
	if raw := r.URL.Query().Get("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil || count < 1 {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "count must be a positive integer"))
			return
		}
	}
	var include []domain.Date
	for _, raw := range r.URL.Query()["include"] {
		d, err := domain.ParseDate(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		include = append(include, d)
	}

	assignments, err := h.assignments.ListAssignments(ctx, stableID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	groups := schedule.GroupAssignmentsByDay(assignments)
	today := domain.DateOf(requestcontext.Now(ctx))
	options := schedule.GenerateDateOptions(groups, include, count, today)

	dates := make([]string, 0, len(options))
	for _, d := range options {
		dates = append(dates, string(d))
	}
	httputil.WriteJSON(w, http.StatusOK, dates)
}

func (h *Handler) handleGetOnboarding(w http.ResponseWriter, r *http.Request) {
	state := h.onboarding.Snapshot()
	resp := onboardingStateResponse{
		Step:    string(state.Step),
		Mode:    string(state.Mode),
		HasFarm: state.HasFarm,
	}
	if code, ok := h.pending.InviteCode(r.Context()); ok {
		resp.PendingInviteCode = code
	}
	if rec, ok := h.pending.OwnerStable(r.Context()); ok {
		resp.PendingOwnerStable = &pendingStableView{ID: rec.ID, Name: rec.Name}
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

type pendingStableView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type onboardingStateResponse struct {
	Step               string             `json:"step"`
	Mode               string             `json:"mode,omitempty"`
	HasFarm            *bool              `json:"has_farm,omitempty"`
	PendingInviteCode  string             `json:"pending_invite_code,omitempty"`
	PendingOwnerStable *pendingStableView `json:"pending_owner_stable,omitempty"`
}
