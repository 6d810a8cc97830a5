package httptransport

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"stablehand/internal/domain"
	"stablehand/internal/gateway"
	id "stablehand/pkg/domain"
	"stablehand/pkg/platform/httputil"
	"stablehand/pkg/requestcontext"
)

// Mutations decode the wire shape, hand the gateway a typed request, and
// write the uniform result envelope. Authorization and invariants live
// behind the gateway; nothing here second-guesses it.

type setCurrentUserRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) handleSetCurrentUser(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[setCurrentUserRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	writeResult(w, h.gateway.SetCurrentUser(r.Context(), userID), nil)
}

type setCurrentStableRequest struct {
	StableID string `json:"stable_id"`
}

func (h *Handler) handleSetCurrentStable(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[setCurrentStableRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	stableID, err := id.ParseStableID(req.StableID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	writeResult(w, h.gateway.SetCurrentStable(r.Context(), actor, stableID), nil)
}

type createStableRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *Handler) handleCreateStable(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[createStableRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.CreateStable(r.Context(), actor, gateway.CreateStableRequest{
		Name:     req.Name,
		Location: req.Location,
	})
	writeResult(w, res.Result, stableData(res.Stable))
}

type eventVisibilityPatchRequest struct {
	Feeding     *bool `json:"feeding"`
	Cleaning    *bool `json:"cleaning"`
	RiderAway   *bool `json:"rider_away"`
	FarrierAway *bool `json:"farrier_away"`
	VetAway     *bool `json:"vet_away"`
	Evening     *bool `json:"evening"`
}

func (p *eventVisibilityPatchRequest) toPatch() domain.EventVisibilityPatch {
	return domain.EventVisibilityPatch{
		Feeding:     p.Feeding,
		Cleaning:    p.Cleaning,
		RiderAway:   p.RiderAway,
		FarrierAway: p.FarrierAway,
		VetAway:     p.VetAway,
		Evening:     p.Evening,
	}
}

type updateStableRequest struct {
	Name            *string                      `json:"name"`
	Location        *string                      `json:"location"`
	EventVisibility *eventVisibilityPatchRequest `json:"event_visibility"`
}

func (h *Handler) handleUpdateStable(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[updateStableRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	patch := domain.StablePatch{Name: req.Name, Location: req.Location}
	if req.EventVisibility != nil {
		p := req.EventVisibility.toPatch()
		patch.EventVisibility = &p
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.UpdateStable(r.Context(), actor, gateway.UpdateStableRequest{
		StableID: stableID,
		Patch:    patch,
	})
	writeResult(w, res.Result, stableData(res.Stable))
}

func (h *Handler) handleUpdateEventVisibility(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[eventVisibilityPatchRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.UpdateEventVisibility(r.Context(), actor, stableID, req.toPatch())
	writeResult(w, res.Result, stableData(res.Stable))
}

type grantMembershipRequest struct {
	UserID     string `json:"user_id"`
	Role       string `json:"role"`
	CustomRole string `json:"custom_role"`
	Access     string `json:"access"`
}

func (h *Handler) handleGrantMembership(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[grantMembershipRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.GrantMembership(r.Context(), actor, gateway.GrantMembershipRequest{
		UserID:     userID,
		StableID:   stableID,
		Role:       domain.Role(req.Role),
		Access:     domain.AccessLevel(req.Access),
		CustomRole: req.CustomRole,
	})
	writeResult(w, res, nil)
}

type updateMembershipRequest struct {
	Role       *string `json:"role"`
	CustomRole *string `json:"custom_role"`
	Access     *string `json:"access"`
}

func (h *Handler) handleUpdateMembership(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[updateMembershipRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	greq := gateway.UpdateMembershipRequest{
		UserID:     userID,
		StableID:   stableID,
		CustomRole: req.CustomRole,
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		greq.Role = &role
	}
	if req.Access != nil {
		access := domain.AccessLevel(*req.Access)
		greq.Access = &access
	}
	actor := requestcontext.ActingUserID(r.Context())
	writeResult(w, h.gateway.UpdateMembership(r.Context(), actor, greq), nil)
}

func (h *Handler) handleRevokeMembership(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	writeResult(w, h.gateway.RevokeMembership(r.Context(), actor, userID, stableID), nil)
}

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	Location    *string `json:"location"`
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[updateProfileRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.UpdateUserProfile(r.Context(), actor, gateway.UpdateUserProfileRequest{
		DisplayName: req.DisplayName,
		Phone:       req.Phone,
		Location:    req.Location,
	})
	var data any
	if res.User != nil {
		data = toUserView(res.User)
	}
	writeResult(w, res.Result, data)
}

type paddockImageRequest struct {
	Data []byte `json:"data"`
	MIME string `json:"mime"`
	URI  string `json:"uri"`
}

func (img *paddockImageRequest) toImage() *domain.PaddockImage {
	if img == nil {
		return nil
	}
	return &domain.PaddockImage{Data: img.Data, MIME: img.MIME, URI: img.URI}
}

type createPaddockRequest struct {
	Name   string              `json:"name"`
	Season string              `json:"season"`
	Horses []string            `json:"horses"`
	Image  *paddockImageRequest `json:"image"`
}

func (h *Handler) handleCreatePaddock(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[createPaddockRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.CreatePaddock(r.Context(), actor, gateway.CreatePaddockRequest{
		StableID: stableID,
		Name:     req.Name,
		Season:   domain.Season(req.Season),
		Horses:   req.Horses,
		Image:    req.Image.toImage(),
	})
	writeResult(w, res.Result, paddockData(res.Paddock))
}

type updatePaddockRequest struct {
	Name   *string              `json:"name"`
	Season *string              `json:"season"`
	Horses []string             `json:"horses"`
	Image  *paddockImageRequest `json:"image"`
}

func (h *Handler) handleUpdatePaddock(w http.ResponseWriter, r *http.Request) {
	paddockID, err := id.ParsePaddockID(chi.URLParam(r, "paddockID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[updatePaddockRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	patch := domain.PaddockPatch{
		Name:   req.Name,
		Horses: req.Horses,
		Image:  req.Image.toImage(),
	}
	if req.Season != nil {
		season := domain.Season(*req.Season)
		patch.Season = &season
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.UpdatePaddock(r.Context(), actor, gateway.UpdatePaddockRequest{
		PaddockID: paddockID,
		Patch:     patch,
	})
	writeResult(w, res.Result, paddockData(res.Paddock))
}

func (h *Handler) handleDeletePaddock(w http.ResponseWriter, r *http.Request) {
	paddockID, err := id.ParsePaddockID(chi.URLParam(r, "paddockID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	writeResult(w, h.gateway.DeletePaddock(r.Context(), actor, paddockID), nil)
}

type createAssignmentRequest struct {
	Date     string `json:"date"`
	Slot     string `json:"slot"`
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
}

func (h *Handler) handleCreateAssignment(w http.ResponseWriter, r *http.Request) {
	stableID, err := id.ParseStableID(chi.URLParam(r, "stableID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[createAssignmentRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.CreateAssignment(r.Context(), actor, gateway.CreateAssignmentRequest{
		StableID: stableID,
		Date:     domain.Date(req.Date),
		Slot:     domain.Slot(req.Slot),
		Task:     domain.TaskKind(req.Task),
		Assignee: req.Assignee,
	})
	writeResult(w, res.Result, assignmentData(res.Assignment))
}

type updateAssignmentRequest struct {
	Date     *string `json:"date"`
	Slot     *string `json:"slot"`
	Task     *string `json:"task"`
	Assignee *string `json:"assignee"`
}

func (h *Handler) handleUpdateAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := id.ParseAssignmentID(chi.URLParam(r, "assignmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[updateAssignmentRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	patch := domain.AssignmentPatch{Assignee: req.Assignee}
	if req.Date != nil {
		d := domain.Date(*req.Date)
		patch.Date = &d
	}
	if req.Slot != nil {
		s := domain.Slot(*req.Slot)
		patch.Slot = &s
	}
	if req.Task != nil {
		t := domain.TaskKind(*req.Task)
		patch.Task = &t
	}
	actor := requestcontext.ActingUserID(r.Context())
	res := h.gateway.UpdateAssignment(r.Context(), actor, gateway.UpdateAssignmentRequest{
		AssignmentID: assignmentID,
		Patch:        patch,
	})
	writeResult(w, res.Result, assignmentData(res.Assignment))
}

func (h *Handler) handleDeleteAssignment(w http.ResponseWriter, r *http.Request) {
	assignmentID, err := id.ParseAssignmentID(chi.URLParam(r, "assignmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	actor := requestcontext.ActingUserID(r.Context())
	writeResult(w, h.gateway.DeleteAssignment(r.Context(), actor, assignmentID), nil)
}

func stableData(s *domain.Stable) any {
	if s == nil {
		return nil
	}
	return toStableView(s)
}

func paddockData(p *domain.Paddock) any {
	if p == nil {
		return nil
	}
	return toPaddockView(p)
}

func assignmentData(a *domain.Assignment) any {
	if a == nil {
		return nil
	}
	return toAssignmentView(a)
}
