package httptransport

import (
	"net/http"

	"stablehand/internal/domain"
	"stablehand/internal/onboarding"
	"stablehand/internal/securestore"
	"stablehand/pkg/platform/httputil"
	"stablehand/pkg/requestcontext"
)

// guardOnboarding resolves the acting user and checks they may drive the
// onboarding flow. A user with no memberships at all is allowed through, so
// freshly provisioned accounts can onboard themselves.
func (h *Handler) guardOnboarding(r *http.Request) (*domain.User, error) {
	ctx := r.Context()
	user, err := h.users.FindUser(ctx, requestcontext.ActingUserID(ctx))
	if err != nil {
		user = nil
	}
	if user != nil && len(user.Memberships) > 0 {
		if err := onboarding.Guard(user); err != nil {
			return nil, err
		}
	}
	return user, nil
}

func (h *Handler) writeOnboardingState(w http.ResponseWriter, state onboarding.State) {
	httputil.WriteJSON(w, http.StatusOK, onboardingStateResponse{
		Step:    string(state.Step),
		Mode:    string(state.Mode),
		HasFarm: state.HasFarm,
	})
}

type setOnboardingModeRequest struct {
	Mode string `json:"mode"`
}

func (h *Handler) handleSetOnboardingMode(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guardOnboarding(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[setOnboardingModeRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.onboarding.SetMode(onboarding.Mode(req.Mode)); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeOnboardingState(w, h.onboarding.Snapshot())
}

type setHasFarmRequest struct {
	HasFarm bool `json:"has_farm"`
}

func (h *Handler) handleSetHasFarm(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guardOnboarding(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, err := httputil.Decode[setHasFarmRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.onboarding.SetHasFarm(req.HasFarm); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeOnboardingState(w, h.onboarding.Snapshot())
}

func (h *Handler) handleAdvanceOnboarding(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guardOnboarding(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.onboarding.Advance()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeOnboardingState(w, state)
}

func (h *Handler) handleSkipEvents(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guardOnboarding(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	state, err := h.onboarding.SkipEvents()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.writeOnboardingState(w, state)
}

// handleResetOnboarding restarts the flow and clears any pending
// onboarding breadcrumbs from the secure store.
func (h *Handler) handleResetOnboarding(w http.ResponseWriter, r *http.Request) {
	if _, err := h.guardOnboarding(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.onboarding.Reset()
	h.pending.ClearInviteCode(r.Context())
	h.pending.ClearOwnerStable(r.Context())
	h.writeOnboardingState(w, h.onboarding.Snapshot())
}

type setInviteCodeRequest struct {
	Code string `json:"code"`
}

func (h *Handler) handleSetInviteCode(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[setInviteCodeRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.pending.SetInviteCode(r.Context(), req.Code)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearInviteCode(w http.ResponseWriter, r *http.Request) {
	h.pending.ClearInviteCode(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

type setOwnerStableRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) handleSetOwnerStable(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[setOwnerStableRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.pending.SetOwnerStable(r.Context(), securestore.PendingStable{ID: req.ID, Name: req.Name})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleClearOwnerStable(w http.ResponseWriter, r *http.Request) {
	h.pending.ClearOwnerStable(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
