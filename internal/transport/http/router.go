package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stablehand/internal/gateway"
	"stablehand/internal/onboarding"
	"stablehand/internal/securestore"
	"stablehand/internal/session"
	"stablehand/internal/storage"
)

// Handler is the thin HTTP layer. It delegates every mutation to the
// gateway and serves reads straight from the stores, so no business logic
// lives in transport.
type Handler struct {
	logger      *slog.Logger
	gateway     *gateway.Gateway
	users       storage.UserStore
	stables     storage.StableStore
	memberships storage.MembershipStore
	paddocks    storage.PaddockStore
	assignments storage.AssignmentStore
	selection   storage.SelectionStore
	onboarding  *onboarding.Machine
	pending     *securestore.Pending
	parser      *session.TokenParser
}

// Deps bundles everything the HTTP layer needs so NewHandler does not grow
// a positional-argument tail.
type Deps struct {
	Logger      *slog.Logger
	Gateway     *gateway.Gateway
	Users       storage.UserStore
	Stables     storage.StableStore
	Memberships storage.MembershipStore
	Paddocks    storage.PaddockStore
	Assignments storage.AssignmentStore
	Selection   storage.SelectionStore
	Onboarding  *onboarding.Machine
	Pending     *securestore.Pending
	Parser      *session.TokenParser
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		logger:      d.Logger,
		gateway:     d.Gateway,
		users:       d.Users,
		stables:     d.Stables,
		memberships: d.Memberships,
		paddocks:    d.Paddocks,
		assignments: d.Assignments,
		selection:   d.Selection,
		onboarding:  d.Onboarding,
		pending:     d.Pending,
		parser:      d.Parser,
	}
}

// NewRouter wires all endpoints. Everything under /api/v1 requires a valid
// bearer token; health and metrics stay open for probes and scrapers.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(Recovery(h.logger))
	r.Use(RequestID)
	r.Use(RequestLogger(h.logger))

	r.Get("/healthz", h.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RequireAuth(h.parser, h.logger))

		r.Get("/selection", h.handleGetSelection)
		r.Post("/selection/user", h.handleSetCurrentUser)
		r.Post("/selection/stable", h.handleSetCurrentStable)

		r.Get("/stables", h.handleListStables)
		r.Post("/stables", h.handleCreateStable)
		r.Patch("/stables/{stableID}", h.handleUpdateStable)
		r.Patch("/stables/{stableID}/event-visibility", h.handleUpdateEventVisibility)
		r.Get("/stables/{stableID}/capabilities", h.handleGetCapabilities)

		r.Get("/stables/{stableID}/members", h.handleListMembers)
		r.Post("/stables/{stableID}/members", h.handleGrantMembership)
		r.Patch("/stables/{stableID}/members/{userID}", h.handleUpdateMembership)
		r.Delete("/stables/{stableID}/members/{userID}", h.handleRevokeMembership)

		r.Get("/me", h.handleGetMe)
		r.Patch("/me", h.handleUpdateProfile)
		r.Get("/me/memberships", h.handleListMyMemberships)

		r.Get("/stables/{stableID}/paddocks", h.handleListPaddocks)
		r.Post("/stables/{stableID}/paddocks", h.handleCreatePaddock)
		r.Patch("/paddocks/{paddockID}", h.handleUpdatePaddock)
		r.Delete("/paddocks/{paddockID}", h.handleDeletePaddock)

		r.Get("/stables/{stableID}/schedule", h.handleGetSchedule)
		r.Get("/stables/{stableID}/schedule/date-options", h.handleDateOptions)
		r.Post("/stables/{stableID}/assignments", h.handleCreateAssignment)
		r.Patch("/assignments/{assignmentID}", h.handleUpdateAssignment)
		r.Delete("/assignments/{assignmentID}", h.handleDeleteAssignment)

		r.Get("/onboarding", h.handleGetOnboarding)
		r.Post("/onboarding/mode", h.handleSetOnboardingMode)
		r.Post("/onboarding/farm", h.handleSetHasFarm)
		r.Post("/onboarding/advance", h.handleAdvanceOnboarding)
		r.Post("/onboarding/skip-events", h.handleSkipEvents)
		r.Post("/onboarding/reset", h.handleResetOnboarding)
		r.Put("/onboarding/pending/invite-code", h.handleSetInviteCode)
		r.Delete("/onboarding/pending/invite-code", h.handleClearInviteCode)
		r.Put("/onboarding/pending/owner-stable", h.handleSetOwnerStable)
		r.Delete("/onboarding/pending/owner-stable", h.handleClearOwnerStable)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
