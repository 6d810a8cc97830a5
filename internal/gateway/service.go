// Package gateway is the only write path into the domain store. Every
// mutation validates existence and the acting user's capabilities before
// committing, and reports its outcome as a Result instead of an error for
// expected business-rule violations.
package gateway

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"stablehand/internal/access"
	"stablehand/internal/audit"
	gwmetrics "stablehand/internal/gateway/metrics"
	"stablehand/internal/storage"
	id "stablehand/pkg/domain"
	"stablehand/pkg/requestcontext"
)

// Gateway orchestrates mutations across the store collections. The acting
// user is an explicit parameter on every operation; there is no ambient
// current-user inside the gateway itself.
type Gateway struct {
	users       storage.UserStore
	stables     storage.StableStore
	memberships storage.MembershipStore
	paddocks    storage.PaddockStore
	assignments storage.AssignmentStore
	selection   storage.SelectionStore

	logger  *slog.Logger
	metrics *gwmetrics.Metrics
	audit   *audit.Publisher
	tracer  trace.Tracer
}

// Stores bundles the collections the gateway writes. In practice all fields
// point at the same *storage.InMemory; the split keeps tests free to stub a
// single concern.
type Stores struct {
	Users       storage.UserStore
	Stables     storage.StableStore
	Memberships storage.MembershipStore
	Paddocks    storage.PaddockStore
	Assignments storage.AssignmentStore
	Selection   storage.SelectionStore
}

type config struct {
	logger  *slog.Logger
	metrics *gwmetrics.Metrics
	audit   *audit.Publisher
}

// Option configures the gateway.
type Option func(*config)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithMetrics attaches the gateway metrics.
func WithMetrics(m *gwmetrics.Metrics) Option {
	return func(c *config) { c.metrics = m }
}

// WithAudit attaches the audit publisher.
func WithAudit(p *audit.Publisher) Option {
	return func(c *config) { c.audit = p }
}

// New wires the gateway. Stores must be fully populated; a nil store is a
// programmer error and panics here, at initialization, never mid-mutation.
func New(stores Stores, opts ...Option) *Gateway {
	if stores.Users == nil || stores.Stables == nil || stores.Memberships == nil ||
		stores.Paddocks == nil || stores.Assignments == nil || stores.Selection == nil {
		panic("gateway: all stores must be provided")
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return &Gateway{
		users:       stores.Users,
		stables:     stores.Stables,
		memberships: stores.Memberships,
		paddocks:    stores.Paddocks,
		assignments: stores.Assignments,
		selection:   stores.Selection,
		logger:      cfg.logger,
		metrics:     cfg.metrics,
		audit:       cfg.audit,
		tracer:      otel.Tracer("stablehand/gateway"),
	}
}

// capabilitiesFor resolves the acting user's capabilities against a stable.
// A missing actor resolves to no access.
func (g *Gateway) capabilitiesFor(ctx context.Context, actor id.UserID, stableID id.StableID) access.Capabilities {
	user, err := g.users.FindUser(ctx, actor)
	if err != nil {
		return access.NoAccess()
	}
	return access.Resolve(user, stableID)
}

// finish records the outcome of a mutation on every observability surface.
func (g *Gateway) finish(ctx context.Context, span trace.Span, action string, actor id.UserID, stableID id.StableID, entityID string, start time.Time, res Result) {
	defer span.End()
	if g.metrics != nil {
		if res.OK {
			g.metrics.ObserveCommitted(action, start)
		} else {
			g.metrics.ObserveRejected(action, start)
		}
	}
	if res.OK {
		g.logger.InfoContext(ctx, "mutation committed",
			"action", action,
			"actor", actor.String(),
			"entity", entityID,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	} else {
		g.logger.InfoContext(ctx, "mutation rejected",
			"action", action,
			"actor", actor.String(),
			"entity", entityID,
			"reason", res.Reason,
		)
	}
	if g.audit != nil {
		_ = g.audit.Emit(ctx, audit.Event{
			Timestamp: requestcontext.Now(ctx),
			ActorID:   actor,
			StableID:  stableID,
			Action:    action,
			EntityID:  entityID,
			Committed: res.OK,
			Reason:    res.Reason,
		})
	}
}
