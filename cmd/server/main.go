package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"stablehand/internal/audit"
	"stablehand/internal/gateway"
	gwmetrics "stablehand/internal/gateway/metrics"
	"stablehand/internal/onboarding"
	"stablehand/internal/platform/config"
	"stablehand/internal/platform/httpserver"
	"stablehand/internal/platform/logger"
	platformredis "stablehand/internal/platform/redis"
	"stablehand/internal/securestore"
	"stablehand/internal/session"
	"stablehand/internal/storage"
	httptransport "stablehand/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err.Error())
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewInMemory()
	if cfg.SeedDemoData {
		owner, stable := storage.SeedBootstrap(store)
		log.Info("seeded demo data",
			"owner_id", owner.ID.String(),
			"stable_id", stable.ID.String(),
		)
	}

	// Audit events leave the mutation path through a channel; the worker
	// drains them into the configured sink.
	inbox := make(chan audit.Event, 256)
	var sink audit.Store = audit.NewMemoryStore()
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaStore(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("audit sink: kafka", "topic", cfg.Kafka.Topic)
	}
	worker := audit.NewWorker(sink, inbox)
	publisher := audit.NewPublisher(audit.NewChannelStore(inbox))

	gw := gateway.New(gateway.Stores{
		Users:       store,
		Stables:     store,
		Memberships: store,
		Paddocks:    store,
		Assignments: store,
		Selection:   store,
	},
		gateway.WithLogger(log),
		gateway.WithMetrics(gwmetrics.New()),
		gateway.WithAudit(publisher),
	)

	// Secure store: redis when configured, in-process memory otherwise.
	var secure securestore.Store = securestore.NewMemory()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		secure = securestore.NewRedis(redisClient.Client, "")
		log.Info("secure store: redis")
	}

	parser := session.NewTokenParser(cfg.JWTSigningKey, cfg.JWTIssuer)

	handler := httptransport.NewHandler(httptransport.Deps{
		Logger:      log,
		Gateway:     gw,
		Users:       store,
		Stables:     store,
		Memberships: store,
		Paddocks:    store,
		Assignments: store,
		Selection:   store,
		Onboarding:  onboarding.NewMachine(),
		Pending:     securestore.NewPending(secure),
		Parser:      parser,
	})

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
