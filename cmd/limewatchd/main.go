package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limewatch/limewatch/internal/advisor"
	"github.com/limewatch/limewatch/internal/alerts"
	"github.com/limewatch/limewatch/internal/api"
	"github.com/limewatch/limewatch/internal/config"
	"github.com/limewatch/limewatch/internal/intake"
	"github.com/limewatch/limewatch/internal/store"
	"github.com/limewatch/limewatch/internal/ws"
	"github.com/limewatch/limewatch/pkg/types"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	slog.Info("limewatchd starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	slog.Info("config loaded",
		"http_port", cfg.Server.HTTPPort,
		"auth_mode", cfg.Server.Auth.Mode,
		"sources", len(cfg.Intake.Sources),
		"poll_interval", cfg.Intake.PollInterval,
		"assessment_ttl", cfg.Server.AssessmentTTL,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Assessment store with background TTL eviction.
	st := store.New(cfg.Server.AssessmentTTL)
	go st.Run(ctx)

	// Alerts engine — evaluates rules on every incoming assessment.
	alertEngine := alerts.New(cfg.Alerts)

	// Advice generator. Runs disabled when no credential is configured.
	adv := advisor.New(advisor.NewClient(cfg.Advisor.Key()))
	if !adv.Enabled() {
		slog.Warn("advisor credential not configured — advice endpoint will report it missing",
			"key_env", cfg.Advisor.KeyEnv)
	}

	// Build one reader per configured intake.
	var readers []*intake.Reader
	for _, src := range cfg.Intake.Sources {
		r, err := intake.New(src)
		if err != nil {
			slog.Error("skipping source — could not build reader", "source", src.ID, "err", err)
			continue
		}
		readers = append(readers, r)
		slog.Info("registered source", "id", src.ID, "endpoint", src.Endpoint)
	}
	if len(readers) == 0 {
		slog.Warn("no sources configured — serving calculation API only")
	}

	// Watch config file for hot-reload (logs only in this phase).
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			slog.Info("config hot-reloaded", "sources", len(updated.Intake.Sources))
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	// Poll loop: read every source each tick, assess, store, evaluate alerts.
	go func() {
		ticker := time.NewTicker(cfg.Intake.PollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				for _, r := range readers {
					sample, err := r.Read(ctx)
					if err != nil {
						slog.Warn("read error", "source", r.SourceID(), "err", err)
						continue
					}
					a := types.NewAssessment(r.SourceID(), sample, t)
					st.Put(a)
					alertEngine.Evaluate(a)
					slog.Debug("assessed source",
						"source", a.SourceID,
						"tendency", a.Tendency,
						"lime_dose", a.Outcome.LimeDoseMgL,
					)
				}
			}
		}
	}()

	// WebSocket hub — broadcasts assessments to dashboard clients.
	hub := ws.New(st, cfg.Server.BroadcastInterval)
	go hub.Run(ctx)

	// Combined HTTP server: REST API + WebSocket hub, behind optional API-key auth.
	httpMux := http.NewServeMux()
	httpMux.Handle("/api/", api.New(st, alertEngine, adv))
	httpMux.Handle("/ws/stream", hub)

	handler := api.APIKey(
		cfg.Server.Auth.Mode,
		cfg.Server.Auth.EffectiveHeader(),
		cfg.Server.Auth.Key(),
		httpMux,
	)

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler: handler,
	}
	go func() {
		slog.Info("HTTP server listening", "port", cfg.Server.HTTPPort)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server stopped", "err", err)
		}
	}()

	<-ctx.Done()
	slog.Info("limewatchd shutting down")
	httpSrv.Shutdown(context.Background()) //nolint:errcheck
}
