package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"agegate/internal/audit"
	"agegate/internal/credential"
	"agegate/internal/intake"
	"agegate/internal/platform/config"
	"agegate/internal/platform/health"
	"agegate/internal/platform/httpserver"
	"agegate/internal/platform/logger"
	"agegate/internal/platform/metrics"
	"agegate/internal/pos/erply"
	"agegate/internal/presenter/console"
	"agegate/internal/restriction"
	httptransport "agegate/internal/transport/http"
	"agegate/internal/verification"
	"agegate/internal/verification/tracer"
)

// main wires high-level dependencies and keeps the process lifecycle small.
// Business logic lives in the internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		log.Error("invalid policy configuration", "error", err)
		os.Exit(1)
	}

	log.Info("initializing agegate",
		"addr", cfg.Addr,
		"minimum_age", policy.MinimumAge,
		"restricted_groups", len(policy.RestrictedGroups),
		"pos_api", cfg.ErplyBaseURL != "",
	)

	m := metrics.New()
	store := audit.NewInMemoryStore()
	publisher := audit.NewPublisher(store,
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)
	defer publisher.Close()

	service := verification.New(
		restriction.New(policy.RestrictedGroups),
		credential.NewParser(credential.WithBirthYearWindow(policy.MaxYearsBack, policy.MinYearsBack)),
		console.New(),
		publisher,
		verification.Policy{MinimumAge: policy.MinimumAge},
		verification.WithLogger(log),
		verification.WithMetrics(m),
		verification.WithTracer(tracer.NewOTel()),
	)

	healthHandler := health.New(cfg.Environment)

	var posClient *erply.Client
	var products intake.ProductSource
	if cfg.ErplyBaseURL != "" {
		posClient = erply.New(cfg.ErplyBaseURL, cfg.ErplyClientCode, cfg.ErplySessionKey, 10*time.Second)
		products = posClient
		healthHandler.RegisterCheck("pos_api", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := posClient.CurrentSale(ctx)
			return err
		})
	}

	handler := httptransport.NewHandler(service, products, store, cfg.OverridePINHash, log)
	router := httptransport.NewRouter(handler, healthHandler, m, log)
	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if posClient != nil {
		dispatcher := intake.NewDispatcher(service, posClient,
			intake.WithDispatcherLogger(log),
			intake.WithDispatcherMetrics(m),
		)
		monitor, err := intake.NewMonitor(posClient, dispatcher,
			intake.WithPollInterval(cfg.PollInterval),
			intake.WithMonitorLogger(log),
		)
		if err != nil {
			log.Error("failed to build transaction monitor", "error", err)
			os.Exit(1)
		}

		g.Go(func() error { return ignoreCancel(dispatcher.Run(ctx)) })
		g.Go(func() error { return ignoreCancel(monitor.Start(ctx)) })

		// Scanner wedge input arrives on stdin when the terminal wires the
		// scanner through this process.
		g.Go(func() error {
			return ignoreCancel(intake.NewWedge().Listen(ctx, os.Stdin, dispatcher))
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("agegate exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("agegate stopped")
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
