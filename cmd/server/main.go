package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DoyleJ11/rolly-polly/internal/config"
	"github.com/DoyleJ11/rolly-polly/internal/dice"
	"github.com/DoyleJ11/rolly-polly/internal/httpapi"
	"github.com/DoyleJ11/rolly-polly/internal/hub"
	"github.com/DoyleJ11/rolly-polly/internal/ws"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	acceptor, err := dice.ForPolicy(cfg.RollPolicy)
	if err != nil {
		return err
	}

	// The hub outlives the signal context so shutdown can drain it explicitly.
	h := hub.NewHub(context.Background(), logger, hub.WithAcceptor(acceptor))

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, ws.Options{
		OriginPatterns: cfg.OriginPatterns(),
		OutboxSize:     cfg.OutboxSize,
		WriteTimeout:   cfg.WriteTimeout,
		PingInterval:   cfg.PingInterval,
	}, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.Strings("origins", cfg.OriginPatterns()),
			zap.String("roll_policy", cfg.RollPolicy),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		// Websocket connections are hijacked, so the server does not wait for
		// them; closing the hub's outboxes hangs them up.
		return multierr.Combine(
			h.Shutdown(sctx),
			srv.Shutdown(sctx),
		)
	})
	return g.Wait()
}
