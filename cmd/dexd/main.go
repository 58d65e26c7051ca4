package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/config"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/engine"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/events"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/events/postgres"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/ledger"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/server"
	"github.com/gaffar273/Decentralized-Exchange-DEX/internal/state"
)

func main() {
	root := &cobra.Command{
		Use:          "dexd",
		Short:        "Constant-product AMM engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the engine behind an HTTP API",
		RunE:  runServe,
	}

	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().String("events-out", "./data/events.jsonl", "event output JSONL path")
	serveCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the event store")
	serveCmd.Flags().String("snapshot", "./data/snapshot.json", "engine snapshot file path")
	serveCmd.Flags().Bool("snapshot-enabled", true, "enable snapshot persistence")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks := []events.Sink{events.NewZapSink(logger)}
	if cfg.EventsOut != "" {
		sinks = append(sinks, events.NewJsonlSink(cfg.EventsOut))
	}
	var store *postgres.Store
	if cfg.PgDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PgDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		sinks = append(sinks, postgres.NewSink(store))
	}

	balances := ledger.NewLedger()
	tokens := ledger.NewTokenRegistry(balances)
	eng := engine.NewEngine(balances, events.NewMultiSink(sinks...), logger)

	snapshots := state.NewSnapshotStore(cfg.Snapshot, cfg.SnapshotEnabled)
	if snap, ok, err := snapshots.Load(); err != nil {
		return err
	} else if ok {
		if err := eng.Restore(snap.Pools); err != nil {
			return err
		}
		logger.Info("snapshot restored", zap.Int("pools", len(snap.Pools)), zap.String("saved_at", snap.SavedAt))
	}

	api := server.New(eng, balances, tokens, logger)
	httpServer := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.Router(),
	}

	logger.Info("dexd start",
		zap.String("listen", cfg.ListenAddr),
		zap.String("events_out", cfg.EventsOut),
		zap.Bool("snapshot_enabled", cfg.SnapshotEnabled),
		zap.String("snapshot", cfg.Snapshot),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}

	records := eng.Export()
	if err := snapshots.Save(records); err != nil {
		return err
	}
	if store != nil {
		if err := store.UpsertPools(shutdownCtx, records); err != nil {
			logger.Warn("pool upsert", zap.Error(err))
		}
	}
	logger.Info("dexd stopped")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
