package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/api"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/buildinfo"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/db"
	"github.com/mallexibra-dev/smart-starterkit-sub001/internal/logging"
)

// Version may be set at build time via -ldflags "-X main.Version=...".
var Version = buildinfo.Unset

func main() {
	version := buildinfo.Version(Version)
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Println(buildinfo.Line("starterkit-api", version))
		return
	}

	cfg, err := api.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "starterkit-api: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	store, err := openStore(cfg.BaseDir)
	if err != nil {
		logger.Error("open catalog", "dir", cfg.BaseDir, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	srv, err := api.NewServer(cfg, store, logger)
	if err != nil {
		logger.Error("create server", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr, err := srv.Start()
	if err != nil {
		logger.Error("start server", "err", err)
		os.Exit(1)
	}
	logger.Info("server started", "addr", addr.String(), "version", version, "dir", cfg.BaseDir)

	<-ctx.Done()
	logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

// openStore opens the catalog, creating it on first start.
func openStore(baseDir string) (*db.DB, error) {
	store, err := db.Open(baseDir)
	if errors.Is(err, db.ErrNotInitialized) {
		return db.Initialize(baseDir)
	}
	return store, err
}
