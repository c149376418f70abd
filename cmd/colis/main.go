package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/colisroute/colis/internal/client/cli"
	"github.com/colisroute/colis/internal/client/config"
	"github.com/colisroute/colis/internal/filex"
	"github.com/colisroute/colis/internal/logging"
)

const logFileName = "colis.log"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	dir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		log.Fatalf("%v", err)
	}
	cfg.DataDir = dir

	// REPL output owns the terminal; logs go to a file in the data dir.
	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		log.Fatalf("open log: %v", err)
	}
	defer f.Close()

	logger := logging.NewTextLogger(f, logging.ParseLevel(cfg.LogLevel))
	logger.Info(ctx, "starting", "env", cfg.Environment, "api", cfg.BaseURL, "data_dir", dir)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
