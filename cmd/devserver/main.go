package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/colisroute/colis/internal/devserver"
	"github.com/colisroute/colis/internal/devserver/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	cfg := config.LoadConfig()
	app := devserver.NewApp(cfg)

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}
}
