package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"paprikasync/internal/buildinfo"
	"paprikasync/internal/client/cli"
	"paprikasync/internal/client/config"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	app, err := cli.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
