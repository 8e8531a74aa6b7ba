package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/kbukum/meetscribe/config"
	"github.com/kbukum/meetscribe/logger"
	"github.com/kbukum/meetscribe/server"
	"github.com/kbukum/meetscribe/speech"
	"github.com/kbukum/meetscribe/staging"
	"github.com/kbukum/meetscribe/storage"
	_ "github.com/kbukum/meetscribe/storage/s3"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "meetscribe: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	log.Info("starting", map[string]interface{}{
		"environment": cfg.Environment,
	})

	store, err := storage.New(cfg.Storage, log)
	if err != nil {
		return err
	}
	stager := staging.NewStager(store, cfg.Staging, log)

	speechClient, err := speech.NewClient(cfg.Speech, log)
	if err != nil {
		return err
	}

	srv := server.New(cfg.Server, log)
	server.NewTranscriptionHandler(speechClient, stager, log).Register(srv.Engine())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")
	return srv.Stop(context.Background())
}
