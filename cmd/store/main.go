package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/jhowson/creditstore/internal/cli"
	"github.com/jhowson/creditstore/internal/logging"
	"github.com/jhowson/creditstore/internal/store/config"
	"github.com/jhowson/creditstore/internal/store/registry"
	"github.com/jhowson/creditstore/internal/store/services"
	"github.com/jhowson/creditstore/internal/store/storage"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	repo := storage.NewFileRepository(cfg.AccountsFile, cfg.ProductsFile)
	svc := services.NewStoreService(registry.New(), repo, log)
	svc.Load(ctx)

	app := cli.NewApp(svc)
	app.Run(ctx)
}
