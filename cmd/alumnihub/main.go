package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/dbalogun/alumnihub/internal/cli"
	"github.com/dbalogun/alumnihub/internal/config"
	"github.com/dbalogun/alumnihub/internal/logging"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
