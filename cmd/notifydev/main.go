// Command notifydev runs the in-memory dev notification service: the
// REST endpoints and websocket push channel the notifykit client packages
// talk to during local development.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/artstack/notifykit/pkg/config"
	"github.com/artstack/notifykit/pkg/devserver"
	"github.com/artstack/notifykit/pkg/httpserver"
	"github.com/artstack/notifykit/pkg/logger"
)

type appConfig struct {
	HTTP httpserver.Config
	Dev  bool `env:"DEV_LOG" envDefault:"true"`
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	var log *slog.Logger
	if cfg.Dev {
		log = logger.New(logger.WithDevelopment("notifydev"))
	} else {
		log = logger.New(logger.WithProduction("notifydev"))
	}
	logger.SetAsDefault(log)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log))
	handler := devserver.New(devserver.WithLogger(log))

	if err := srv.Run(context.Background(), handler); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
