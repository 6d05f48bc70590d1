package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkornev/tradebot/core/bootstrap"
	"github.com/mkornev/tradebot/core/buildinfo"
	coreconfig "github.com/mkornev/tradebot/core/config"
	"github.com/mkornev/tradebot/core/logger"
	coretelegram "github.com/mkornev/tradebot/core/telegram"
	"github.com/mkornev/tradebot/internal/bot"
	"log/slog"
)

const defaultConfigPath = "config.yaml"

func main() {
	if err := run(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run() error {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	log.Printf("loading config: %s", cfgPath)
	cfg, err := coreconfig.Load(cfgPath)
	if err != nil {
		return err
	}

	res, err := bootstrap.Run(bootstrap.Options{Config: cfg})
	if err != nil {
		return err
	}
	defer func() {
		_ = res.DB.Close()
		if err := logger.Shutdown(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()

	logger.L.With("component", "app").Info("starting",
		slog.String("event", "start"),
		slog.String("service", cfg.ServiceName),
		slog.String("version", buildinfo.Version),
		slog.String("commit", buildinfo.Commit),
	)

	app := bot.NewApp(cfg, res.DB)

	startedAt := time.Now()
	runOpts := coretelegram.RunOptions{
		Config:      cfg,
		Registry:    app.Registry(),
		Middlewares: app.Middlewares(),
		Routes:      app.Routes(),
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			if err := app.OnStart(ctx, rt); err != nil {
				return err
			}
			logger.L.With("component", "app").Info("app ready",
				slog.String("event", "ready"),
				slog.Duration("startup_duration", logger.RoundMS(time.Since(startedAt))),
			)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			logger.L.With("component", "app").Info("shutting down...",
				slog.String("event", "shutdown"),
			)
			return app.OnStop(ctx, rt)
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return coretelegram.RunTelegram(ctx, runOpts)
}
