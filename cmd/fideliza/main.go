package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/talx-hub/fideliza/internal/cli"
	"github.com/talx-hub/fideliza/internal/config"
	"github.com/talx-hub/fideliza/internal/dbmanager"
	"github.com/talx-hub/fideliza/internal/engine"
	"github.com/talx-hub/fideliza/internal/model"
	"github.com/talx-hub/fideliza/internal/repo"
	"github.com/talx-hub/fideliza/internal/utils/logger"
)

const startupTimeout = 10 * time.Second

func main() {
	log := logger.New(slog.LevelInfo)
	cfg := config.NewBuilder(log).
		FromDotEnv().
		FromEnv().
		FromFlags().
		GetConfig()

	log = logger.New(logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.LogAttrs(context.Background(),
			slog.LevelError,
			"fideliza exited with error",
			slog.Any(model.KeyLoggerError, err),
		)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	db := dbmanager.New(cfg.DatabaseURI, log)
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	db.Connect(startupCtx).Ping(startupCtx).ApplyMigrations(startupCtx)
	if err := db.Error(); err != nil {
		return err //nolint: wrapcheck // dbmanager wraps its errors
	}
	pool, err := db.GetPool(startupCtx)
	if err != nil {
		return err //nolint: wrapcheck // dbmanager wraps its errors
	}

	eng := engine.New(
		repo.NewCustomerRepository(pool, log),
		repo.NewTransactionRepository(pool, log),
		repo.NewRewardRepository(pool, log),
	)

	ctx := logger.WithContext(context.Background(), log)
	app := cli.New(eng, os.Stdin, os.Stdout)
	return app.Run(ctx) //nolint: wrapcheck // CLI wraps its errors
}
