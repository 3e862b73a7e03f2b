package config

import (
	"context"
	"flag"
	"log/slog"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/talx-hub/fideliza/internal/model"
)

type Config struct {
	DatabaseURI string `env:"DATABASE_URI" envDefault:""`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`
}

type Builder struct {
	cfg *Config
	log *slog.Logger
}

func NewBuilder(log *slog.Logger) *Builder {
	return &Builder{
		cfg: &Config{
			DatabaseURI: "",
			LogLevel:    "",
		},
		log: log,
	}
}

// FromDotEnv loads a .env file if one exists. A missing file is fine:
// the environment itself is the source of truth.
func (b *Builder) FromDotEnv() *Builder {
	if err := godotenv.Load(); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelDebug, "no .env file loaded", slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) FromEnv() *Builder {
	if err := env.Parse(b.cfg); err != nil {
		b.log.LogAttrs(context.Background(),
			slog.LevelError, "Failed to parse config", slog.Any(model.KeyLoggerError, err))
	}
	return b
}

func (b *Builder) FromFlags() *Builder {
	flag.StringVar(&b.cfg.DatabaseURI, "d", b.cfg.DatabaseURI, "Database URI")
	flag.StringVar(&b.cfg.LogLevel, "l", b.cfg.LogLevel, "Log level")

	flag.Parse()
	return b
}

func (b *Builder) GetConfig() *Config {
	return b.cfg
}
