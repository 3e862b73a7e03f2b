// Package pgcontainer runs a disposable postgres container for
// integration tests.
package pgcontainer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/talx-hub/fideliza/internal/model"
)

const (
	testDBName       = "test"
	testUserName     = "test"
	testUserPassword = "test"

	defaultPostgresTag = "16-alpine"
	containerLifetime  = 120 * time.Second
)

type PGContainer struct {
	log       *slog.Logger
	pool      *dockertest.Pool
	container *dockertest.Resource
	dsn       string
}

func New(log *slog.Logger) *PGContainer {
	return &PGContainer{
		log:       log,
		pool:      nil,
		container: nil,
		dsn:       "",
	}
}

func (c *PGContainer) GetDSN() string {
	return c.dsn
}

func (c *PGContainer) RunContainer() error {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return fmt.Errorf("failed to initialize a docker pool: %w", err)
	}
	c.pool = pool

	const pgPort = "5432/tcp"
	container, err := pool.RunWithOptions(
		&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        postgresTag(),
			Env: []string{
				"POSTGRES_USER=postgres",
				"POSTGRES_PASSWORD=postgres",
			},
			ExposedPorts: []string{pgPort},
		},
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		},
	)
	if err != nil {
		return fmt.Errorf("failed to run postgres container: %w", err)
	}
	c.container = container
	if err := container.Expire(uint(containerLifetime.Seconds())); err != nil {
		return fmt.Errorf("failed to set container expiration: %w", err)
	}

	hostPort := container.GetHostPort(pgPort)
	suDSN := fmt.Sprintf(
		"postgres://postgres:postgres@%s/postgres?sslmode=disable", hostPort)

	pool.MaxWait = 30 * time.Second
	var conn *pgx.Conn
	if err := pool.Retry(func() error {
		conn, err = pgx.Connect(context.Background(), suDSN)
		if err != nil {
			return fmt.Errorf("failed to connect to the DB: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("retry failed: %w", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			c.log.LogAttrs(context.Background(),
				slog.LevelWarn,
				"failed to correctly close the DB connection",
				slog.Any(model.KeyLoggerError, err),
			)
		}
	}()

	if err := createTestDB(conn); err != nil {
		return fmt.Errorf("failed to create a test DB: %w", err)
	}

	c.dsn = fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=disable",
		testUserName, testUserPassword, hostPort, testDBName)
	return nil
}

func (c *PGContainer) Close() {
	if c.pool == nil || c.container == nil {
		return
	}
	if err := c.pool.Purge(c.container); err != nil {
		c.log.LogAttrs(context.Background(),
			slog.LevelWarn,
			"failed to purge the postgres container",
			slog.Any(model.KeyLoggerError, err),
		)
	}
}

func postgresTag() string {
	_ = godotenv.Load()
	if tag := os.Getenv("POSTGRES_TAG"); tag != "" {
		return tag
	}
	return defaultPostgresTag
}

func createTestDB(conn *pgx.Conn) error {
	const (
		createUser = `CREATE USER %s PASSWORD '%s';`
		createDB   = `CREATE DATABASE %s
		OWNER %s
		ENCODING 'UTF8';`
	)

	const testDefaultTimeout = 5 * time.Second
	ctx, cancel1 := context.WithTimeout(context.Background(), testDefaultTimeout)
	defer cancel1()
	_, err := conn.Exec(ctx, fmt.Sprintf(createUser, testUserName, testUserPassword))
	if err != nil {
		return fmt.Errorf("failed to create a test user: %w", err)
	}

	ctx, cancel2 := context.WithTimeout(context.Background(), testDefaultTimeout)
	defer cancel2()
	_, err = conn.Exec(ctx, fmt.Sprintf(createDB, testDBName, testUserName))
	if err != nil {
		return fmt.Errorf("failed to create a test DB: %w", err)
	}

	return nil
}
