// Package testutil provides test helpers including container management.
package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jtholloran/runeforge/internal/config"
	"github.com/jtholloran/runeforge/internal/storage/postgres"
)

// PostgresContainer wraps a testcontainers PostgreSQL instance.
type PostgresContainer struct {
	container testcontainers.Container
	Pool      *postgres.Pool
	RawPool   *pgxpool.Pool
	Config    config.DatabaseConfig
}

// NewPostgresContainer starts a PostgreSQL test container and returns
// a connected Pool.
//
// Precondition: Docker must be available.
// Postcondition: Returns a running container with a connected pool,
// or fails the test.
func NewPostgresContainer(t *testing.T) *PostgresContainer {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v [%s]", err, time.Since(start))
	}

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("getting container host: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("getting mapped port: %v", err)
	}

	dbCfg := config.DatabaseConfig{
		Host:            host,
		Port:            mappedPort.Int(),
		User:            "test",
		Password:        "test",
		Name:            "test",
		SSLMode:         "disable",
		MaxConns:        5,
		MinConns:        1,
		MaxConnLifetime: 5 * time.Minute,
	}

	pool, err := postgres.NewPool(ctx, dbCfg)
	if err != nil {
		t.Fatalf("connecting to test postgres: %v [%s]", err, time.Since(start))
	}

	t.Logf("postgres container started [%s]", time.Since(start))

	pc := &PostgresContainer{
		container: container,
		Pool:      pool,
		RawPool:   pool.DB(),
		Config:    dbCfg,
	}

	t.Cleanup(func() {
		pool.Close()
		_ = container.Terminate(ctx)
	})

	return pc
}

// ApplyMigrations runs the schema creation SQL directly for tests.
// This avoids requiring the migrate tool in the test environment.
//
// Precondition: Pool must be connected.
// Postcondition: The catalog and build tables exist in the test database.
func (pc *PostgresContainer) ApplyMigrations(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	start := time.Now()

	schema := `
		CREATE TABLE IF NOT EXISTS parts (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			category        TEXT NOT NULL DEFAULT '',
			kind            TEXT NOT NULL,
			energy          DOUBLE PRECISION NOT NULL DEFAULT 0,
			training_points DOUBLE PRECISION NOT NULL DEFAULT 0,
			mechanic        BOOLEAN NOT NULL DEFAULT FALSE,
			percentage      BOOLEAN NOT NULL DEFAULT FALSE,
			duration_scaled BOOLEAN NOT NULL DEFAULT FALSE
		);
		CREATE TABLE IF NOT EXISTS part_options (
			part_id         TEXT NOT NULL REFERENCES parts(id) ON DELETE CASCADE,
			slot            INTEGER NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			energy          DOUBLE PRECISION NOT NULL DEFAULT 0,
			training_points DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (part_id, slot)
		);
		CREATE TABLE IF NOT EXISTS properties (
			id                     TEXT PRIMARY KEY,
			name                   TEXT NOT NULL,
			kind                   TEXT NOT NULL,
			item_points            DOUBLE PRECISION NOT NULL DEFAULT 0,
			training_points        DOUBLE PRECISION NOT NULL DEFAULT 0,
			currency_factor        DOUBLE PRECISION NOT NULL DEFAULT 1,
			option_description     TEXT NOT NULL DEFAULT '',
			option_item_points     DOUBLE PRECISION NOT NULL DEFAULT 0,
			option_training_points DOUBLE PRECISION NOT NULL DEFAULT 0,
			option_currency_factor DOUBLE PRECISION NOT NULL DEFAULT 1
		);
		CREATE TABLE IF NOT EXISTS progression_rows (
			archetype                TEXT NOT NULL,
			level                    INTEGER NOT NULL,
			proficiency_points       INTEGER NOT NULL DEFAULT 0,
			armament_proficiency_cap INTEGER NOT NULL DEFAULT 0,
			feat_points              INTEGER NOT NULL DEFAULT 0,
			bonus_feats              INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (archetype, level)
		);
		CREATE TABLE IF NOT EXISTS builds (
			id         UUID PRIMARY KEY,
			name       TEXT NOT NULL,
			record     JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`

	_, err := pc.RawPool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("applying migrations: %v", err)
	}
	t.Logf("migrations applied [%s]", time.Since(start))
}

// NewPool starts a migrated test database and returns its raw pool.
//
// Precondition: Docker must be available.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pc := NewPostgresContainer(t)
	pc.ApplyMigrations(t)
	return pc.RawPool
}

// DSN returns the connection string for the test database.
func (pc *PostgresContainer) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.Config.User, pc.Config.Password,
		pc.Config.Host, pc.Config.Port,
		pc.Config.Name, pc.Config.SSLMode,
	)
}
