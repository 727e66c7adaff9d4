package store

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigratePostgres applies all pending migrations embedded under
// migrations/, grounded on ncecere-raito's internal/migrate.Run: a
// short ping-retry loop absorbs a Postgres container that isn't
// accepting connections yet on a fresh docker-compose startup, then
// goose drives the schema forward. Opens and closes its own *sql.DB so
// it stays independent of the pool PostgresRepository holds.
func MigratePostgres(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("store: open migration db: %w", err)
	}
	defer db.Close()

	deadline := time.Now().Add(30 * time.Second)
	for {
		if err := db.Ping(); err == nil {
			break
		}
		if time.Now().After(deadline) {
			if err := db.Ping(); err != nil {
				return fmt.Errorf("store: postgres not ready: %w", err)
			}
			break
		}
		time.Sleep(500 * time.Millisecond)
	}

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("store: set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("store: goose up: %w", err)
	}
	return nil
}
