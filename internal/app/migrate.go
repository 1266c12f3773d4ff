package app

import (
	"database/sql"
	"fmt"

	goose "github.com/pressly/goose/v3"

	"github.com/guttosm/cycleradar/db"
	"github.com/guttosm/cycleradar/internal/logger"
)

// gooseUp is an indirection for unit testing.
var gooseUp = goose.Up

// Migrate applies the embedded goose migrations to conn.
func Migrate(conn *sql.DB) error {
	goose.SetBaseFS(db.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := gooseUp(conn, db.MigrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	log := logger.Component("app")
	log.Info().Msg("migrations applied")
	return nil
}
