// Package db embeds the goose migrations for the watchlist schema.
package db

import "embed"

// Migrations holds every file under migrations/, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the directory name inside Migrations.
const MigrationsDir = "migrations"
