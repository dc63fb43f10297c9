package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrateUpEmbedded applies the migrations compiled into the binary. The
// migrator takes ownership of conn and closes it.
func MigrateUpEmbedded(conn *sql.DB) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("db: load embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(conn, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("db: create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "main", driver)
	if err != nil {
		return fmt.Errorf("db: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("db: apply migrations: %w", err)
	}
	return nil
}

// Setup migrates dbPath to the current schema and returns a fresh connection
// ready for queries. An empty migrationsPath uses the embedded migrations;
// a "file://..." path runs external migration files instead, which lets an
// operator apply a newer schema without rebuilding the binary.
func Setup(dbPath, migrationsPath string) (*sql.DB, error) {
	conn, err := OpenWithDefaults(dbPath)
	if err != nil {
		return nil, err
	}
	if migrationsPath != "" {
		err = MigrateUp(conn, migrationsPath)
	} else {
		err = MigrateUpEmbedded(conn)
	}
	if err != nil {
		return nil, err
	}
	return OpenWithDefaults(dbPath)
}
