package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/FuadAliah/celtis-pos/pkg/config"
	"github.com/pressly/goose/v3"
)

// DefaultDir is the directory inside Migrations holding the goose files.
const DefaultDir = "migrations"

// Migrations ships the SQL files inside the binary so a terminal needs no
// checkout of the repo to bootstrap its local database.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// goose keeps dialect and base FS as package globals.
var gooseMu sync.Mutex

// Run executes a standard goose command against the embedded migrations.
func Run(ctx context.Context, db *sql.DB, driver string, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}

	dialect, err := dialectFor(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(Migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, DefaultDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// Version reports the currently applied migration version.
func Version(db *sql.DB, driver string) (int64, error) {
	dialect, err := dialectFor(driver)
	if err != nil {
		return 0, err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.GetDBVersion(db)
}

func dialectFor(driver string) (string, error) {
	switch driver {
	case config.StoreBackendSQLite, "sqlite3", "":
		return "sqlite3", nil
	case config.StoreBackendPostgres:
		return "postgres", nil
	}
	return "", fmt.Errorf("no goose dialect for driver %q", driver)
}
