package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/mentormatch/apiserver/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

// EnsureSchema applies the embedded schema to the configured database.
// It is a no-op when the schema is already current.
func EnsureSchema(cfg config.DatabaseConfig) error {
	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load embedded schema: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", source, PostgresURL(cfg))
	if err != nil {
		return fmt.Errorf("init schema migrator: %w", err)
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return nil
		}
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
