// Package migrations applies the durable store schema from embedded SQL.
package migrations

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

//go:embed all:sql
var migrationsFS embed.FS

// Migrator manages schema migrations for the durable store.
type Migrator struct {
	migrate *migrate.Migrate
	logger  usecasecontract.IAppLogger
}

// New creates a migrator over the embedded migration files.
func New(databaseURL string, logger usecasecontract.IAppLogger) (*Migrator, error) {
	source, err := iofs.New(migrationsFS, "sql")
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return &Migrator{migrate: m, logger: logger}, nil
}

// Up applies all pending migrations.
func (m *Migrator) Up() error {
	version, dirty, err := m.migrate.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	if dirty {
		m.logger.Warnf("database is dirty at version %d, forcing", version)
		if err := m.migrate.Force(int(version)); err != nil {
			return fmt.Errorf("failed to clear dirty state: %w", err)
		}
	}

	if err := m.migrate.Up(); err != nil {
		if err == migrate.ErrNoChange {
			m.logger.Infof("database schema is up to date")
			return nil
		}
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	newVersion, _, _ := m.migrate.Version()
	m.logger.Infof("database migrated to version %d", newVersion)
	return nil
}
