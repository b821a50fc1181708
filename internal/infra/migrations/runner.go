package migrations

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	schema "github.com/m04kA/SMC-CourtBooking/migrations"
)

type Logger interface {
	Info(format string, v ...interface{})
}

// Runner применяет встроенные миграции к базе
type Runner struct {
	db     *sql.DB
	logger Logger
}

func NewRunner(db *sql.DB, logger Logger) *Runner {
	return &Runner{db: db, logger: logger}
}

// ErrDirtyVersion схема осталась в состоянии после неудачной миграции.
// Исправлять ее должен оператор (migrate force), автоматически Up не выполняется
var ErrDirtyVersion = errors.New("migrations: database schema is dirty")

// schemaMigrator часть migrate.Migrate, нужная для Up
type schemaMigrator interface {
	Version() (uint, bool, error)
	Up() error
}

// Up применяет все непримененные миграции
func (r *Runner) Up() error {
	m, err := r.migrator()
	if err != nil {
		return err
	}
	return applyUp(m, r.logger)
}

func applyUp(m schemaMigrator, logger Logger) error {
	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrations: get version: %w", err)
	}
	if dirty {
		return fmt.Errorf("%w: version=%d dirty=%t", ErrDirtyVersion, version, dirty)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", err)
	}

	version, _, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migrations: get version: %w", err)
	}
	logger.Info("Database schema version=%d", version)
	return nil
}

// Down откатывает все миграции
func (r *Runner) Down() error {
	m, err := r.migrator()
	if err != nil {
		return err
	}
	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: down: %w", err)
	}
	return nil
}

// Закрывать migrate.Migrate нельзя: postgres-драйвер закроет общий *sql.DB
func (r *Runner) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(schema.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("migrations: open embedded source: %w", err)
	}

	driver, err := postgres.WithInstance(r.db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("migrations: create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("migrations: create migrator: %w", err)
	}
	return m, nil
}
