package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/frontandrew/sales/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Migrator применяет SQL миграции поверх пула pgx
type Migrator struct {
	db       *sql.DB
	provider *goose.Provider
}

// NewMigrator создает мигратор со встроенными миграциями сервиса
func NewMigrator(pool *pgxpool.Pool) (*Migrator, error) {
	return NewMigratorFS(pool, migrations.FS)
}

// NewMigratorFS создает мигратор с произвольным набором файлов миграций
func NewMigratorFS(pool *pgxpool.Pool, fsys fs.FS) (*Migrator, error) {
	db := stdlib.OpenDBFromPool(pool)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("unable to create migration provider: %w", err)
	}

	return &Migrator{db: db, provider: provider}, nil
}

// Up применяет все ожидающие миграции и возвращает применённые версии
func (m *Migrator) Up(ctx context.Context) ([]int64, error) {
	results, err := m.provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	versions := make([]int64, 0, len(results))
	for _, res := range results {
		versions = append(versions, res.Source.Version)
	}
	return versions, nil
}

// Down откатывает последнюю применённую миграцию
func (m *Migrator) Down(ctx context.Context) (int64, error) {
	res, err := m.provider.Down(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to roll back migration: %w", err)
	}
	return res.Source.Version, nil
}

// MigrationState - состояние одной миграции
type MigrationState struct {
	Version int64
	Path    string
	Applied bool
}

// Status возвращает состояние всех известных миграций
func (m *Migrator) Status(ctx context.Context) ([]MigrationState, error) {
	statuses, err := m.provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	states := make([]MigrationState, 0, len(statuses))
	for _, st := range statuses {
		states = append(states, MigrationState{
			Version: st.Source.Version,
			Path:    st.Source.Path,
			Applied: st.State == goose.StateApplied,
		})
	}
	return states, nil
}

// Version возвращает текущую версию схемы
func (m *Migrator) Version(ctx context.Context) (int64, error) {
	return m.provider.GetDBVersion(ctx)
}

// Close освобождает *sql.DB, открытый поверх пула (сам пул не закрывается)
func (m *Migrator) Close() error {
	return m.db.Close()
}
