package main

import (
	"context"

	"github.com/frontandrew/sales/internal/pkg/database"
	"github.com/frontandrew/sales/internal/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// migrate применяет встроенные миграции при старте (DB_AUTO_MIGRATE=true)
func migrate(ctx context.Context, db *pgxpool.Pool, log logger.Logger) error {
	migrator, err := database.NewMigrator(db)
	if err != nil {
		return err
	}
	defer func() { _ = migrator.Close() }()

	versions, err := migrator.Up(ctx)
	if err != nil {
		return err
	}

	log.Info("Migrations applied", logger.Fields{
		"applied": versions,
	})
	return nil
}
