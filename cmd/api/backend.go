package main

import (
	"context"
	"database/sql"
	"fmt"

	"blogpessoal/internal/config"
	"blogpessoal/internal/database"
	"blogpessoal/internal/database/migration"
	"blogpessoal/internal/logging"
	"blogpessoal/internal/repository"
	"blogpessoal/internal/repository/gormrepo"
	"blogpessoal/internal/repository/postgres"
)

// backend is the set of repositories for one configured database driver.
type backend struct {
	db      *sql.DB
	posts   repository.PostRepository
	topics  repository.TopicRepository
	users   repository.UserRepository
	migrate func(ctx context.Context) error
}

func (b *backend) Close() error {
	return b.db.Close()
}

// openBackend connects to the database named by cfg.Database.Driver.
// Postgres uses raw SQL repositories; MySQL and SQLite go through GORM.
func openBackend(ctx context.Context, cfg *config.AppConfig, log *logging.Logger) (*backend, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		return &backend{
			db:     db,
			posts:  postgres.NewPostPostgres(db),
			topics: postgres.NewTopicPostgres(db),
			users:  postgres.NewUserPostgres(db),
			migrate: func(ctx context.Context) error {
				return migration.EnsureMigrated(ctx, db, log, cfg.Database.Host)
			},
		}, nil

	case config.DriverMySQL, config.DriverSQLite:
		gdb, err := database.NewGorm(ctx, cfg.Database, log)
		if err != nil {
			return nil, err
		}
		db, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("gorm pool: %w", err)
		}
		return &backend{
			db:     db,
			posts:  gormrepo.NewPostGorm(gdb),
			topics: gormrepo.NewTopicGorm(gdb),
			users:  gormrepo.NewUserGorm(gdb),
			migrate: func(ctx context.Context) error {
				log.Info("db_migration_start", map[string]any{"component": "database", "driver": cfg.Database.Driver})
				if err := gormrepo.Migrate(gdb.WithContext(ctx)); err != nil {
					return fmt.Errorf("auto migrate: %w", err)
				}
				log.Info("db_migration_success", map[string]any{"component": "database", "driver": cfg.Database.Driver})
				return nil
			},
		}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
}
