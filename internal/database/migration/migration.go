// Package migration creates the PostgreSQL schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"blogpessoal/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_tb_temas",
		SQL: `CREATE TABLE IF NOT EXISTS tb_temas (
  id        BIGINT       GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  descricao VARCHAR(255) NOT NULL
);`,
	},
	{
		Name: "create_table_tb_usuarios",
		SQL: `CREATE TABLE IF NOT EXISTS tb_usuarios (
  id         BIGINT       GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  nome       VARCHAR(100) NOT NULL,
  usuario    VARCHAR(255) NOT NULL UNIQUE,
  foto       VARCHAR(255),
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_tb_postagens",
		SQL: `CREATE TABLE IF NOT EXISTS tb_postagens (
  id         BIGINT        GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
  titulo     VARCHAR(100)  NOT NULL,
  texto      VARCHAR(1000) NOT NULL,
  data       TIMESTAMPTZ   NOT NULL DEFAULT now(),
  tema_id    BIGINT        REFERENCES tb_temas (id) ON DELETE SET NULL,
  usuario_id BIGINT        REFERENCES tb_usuarios (id) ON DELETE SET NULL
);`,
	},
	{
		Name: "create_index_tb_postagens_titulo",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tb_postagens_titulo ON tb_postagens (lower(titulo));`,
	},
	{
		Name: "create_index_tb_postagens_tema_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tb_postagens_tema_id ON tb_postagens (tema_id);`,
	},
	{
		Name: "create_index_tb_postagens_usuario_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tb_postagens_usuario_id ON tb_postagens (usuario_id);`,
	},
	{
		Name: "create_index_tb_temas_descricao",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_tb_temas_descricao ON tb_temas (lower(descricao));`,
	},
}

// EnsureMigrated checks if the 'tb_postagens' table exists and runs migrations if it doesn't.
// The steps run in one transaction, so the sentinel table only exists once
// every step, indexes included, has been committed.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()

	log.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.tb_postagens') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		log.Log(map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Log(map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Log(map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	fail := func(step string, err error) {
		entry := map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": err.Error(),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		}
		if step != "" {
			entry["migration_step"] = step
		}
		log.Log(entry)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		fail("", err)
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			fail(step.Name, err)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Log(map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	if err := tx.Commit(); err != nil {
		fail("", err)
		return fmt.Errorf("commit migration: %w", err)
	}

	log.Log(map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
