package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"blogpessoal/internal/config"
	"blogpessoal/internal/logging"
)

// MySQLDSN normalizes a go-sql-driver DSN so DATETIME columns scan into
// time.Time in UTC.
func MySQLDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("invalid database config: DB_DSN is required for mysql")
	}
	cfg, err := mysqldriver.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	return cfg.FormatDSN(), nil
}

// NewGorm opens the MySQL or SQLite backend selected by c.Driver. The pool is
// opened through otelsql and handed to GORM as an existing connection. GORM's
// own log output goes through log.
func NewGorm(ctx context.Context, c config.DatabaseConfig, log *logging.Logger) (*gorm.DB, error) {
	var (
		sqlDB     *sql.DB
		dialector gorm.Dialector
		err       error
	)
	switch c.Driver {
	case config.DriverMySQL:
		dsn, derr := MySQLDSN(c.DSN)
		if derr != nil {
			return nil, derr
		}
		if sqlDB, err = open(ctx, "mysql", dsn, semconv.DBSystemMySQL, c); err != nil {
			return nil, err
		}
		dialector = mysql.New(mysql.Config{Conn: sqlDB})
	case config.DriverSQLite:
		dsn, derr := SQLiteDSN(c.DSN)
		if derr != nil {
			return nil, derr
		}
		if sqlDB, err = open(ctx, SQLiteDriver, dsn, semconv.DBSystemSqlite, c); err != nil {
			return nil, err
		}
		dialector = &sqlite.Dialector{Conn: sqlDB}
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", c.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError:       true,
		DisableAutomaticPing: true,
		Logger:               newGormLogger(log),
	})
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	return db, nil
}
