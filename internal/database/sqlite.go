package database

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/mattn/go-sqlite3"
)

const (
	// SQLiteDriver is the go-sqlite3 driver registered with SQLiteLower.
	SQLiteDriver = "sqlite3_blogpessoal"
	// SQLiteLower lower-cases text with Unicode rules. The built-in LOWER
	// only folds ASCII letters.
	SQLiteLower = "unicode_lower"
)

func init() {
	sql.Register(SQLiteDriver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(SQLiteLower, strings.ToLower, true)
		},
	})
}

// SQLiteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless the DSN asks for it.
func SQLiteDSN(dsn string) (string, error) {
	if dsn == "" {
		return "", fmt.Errorf("invalid database config: DB_DSN is required for sqlite")
	}
	base, rawQuery, _ := strings.Cut(dsn, "?")
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("parse sqlite dsn: %w", err)
	}
	q.Del("_fk")
	q.Set("_foreign_keys", "1")
	return base + "?" + q.Encode(), nil
}
