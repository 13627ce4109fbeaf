package database

import (
	"context"
	"database/sql"
	"testing"

	"blogpessoal/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMySQLDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{
			name: "adds parseTime and UTC",
			dsn:  "blog:secret@tcp(localhost:3306)/blogpessoal",
			want: "blog:secret@tcp(localhost:3306)/blogpessoal?parseTime=true",
		},
		{
			name: "keeps other params",
			dsn:  "blog:secret@tcp(db:3306)/blog?charset=utf8mb4",
			want: "blog:secret@tcp(db:3306)/blog?charset=utf8mb4&parseTime=true",
		},
		{name: "empty", dsn: "", wantErr: true},
		{name: "malformed", dsn: "blog:secret@tcp(db:3306", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MySQLDSN(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		want    string
		wantErr bool
	}{
		{name: "plain path", dsn: "blog.db", want: "blog.db?_foreign_keys=1"},
		{name: "uri with params", dsn: "file:blog.db?cache=shared&mode=rwc", want: "file:blog.db?_foreign_keys=1&cache=shared&mode=rwc"},
		{name: "overrides disabled flag", dsn: "file:blog.db?_foreign_keys=0", want: "file:blog.db?_foreign_keys=1"},
		{name: "drops short alias", dsn: "blog.db?_fk=false", want: "blog.db?_foreign_keys=1"},
		{name: "empty", dsn: "", wantErr: true},
		{name: "malformed query", dsn: "blog.db?x=%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SQLiteDSN(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewGorm(t *testing.T) {
	stubOpen := func(t *testing.T, db *sql.DB) (dsn *string) {
		origSqlOpen := sqlOpen
		dsn = new(string)
		sqlOpen = func(driverName, dataSourceName string) (*sql.DB, error) {
			*dsn = dataSourceName
			return db, nil
		}
		t.Cleanup(func() { sqlOpen = origSqlOpen })
		return dsn
	}

	t.Run("mysql", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		stubOpen(t, db)

		mock.ExpectPing()
		mock.ExpectQuery(`SELECT VERSION\(\)`).
			WillReturnRows(sqlmock.NewRows([]string{"VERSION()"}).AddRow("8.0.36"))

		gdb, err := NewGorm(context.Background(), config.DatabaseConfig{
			Driver: config.DriverMySQL,
			DSN:    "blog:secret@tcp(localhost:3306)/blogpessoal",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "mysql", gdb.Dialector.Name())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("sqlite", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer db.Close()
		gotDSN := stubOpen(t, db)

		mock.ExpectPing()
		mock.ExpectQuery(`select sqlite_version\(\)`).
			WillReturnRows(sqlmock.NewRows([]string{"sqlite_version()"}).AddRow("3.45.1"))

		gdb, err := NewGorm(context.Background(), config.DatabaseConfig{
			Driver: config.DriverSQLite,
			DSN:    "file:blog.db",
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "sqlite", gdb.Dialector.Name())
		assert.Equal(t, "file:blog.db?_foreign_keys=1", *gotDSN)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping error", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		stubOpen(t, db)

		mock.ExpectPing().WillReturnError(assert.AnError)

		gdb, err := NewGorm(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, DSN: "file:blog.db"}, nil)
		assert.ErrorContains(t, err, "db ping")
		assert.Nil(t, gdb)
	})

	t.Run("invalid config", func(t *testing.T) {
		for _, c := range []config.DatabaseConfig{
			{Driver: config.DriverMySQL},
			{Driver: config.DriverSQLite},
			{Driver: "oracle", DSN: "x"},
		} {
			gdb, err := NewGorm(context.Background(), c, nil)
			assert.Error(t, err, c.Driver)
			assert.Nil(t, gdb)
		}
	})
}
