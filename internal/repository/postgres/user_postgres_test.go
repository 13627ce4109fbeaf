package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "nome", "usuario", "foto", "created_at"}

func TestUserPostgres_FindAllAndByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM tb_usuarios ORDER BY id").
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "Ana", "ana@example.com", "", now).
			AddRow(2, "Bia", "bia@example.com", "usuarios/x.png", now))
	users, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "usuarios/x.png", users[1].Photo)

	mock.ExpectQuery("SELECT (.+) FROM tb_usuarios WHERE id = ?").
		WithArgs(int64(3)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByID(context.Background(), 3)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)
	now := time.Now().UTC()
	in := &model.User{Name: "Ana", Login: "ana@example.com", CreatedAt: now}

	mock.ExpectQuery("INSERT INTO tb_usuarios").
		WithArgs("Ana", "ana@example.com", now).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "Ana", "ana@example.com", "", now))
	out, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	mock.ExpectQuery("INSERT INTO tb_usuarios").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "tb_usuarios_usuario_key"})
	_, err = repo.Create(context.Background(), in)
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_UpdatePhoto(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserPostgres(db)

	mock.ExpectExec("UPDATE tb_usuarios SET foto = \\$2 WHERE id = \\$1").
		WithArgs(int64(1), "usuarios/a.png").
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.UpdatePhoto(context.Background(), 1, "usuarios/a.png"))

	mock.ExpectExec("UPDATE tb_usuarios SET foto").
		WithArgs(int64(2), "usuarios/b.png").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePhoto(context.Background(), 2, "usuarios/b.png"), sql.ErrNoRows)

	assert.NoError(t, mock.ExpectationsWereMet())
}
