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

var postRowColumns = []string{
	"id", "titulo", "texto", "data",
	"tema_id", "descricao",
	"usuario_id", "nome", "usuario", "foto", "created_at",
}

func TestPostPostgres_FindAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	now := time.Now().UTC()

	rows := sqlmock.NewRows(postRowColumns).
		AddRow(1, "Hello World", "some body text", now, 3, "golang", nil, nil, nil, nil, nil).
		AddRow(2, "Second post", "more body text", now, nil, nil, 7, "Ana", "ana@example.com", "", now)

	mock.ExpectQuery("SELECT (.+) FROM tb_postagens p LEFT JOIN tb_temas (.+) ORDER BY p.id").
		WillReturnRows(rows)

	posts, err := repo.FindAll(context.Background())

	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.NotNil(t, posts[0].Topic)
	assert.Equal(t, int64(3), posts[0].Topic.ID)
	assert.Equal(t, "golang", posts[0].Topic.Description)
	assert.Nil(t, posts[0].User)
	assert.Nil(t, posts[1].Topic)
	require.NotNil(t, posts[1].User)
	assert.Equal(t, "ana@example.com", posts[1].User.Login)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_FindAllEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM tb_postagens").
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	posts, err := NewPostPostgres(db).FindAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestPostPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(postRowColumns).
			AddRow(5, "Hello World", "some body text", time.Now(), nil, nil, nil, nil, nil, nil, nil)
		mock.ExpectQuery("SELECT (.+) FROM tb_postagens p (.+) WHERE p.id = ?").
			WithArgs(int64(5)).
			WillReturnRows(rows)

		p, err := repo.FindByID(ctx, 5)

		require.NoError(t, err)
		assert.Equal(t, int64(5), p.ID)
		assert.Nil(t, p.Topic)
		assert.Nil(t, p.User)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tb_postagens p (.+) WHERE p.id = ?").
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		p, err := repo.FindByID(ctx, 404)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, p)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_FindAllByTitle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(postRowColumns).
		AddRow(1, "Hello World", "some body text", time.Now(), nil, nil, nil, nil, nil, nil, nil)
	mock.ExpectQuery("WHERE LOWER\\(p.titulo\\) LIKE \\$1 ESCAPE '!'").
		WithArgs("%world%").
		WillReturnRows(rows)

	posts, err := NewPostPostgres(db).FindAllByTitle(context.Background(), "WORLD")

	require.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		in := &model.Post{Title: "Hello World", Text: "some body text", Date: now, Topic: &model.Topic{ID: 3}}
		rows := sqlmock.NewRows(postRowColumns).
			AddRow(10, in.Title, in.Text, now, 3, "golang", nil, nil, nil, nil, nil)

		mock.ExpectQuery("WITH written AS \\(\\s*INSERT INTO tb_postagens").
			WithArgs(in.Title, in.Text, now, int64(3), nil).
			WillReturnRows(rows)

		out, err := repo.Create(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, int64(10), out.ID)
		require.NotNil(t, out.Topic)
		assert.Equal(t, "golang", out.Topic.Description)
	})

	t.Run("missing topic", func(t *testing.T) {
		in := &model.Post{Title: "Hello World", Text: "some body text", Date: now, Topic: &model.Topic{ID: 99}}
		mock.ExpectQuery("INSERT INTO tb_postagens").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tb_postagens_tema_id_fkey"})

		out, err := repo.Create(ctx, in)

		assert.ErrorIs(t, err, repository.ErrForeignKey)
		assert.Nil(t, out)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("existing row", func(t *testing.T) {
		in := &model.Post{ID: 4, Title: "Edited title", Text: "edited body text", Date: now}
		rows := sqlmock.NewRows(postRowColumns).
			AddRow(4, in.Title, in.Text, now, nil, nil, nil, nil, nil, nil, nil)
		mock.ExpectQuery("WITH written AS \\(\\s*UPDATE tb_postagens").
			WithArgs(int64(4), in.Title, in.Text, now, nil, nil).
			WillReturnRows(rows)

		out, err := repo.Update(ctx, in)

		require.NoError(t, err)
		assert.Equal(t, "Edited title", out.Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		in := &model.Post{ID: 77, Title: "Edited title", Text: "edited body text", Date: now}
		mock.ExpectQuery("UPDATE tb_postagens").
			WillReturnRows(sqlmock.NewRows(postRowColumns))

		out, err := repo.Update(ctx, in)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, out)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostPostgres(db)

	mock.ExpectExec("DELETE FROM tb_postagens WHERE id = ?").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM tb_postagens WHERE id = ?").
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 1))
	assert.NoError(t, repo.Delete(context.Background(), 2))
	assert.NoError(t, mock.ExpectationsWereMet())
}
