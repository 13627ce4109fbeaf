package gormrepo

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"blogpessoal/internal/config"
	"blogpessoal/internal/database"
	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// newTestDB opens a fresh SQLite file through database.NewGorm. The sqlite
// driver needs cgo, so the test is skipped where it cannot be opened.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewGorm(context.Background(), config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "blog.db"),
	}, nil)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestPostGorm_CRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	topics := NewTopicGorm(db)
	users := NewUserGorm(db)
	posts := NewPostGorm(db)

	topic, err := topics.Create(ctx, &model.Topic{Description: "Golang"})
	require.NoError(t, err)
	user, err := users.Create(ctx, &model.User{Name: "Ana", Login: "ana@example.com", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	created, err := posts.Create(ctx, &model.Post{
		ID:    999,
		Title: "Hello World",
		Text:  "first post body",
		Date:  time.Now().UTC(),
		Topic: &model.Topic{ID: topic.ID},
		User:  &model.User{ID: user.ID},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, int64(999), created.ID)
	require.NotNil(t, created.Topic)
	assert.Equal(t, "Golang", created.Topic.Description)
	require.NotNil(t, created.User)
	assert.Equal(t, "ana@example.com", created.User.Login)

	all, err := posts.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	got, err := posts.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got.Title)

	_, err = posts.FindByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	got.Title = "Hello again"
	got.Topic = nil
	updated, err := posts.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Nil(t, updated.Topic)

	// Identical values still count as an existing row.
	_, err = posts.Update(ctx, updated)
	assert.NoError(t, err)

	_, err = posts.Update(ctx, &model.Post{ID: created.ID + 100, Title: "Nobody here", Text: "nobody here either", Date: time.Now()})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, posts.Delete(ctx, created.ID))
	assert.NoError(t, posts.Delete(ctx, created.ID))

	all, err = posts.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestPostGorm_FindAllByTitle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	posts := NewPostGorm(db)

	for _, title := range []string{"Hello World", "Another entry", "100% literal"} {
		_, err := posts.Create(ctx, &model.Post{Title: title, Text: "some body text", Date: time.Now().UTC()})
		require.NoError(t, err)
	}

	for _, q := range []string{"hello", "WORLD", "lo wo"} {
		found, err := posts.FindAllByTitle(ctx, q)
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		assert.Equal(t, "Hello World", found[0].Title)
	}

	found, err := posts.FindAllByTitle(ctx, "%")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "100% literal", found[0].Title)

	found, err = posts.FindAllByTitle(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestTopicGorm(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	topics := NewTopicGorm(db)

	a, err := topics.Create(ctx, &model.Topic{ID: 50, Description: "Golang"})
	require.NoError(t, err)
	_, err = topics.Create(ctx, &model.Topic{Description: "Java"})
	require.NoError(t, err)

	found, err := topics.FindAllByDescription(ctx, "gOl")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, a.ID, found[0].ID)

	updated, err := topics.Update(ctx, &model.Topic{ID: a.ID, Description: "Go"})
	require.NoError(t, err)
	assert.Equal(t, "Go", updated.Description)

	same, err := topics.Update(ctx, &model.Topic{ID: a.ID, Description: "Go"})
	require.NoError(t, err)
	assert.Equal(t, a.ID, same.ID)

	_, err = topics.Update(ctx, &model.Topic{ID: 12345, Description: "Go"})
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, topics.Delete(ctx, a.ID))
	assert.NoError(t, topics.Delete(ctx, 12345))

	all, err := topics.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestUserGorm(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := NewUserGorm(db)

	u, err := users.Create(ctx, &model.User{Name: "Ana", Login: "ana@example.com", CreatedAt: time.Now().UTC()})
	require.NoError(t, err)

	require.NoError(t, users.UpdatePhoto(ctx, u.ID, "usuarios/a.png"))
	require.NoError(t, users.UpdatePhoto(ctx, u.ID, "usuarios/a.png"))
	assert.ErrorIs(t, users.UpdatePhoto(ctx, u.ID+1, "usuarios/b.png"), sql.ErrNoRows)

	got, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "usuarios/a.png", got.Photo)

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGorm_ForeignKeys(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	topics := NewTopicGorm(db)
	posts := NewPostGorm(db)

	_, err := posts.Create(ctx, &model.Post{
		Title: "Dangling",
		Text:  "points at nothing",
		Date:  time.Now().UTC(),
		Topic: &model.Topic{ID: 999},
	})
	assert.ErrorIs(t, err, repository.ErrForeignKey)

	topic, err := topics.Create(ctx, &model.Topic{Description: "Golang"})
	require.NoError(t, err)
	created, err := posts.Create(ctx, &model.Post{
		Title: "Attached",
		Text:  "belongs to a topic",
		Date:  time.Now().UTC(),
		Topic: &model.Topic{ID: topic.ID},
	})
	require.NoError(t, err)

	require.NoError(t, topics.Delete(ctx, topic.ID))

	var temaID sql.NullInt64
	require.NoError(t, db.Raw("SELECT tema_id FROM tb_postagens WHERE id = ?", created.ID).Row().Scan(&temaID))
	assert.False(t, temaID.Valid)

	got, err := posts.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Topic)
}

func TestGorm_SearchFoldsAccents(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	posts := NewPostGorm(db)
	topics := NewTopicGorm(db)

	_, err := posts.Create(ctx, &model.Post{Title: "ÉPOCA DE AÇÃO", Text: "texto da postagem", Date: time.Now().UTC()})
	require.NoError(t, err)
	_, err = posts.Create(ctx, &model.Post{Title: "Outra coisa", Text: "texto da postagem", Date: time.Now().UTC()})
	require.NoError(t, err)

	for _, q := range []string{"ação", "época", "AÇÃO"} {
		found, err := posts.FindAllByTitle(ctx, q)
		require.NoError(t, err)
		require.Len(t, found, 1, q)
		assert.Equal(t, "ÉPOCA DE AÇÃO", found[0].Title)
	}

	_, err = topics.Create(ctx, &model.Topic{Description: "PROGRAMAÇÃO"})
	require.NoError(t, err)
	found, err := topics.FindAllByDescription(ctx, "programação")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
