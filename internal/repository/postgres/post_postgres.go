package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// PostPostgres is a PostgreSQL implementation of repository.PostRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type PostPostgres struct {
	db *sql.DB
}

// NewPostPostgres creates a new PostPostgres repository.
func NewPostPostgres(db *sql.DB) *PostPostgres {
	return &PostPostgres{db: db}
}

var _ repository.PostRepository = (*PostPostgres)(nil)

// postColumns selects a post joined with its topic and user from a relation aliased p.
const postColumns = `
		SELECT p.id, p.titulo, p.texto, p.data,
		       t.id, t.descricao,
		       u.id, u.nome, u.usuario, u.foto, u.created_at
		FROM %s p
		LEFT JOIN tb_temas t ON t.id = p.tema_id
		LEFT JOIN tb_usuarios u ON u.id = p.usuario_id
`

var (
	selectPosts = fmt.Sprintf(postColumns, "tb_postagens")

	// Data-modifying CTEs let inserts and updates return the joined row in one round trip.
	selectWritten = fmt.Sprintf(postColumns, "written")
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*model.Post, error) {
	var (
		p        model.Post
		topicID  sql.NullInt64
		topicDes sql.NullString
		userID   sql.NullInt64
		userName sql.NullString
		login    sql.NullString
		photo    sql.NullString
		created  sql.NullTime
	)
	if err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Text,
		&p.Date,
		&topicID,
		&topicDes,
		&userID,
		&userName,
		&login,
		&photo,
		&created,
	); err != nil {
		return nil, err
	}
	if topicID.Valid {
		p.Topic = &model.Topic{ID: topicID.Int64, Description: topicDes.String}
	}
	if userID.Valid {
		p.User = &model.User{
			ID:        userID.Int64,
			Name:      userName.String,
			Login:     login.String,
			Photo:     photo.String,
			CreatedAt: created.Time,
		}
	}
	return &p, nil
}

func (r *PostPostgres) queryPosts(ctx context.Context, q string, args ...any) ([]model.Post, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll returns every post ordered by id.
func (r *PostPostgres) FindAll(ctx context.Context) ([]model.Post, error) {
	return r.queryPosts(ctx, selectPosts+` ORDER BY p.id`)
}

// FindByID fetches a single post by its ID.
func (r *PostPostgres) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	return scanPost(r.db.QueryRowContext(ctx, selectPosts+` WHERE p.id = $1`, id))
}

// FindAllByTitle matches title as a case-insensitive substring.
func (r *PostPostgres) FindAllByTitle(ctx context.Context, title string) ([]model.Post, error) {
	q := selectPosts + ` WHERE LOWER(p.titulo) LIKE $1 ESCAPE '` + repository.LikeEscape + `' ORDER BY p.id`
	return r.queryPosts(ctx, q, repository.ContainsPattern(title))
}

// Create inserts a new post row and returns the stored record.
func (r *PostPostgres) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	q := `
		WITH written AS (
			INSERT INTO tb_postagens (titulo, texto, data, tema_id, usuario_id)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, titulo, texto, data, tema_id, usuario_id
		)` + selectWritten
	out, err := scanPost(r.db.QueryRowContext(ctx, q,
		p.Title,
		p.Text,
		p.Date,
		p.TopicID(),
		p.UserID(),
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Update overwrites every column of the post identified by p.ID.
func (r *PostPostgres) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	q := `
		WITH written AS (
			UPDATE tb_postagens
			SET titulo = $2, texto = $3, data = $4, tema_id = $5, usuario_id = $6
			WHERE id = $1
			RETURNING id, titulo, texto, data, tema_id, usuario_id
		)` + selectWritten
	out, err := scanPost(r.db.QueryRowContext(ctx, q,
		p.ID,
		p.Title,
		p.Text,
		p.Date,
		p.TopicID(),
		p.UserID(),
	))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Delete removes a post by ID. It does not return an error if the row does not exist.
func (r *PostPostgres) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tb_postagens WHERE id = $1`, id)
	return err
}
