package postgres

import (
	"context"
	"database/sql"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// TopicPostgres is a PostgreSQL implementation of repository.TopicRepository.
type TopicPostgres struct {
	db *sql.DB
}

// NewTopicPostgres creates a new TopicPostgres repository.
func NewTopicPostgres(db *sql.DB) *TopicPostgres {
	return &TopicPostgres{db: db}
}

var _ repository.TopicRepository = (*TopicPostgres)(nil)

func (r *TopicPostgres) queryTopics(ctx context.Context, q string, args ...any) ([]model.Topic, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Topic, 0)
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.Description); err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TopicPostgres) FindAll(ctx context.Context) ([]model.Topic, error) {
	return r.queryTopics(ctx, `SELECT id, descricao FROM tb_temas ORDER BY id`)
}

func (r *TopicPostgres) FindByID(ctx context.Context, id int64) (*model.Topic, error) {
	var t model.Topic
	err := r.db.QueryRowContext(ctx, `SELECT id, descricao FROM tb_temas WHERE id = $1`, id).
		Scan(&t.ID, &t.Description)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TopicPostgres) FindAllByDescription(ctx context.Context, description string) ([]model.Topic, error) {
	const q = `
		SELECT id, descricao
		FROM tb_temas
		WHERE LOWER(descricao) LIKE $1 ESCAPE '!'
		ORDER BY id
	`
	return r.queryTopics(ctx, q, repository.ContainsPattern(description))
}

func (r *TopicPostgres) Create(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	const q = `INSERT INTO tb_temas (descricao) VALUES ($1) RETURNING id, descricao`
	var out model.Topic
	if err := r.db.QueryRowContext(ctx, q, t.Description).Scan(&out.ID, &out.Description); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *TopicPostgres) Update(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	const q = `UPDATE tb_temas SET descricao = $2 WHERE id = $1 RETURNING id, descricao`
	var out model.Topic
	if err := r.db.QueryRowContext(ctx, q, t.ID, t.Description).Scan(&out.ID, &out.Description); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a topic; posts referencing it keep existing with tema_id set to NULL.
func (r *TopicPostgres) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tb_temas WHERE id = $1`, id)
	return err
}
