package postgres

import (
	"context"
	"database/sql"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, nome, usuario, COALESCE(foto, ''), created_at`

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.ID, &u.Name, &u.Login, &u.Photo, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserPostgres) FindAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM tb_usuarios ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *UserPostgres) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM tb_usuarios WHERE id = $1`, id))
}

func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	q := `
		INSERT INTO tb_usuarios (nome, usuario, created_at)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns
	out, err := scanUser(r.db.QueryRowContext(ctx, q, u.Name, u.Login, u.CreatedAt))
	if err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// UpdatePhoto returns sql.ErrNoRows when the user does not exist.
func (r *UserPostgres) UpdatePhoto(ctx context.Context, id int64, key string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tb_usuarios SET foto = $2 WHERE id = $1`, id, key)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
