package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"blogpessoal/internal/repository"
)

// SQLSTATE codes from https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
)

// translate maps constraint violations onto repository sentinels. The
// constraint name is kept in the message.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", repository.ErrForeignKey, pgErr.ConstraintName)
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}
