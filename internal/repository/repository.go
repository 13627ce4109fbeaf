package repository

import (
	"context"
	"errors"
	"strings"

	"blogpessoal/internal/model"
)

// Every implementation reports a lookup miss as sql.ErrNoRows, whatever the
// backend, and translates constraint violations into the errors below.
var (
	ErrForeignKey = errors.New("referenced row does not exist")
	ErrDuplicate  = errors.New("duplicate key")
)

// PostRepository defines data access for posts. No business logic here.
type PostRepository interface {
	// FindAll returns every post with its topic and user, ordered by id.
	FindAll(ctx context.Context) ([]model.Post, error)

	// FindByID returns a post by its ID.
	FindByID(ctx context.Context, id int64) (*model.Post, error)

	// FindAllByTitle returns posts whose title contains title, ignoring case.
	FindAllByTitle(ctx context.Context, title string) ([]model.Post, error)

	// Create inserts a new post; the ID is always assigned by the database.
	Create(ctx context.Context, p *model.Post) (*model.Post, error)

	// Update overwrites the row identified by p.ID. It returns sql.ErrNoRows
	// when no such row exists.
	Update(ctx context.Context, p *model.Post) (*model.Post, error)

	// Delete removes a post by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id int64) error
}

// TopicRepository defines data access for topics.
type TopicRepository interface {
	FindAll(ctx context.Context) ([]model.Topic, error)
	FindByID(ctx context.Context, id int64) (*model.Topic, error)
	// FindAllByDescription returns topics whose description contains description, ignoring case.
	FindAllByDescription(ctx context.Context, description string) ([]model.Topic, error)
	Create(ctx context.Context, t *model.Topic) (*model.Topic, error)
	// Update returns sql.ErrNoRows when t.ID does not exist.
	Update(ctx context.Context, t *model.Topic) (*model.Topic, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	Create(ctx context.Context, u *model.User) (*model.User, error)
	// UpdatePhoto stores the object key of the user's photo.
	UpdatePhoto(ctx context.Context, id int64, key string) error
}

// LikeEscape is the escape character used by ContainsPattern.
const LikeEscape = "!"

var likeReplacer = strings.NewReplacer(LikeEscape, LikeEscape+LikeEscape, "%", LikeEscape+"%", "_", LikeEscape+"_")

// ContainsPattern builds a lower-cased LIKE pattern matching s anywhere in a
// value. Wildcards in s are escaped with LikeEscape so they match literally;
// queries must declare ESCAPE '!'.
func ContainsPattern(s string) string {
	return "%" + likeReplacer.Replace(strings.ToLower(s)) + "%"
}
