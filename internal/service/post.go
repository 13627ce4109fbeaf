package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// PostService defines the use cases for posts.
type PostService interface {
	// List returns every post; an empty store yields an empty slice.
	List(ctx context.Context) ([]model.Post, error)

	// Get returns a single post by its ID, or ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Post, error)

	// SearchByTitle returns posts whose title contains title, ignoring case.
	SearchByTitle(ctx context.Context, title string) ([]model.Post, error)

	// Create validates and stores p as a new post. Any ID on p is ignored.
	Create(ctx context.Context, p *model.Post) (*model.Post, error)

	// Update validates p and overwrites the post with p.ID. When p.ID is zero
	// or unknown the post is inserted as a new row instead.
	Update(ctx context.Context, p *model.Post) (*model.Post, error)

	// Delete removes a post by ID; a missing ID is not an error.
	Delete(ctx context.Context, id int64) error
}

type postService struct {
	repo     repository.PostRepository
	validate *Validator
	now      func() time.Time
}

// NewPostService constructs a new PostService.
func NewPostService(repo repository.PostRepository, v *Validator) PostService {
	return &postService{repo: repo, validate: v, now: time.Now}
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	return s.repo.FindAll(ctx)
}

func (s *postService) Get(ctx context.Context, id int64) (*model.Post, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return p, nil
}

func (s *postService) SearchByTitle(ctx context.Context, title string) ([]model.Post, error) {
	return s.repo.FindAllByTitle(ctx, title)
}

func (s *postService) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	in, err := s.prepare(p)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, in)
}

func (s *postService) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	in, err := s.prepare(p)
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return s.insert(ctx, in)
	}
	in.ID = p.ID

	out, err := s.repo.Update(ctx, in)
	if errors.Is(err, sql.ErrNoRows) {
		in.ID = 0
		return s.insert(ctx, in)
	}
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return out, nil
}

func (s *postService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// prepare validates p and returns a copy with the ID cleared and the
// timestamp defaulted to now.
func (s *postService) prepare(p *model.Post) (*model.Post, error) {
	if err := s.validate.Struct(p); err != nil {
		return nil, err
	}
	in := *p
	in.ID = 0
	if in.Date.IsZero() {
		in.Date = s.now().UTC()
	}
	return &in, nil
}

func (s *postService) insert(ctx context.Context, p *model.Post) (*model.Post, error) {
	out, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return out, nil
}

// translateRepoErr maps repository sentinels onto service errors.
func translateRepoErr(err error) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrNotFound
	case errors.Is(err, repository.ErrForeignKey):
		return ErrInvalidReference
	case errors.Is(err, repository.ErrDuplicate):
		return ErrLoginTaken
	}
	return err
}
