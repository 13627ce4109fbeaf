package service

import (
	"context"
	"database/sql"
	"errors"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// TopicService defines the use cases for topics. It mirrors PostService,
// searching by description instead of title.
type TopicService interface {
	List(ctx context.Context) ([]model.Topic, error)
	Get(ctx context.Context, id int64) (*model.Topic, error)
	SearchByDescription(ctx context.Context, description string) ([]model.Topic, error)
	Create(ctx context.Context, t *model.Topic) (*model.Topic, error)
	// Update inserts a new topic when t.ID is zero or unknown.
	Update(ctx context.Context, t *model.Topic) (*model.Topic, error)
	Delete(ctx context.Context, id int64) error
}

type topicService struct {
	repo     repository.TopicRepository
	validate *Validator
}

// NewTopicService constructs a new TopicService.
func NewTopicService(repo repository.TopicRepository, v *Validator) TopicService {
	return &topicService{repo: repo, validate: v}
}

func (s *topicService) List(ctx context.Context) ([]model.Topic, error) {
	return s.repo.FindAll(ctx)
}

func (s *topicService) Get(ctx context.Context, id int64) (*model.Topic, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	return t, nil
}

func (s *topicService) SearchByDescription(ctx context.Context, description string) ([]model.Topic, error) {
	return s.repo.FindAllByDescription(ctx, description)
}

func (s *topicService) Create(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	if err := s.validate.Struct(t); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, &model.Topic{Description: t.Description})
}

func (s *topicService) Update(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	if err := s.validate.Struct(t); err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return s.repo.Create(ctx, &model.Topic{Description: t.Description})
	}
	out, err := s.repo.Update(ctx, &model.Topic{ID: t.ID, Description: t.Description})
	if errors.Is(err, sql.ErrNoRows) {
		return s.repo.Create(ctx, &model.Topic{Description: t.Description})
	}
	return out, err
}

func (s *topicService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
