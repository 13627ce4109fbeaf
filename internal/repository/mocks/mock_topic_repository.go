package mocks

import (
	"context"

	"blogpessoal/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockTopicRepository struct {
	mock.Mock
}

func (m *MockTopicRepository) FindAll(ctx context.Context) ([]model.Topic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Topic), args.Error(1)
}

func (m *MockTopicRepository) FindByID(ctx context.Context, id int64) (*model.Topic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Topic), args.Error(1)
}

func (m *MockTopicRepository) FindAllByDescription(ctx context.Context, description string) ([]model.Topic, error) {
	args := m.Called(ctx, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Topic), args.Error(1)
}

func (m *MockTopicRepository) Create(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Topic), args.Error(1)
}

func (m *MockTopicRepository) Update(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Topic), args.Error(1)
}

func (m *MockTopicRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
