package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// TopicGorm implements repository.TopicRepository with GORM.
type TopicGorm struct {
	db *gorm.DB
}

// NewTopicGorm creates a new TopicGorm repository.
func NewTopicGorm(db *gorm.DB) *TopicGorm {
	return &TopicGorm{db: db}
}

var _ repository.TopicRepository = (*TopicGorm)(nil)

func (r *TopicGorm) find(tx *gorm.DB) ([]model.Topic, error) {
	var recs []topicRecord
	if err := tx.Order("id").Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	items := make([]model.Topic, 0, len(recs))
	for i := range recs {
		items = append(items, *recs[i].toModel())
	}
	return items, nil
}

func (r *TopicGorm) FindAll(ctx context.Context) ([]model.Topic, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *TopicGorm) FindByID(ctx context.Context, id int64) (*model.Topic, error) {
	var rec topicRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *TopicGorm) FindAllByDescription(ctx context.Context, description string) ([]model.Topic, error) {
	return r.find(r.db.WithContext(ctx).Where(likeClause(r.db, "descricao"), repository.ContainsPattern(description)))
}

func (r *TopicGorm) Create(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	rec := topicRecord{Descricao: t.Description}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *TopicGorm) Update(ctx context.Context, t *model.Topic) (*model.Topic, error) {
	res := r.db.WithContext(ctx).Model(&topicRecord{}).Where("id = ?", t.ID).Update("descricao", t.Description)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return r.FindByID(ctx, t.ID)
	}
	return &model.Topic{ID: t.ID, Description: t.Description}, nil
}

// Delete removes a topic. Posts referencing it are detached by the FK's ON DELETE SET NULL.
func (r *TopicGorm) Delete(ctx context.Context, id int64) error {
	return translate(r.db.WithContext(ctx).Delete(&topicRecord{}, id).Error)
}
