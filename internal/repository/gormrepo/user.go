package gormrepo

import (
	"context"

	"gorm.io/gorm"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// UserGorm implements repository.UserRepository with GORM.
type UserGorm struct {
	db *gorm.DB
}

// NewUserGorm creates a new UserGorm repository.
func NewUserGorm(db *gorm.DB) *UserGorm {
	return &UserGorm{db: db}
}

var _ repository.UserRepository = (*UserGorm)(nil)

func (r *UserGorm) FindAll(ctx context.Context) ([]model.User, error) {
	var recs []userRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	items := make([]model.User, 0, len(recs))
	for i := range recs {
		items = append(items, *recs[i].toModel())
	}
	return items, nil
}

func (r *UserGorm) FindByID(ctx context.Context, id int64) (*model.User, error) {
	var rec userRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *UserGorm) Create(ctx context.Context, u *model.User) (*model.User, error) {
	rec := userRecord{Nome: u.Name, Usuario: u.Login, CreatedAt: u.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return rec.toModel(), nil
}

func (r *UserGorm) UpdatePhoto(ctx context.Context, id int64, key string) error {
	res := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", id).Update("foto", key)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}
