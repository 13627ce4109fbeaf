package gormrepo

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

// PostGorm implements repository.PostRepository with GORM.
type PostGorm struct {
	db *gorm.DB
}

// NewPostGorm creates a new PostGorm repository.
func NewPostGorm(db *gorm.DB) *PostGorm {
	return &PostGorm{db: db}
}

var _ repository.PostRepository = (*PostGorm)(nil)

func (r *PostGorm) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Tema").Preload("Usuario")
}

func (r *PostGorm) find(tx *gorm.DB) ([]model.Post, error) {
	var recs []postRecord
	if err := tx.Order("id").Find(&recs).Error; err != nil {
		return nil, translate(err)
	}
	items := make([]model.Post, 0, len(recs))
	for i := range recs {
		items = append(items, recs[i].toModel())
	}
	return items, nil
}

func (r *PostGorm) FindAll(ctx context.Context) ([]model.Post, error) {
	return r.find(r.withRefs(ctx))
}

func (r *PostGorm) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	var rec postRecord
	if err := r.withRefs(ctx).First(&rec, id).Error; err != nil {
		return nil, translate(err)
	}
	p := rec.toModel()
	return &p, nil
}

func (r *PostGorm) FindAllByTitle(ctx context.Context, title string) ([]model.Post, error) {
	return r.find(r.withRefs(ctx).Where(likeClause(r.db, "titulo"), repository.ContainsPattern(title)))
}

// Create inserts a new row; any ID on p is ignored.
func (r *PostGorm) Create(ctx context.Context, p *model.Post) (*model.Post, error) {
	rec := newPostRecord(p)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error; err != nil {
		return nil, translate(err)
	}
	return r.FindByID(ctx, rec.ID)
}

// Update writes every column, including cleared references.
func (r *PostGorm) Update(ctx context.Context, p *model.Post) (*model.Post, error) {
	rec := newPostRecord(p)
	res := r.db.WithContext(ctx).Model(&postRecord{}).Where("id = ?", rec.ID).Updates(map[string]any{
		"titulo":     rec.Titulo,
		"texto":      rec.Texto,
		"data":       rec.Data,
		"tema_id":    rec.TemaID,
		"usuario_id": rec.UsuarioID,
	})
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports changed rather than matched rows, so an update that
		// writes identical values also lands here.
		var n int64
		if err := r.db.WithContext(ctx).Model(&postRecord{}).Where("id = ?", rec.ID).Count(&n).Error; err != nil {
			return nil, translate(err)
		}
		if n == 0 {
			return nil, sql.ErrNoRows
		}
	}
	return r.FindByID(ctx, rec.ID)
}

func (r *PostGorm) Delete(ctx context.Context, id int64) error {
	return translate(r.db.WithContext(ctx).Delete(&postRecord{}, id).Error)
}
