// Package gormrepo implements the repositories on top of GORM, for the MySQL
// and SQLite backends.
package gormrepo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"blogpessoal/internal/database"
	"blogpessoal/internal/model"
	"blogpessoal/internal/repository"
)

type topicRecord struct {
	ID        int64  `gorm:"primaryKey"`
	Descricao string `gorm:"type:varchar(255);not null"`
}

func (topicRecord) TableName() string { return "tb_temas" }

type userRecord struct {
	ID        int64     `gorm:"primaryKey"`
	Nome      string    `gorm:"type:varchar(100);not null"`
	Usuario   string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Foto      string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`
}

func (userRecord) TableName() string { return "tb_usuarios" }

type postRecord struct {
	ID        int64        `gorm:"primaryKey"`
	Titulo    string       `gorm:"type:varchar(100);not null"`
	Texto     string       `gorm:"type:varchar(1000);not null"`
	Data      time.Time    `gorm:"not null"`
	TemaID    *int64       `gorm:"index"`
	Tema      *topicRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	UsuarioID *int64       `gorm:"index"`
	Usuario   *userRecord  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

func (postRecord) TableName() string { return "tb_postagens" }

// Migrate creates or updates the tables of the GORM backends.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&topicRecord{}, &userRecord{}, &postRecord{})
}

func (r *topicRecord) toModel() *model.Topic {
	if r == nil {
		return nil
	}
	return &model.Topic{ID: r.ID, Description: r.Descricao}
}

func (r *userRecord) toModel() *model.User {
	if r == nil {
		return nil
	}
	return &model.User{ID: r.ID, Name: r.Nome, Login: r.Usuario, Photo: r.Foto, CreatedAt: r.CreatedAt}
}

func (r *postRecord) toModel() model.Post {
	return model.Post{
		ID:    r.ID,
		Title: r.Titulo,
		Text:  r.Texto,
		Date:  r.Data,
		Topic: r.Tema.toModel(),
		User:  r.Usuario.toModel(),
	}
}

func newPostRecord(p *model.Post) *postRecord {
	return &postRecord{
		ID:        p.ID,
		Titulo:    p.Title,
		Texto:     p.Text,
		Data:      p.Date,
		TemaID:    p.TopicID(),
		UsuarioID: p.UserID(),
	}
}

// translate maps GORM errors onto the repository contract. It relies on the
// dialector translating driver errors (gorm.Config.TranslateError).
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return sql.ErrNoRows
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", repository.ErrForeignKey, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}

// likeClause matches a lower-cased column against repository.ContainsPattern.
// SQLite's LOWER only folds ASCII, so it uses the Unicode-aware function the
// driver registers instead.
func likeClause(db *gorm.DB, column string) string {
	lower := "LOWER"
	if db.Dialector.Name() == "sqlite" {
		lower = database.SQLiteLower
	}
	return lower + "(" + column + ") LIKE ? ESCAPE '" + repository.LikeEscape + "'"
}
