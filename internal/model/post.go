package model

import "time"

// Post is a blog entry ("postagem").
// This is a pure domain model with no database-specific dependencies or tags.
// Tema and Usuario are embedded one way only; neither references posts back,
// so a Post always serializes without cycles.
type Post struct {
	ID    int64     `json:"id"`
	Title string    `json:"titulo" validate:"required,min=5,max=100"`
	Text  string    `json:"texto" validate:"required,min=10,max=1000"`
	Date  time.Time `json:"data"`
	Topic *Topic    `json:"tema" validate:"-"`
	User  *User     `json:"usuario" validate:"-"`
}

// TopicID returns the referenced topic id, or nil when the post has none.
func (p *Post) TopicID() *int64 {
	if p.Topic == nil || p.Topic.ID == 0 {
		return nil
	}
	id := p.Topic.ID
	return &id
}

// UserID returns the referenced user id, or nil when the post has none.
func (p *Post) UserID() *int64 {
	if p.User == nil || p.User.ID == 0 {
		return nil
	}
	id := p.User.ID
	return &id
}
