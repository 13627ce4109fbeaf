package model

import "time"

// User is the author a post may reference ("usuario").
// Photo holds the object storage key of the profile picture, if any.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nome" validate:"required,min=2,max=100"`
	Login     string    `json:"usuario" validate:"required,email,max=255"`
	Photo     string    `json:"foto,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
