package model

// Topic categorizes posts ("tema").
type Topic struct {
	ID          int64  `json:"id"`
	Description string `json:"descricao" validate:"required,max=255"`
}
