package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError describes one failed constraint, keyed by the JSON field name.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload breaks its declared constraints.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator checks the `validate` struct tags of the domain models.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator that reports fields by their JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{v: v}
}

// Struct validates s and returns a *ValidationError listing every failed field.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	typ := reflect.TypeOf(s)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		var tag string
		if f, ok := typ.FieldByName(fe.StructField()); ok {
			tag = f.Tag.Get("validate")
		}
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe, tag)})
	}
	return out
}

// fieldLabels are the accented names used in messages.
var fieldLabels = map[string]string{
	"titulo":    "título",
	"descricao": "descrição",
	"usuario":   "usuário",
}

func message(fe validator.FieldError, tag string) string {
	label := fe.Field()
	if l, ok := fieldLabels[label]; ok {
		label = l
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("O atributo %s é Obrigatório!", label)
	case "min", "max":
		lo, hi := bounds(tag)
		if lo == "" && hi == "" {
			if fe.Tag() == "min" {
				lo = fe.Param()
			} else {
				hi = fe.Param()
			}
		}
		switch {
		case lo != "" && hi != "":
			return fmt.Sprintf("O atributo %s deve conter no mínimo %s e no máximo %s caracteres", label, pad2(lo), hi)
		case lo != "":
			return fmt.Sprintf("O atributo %s deve conter no mínimo %s caracteres", label, pad2(lo))
		default:
			return fmt.Sprintf("O atributo %s deve conter no máximo %s caracteres", label, hi)
		}
	case "email":
		return fmt.Sprintf("O atributo %s deve ser um e-mail válido", label)
	default:
		return fmt.Sprintf("O atributo %s é inválido", label)
	}
}

// bounds returns the min and max parameters declared in a validate tag.
func bounds(tag string) (lo, hi string) {
	for _, part := range strings.Split(tag, ",") {
		if v, ok := strings.CutPrefix(part, "min="); ok {
			lo = v
		}
		if v, ok := strings.CutPrefix(part, "max="); ok {
			hi = v
		}
	}
	return lo, hi
}

func pad2(n string) string {
	if len(n) == 1 {
		return "0" + n
	}
	return n
}
