package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError is one failed structural check on a decoded project.
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// Validate checks the shape the converter relies on: at least one floor,
// positive sizes and opening positions within [0,1].
func (p *Project) Validate() error {
	return validate.Struct(p)
}

// FieldErrors flattens a validation error into a serializable list.
// Non-validation errors yield nil.
func FieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Namespace(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out
}
