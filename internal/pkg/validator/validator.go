// Package validator wraps go-playground/validator behind a single
// call that flattens struct-tag failures into a field->tag map, the
// shape response.ErrorWithDetails expects.
package validator

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks v against its `validate` struct tags. It returns nil
// when everything passes, otherwise a map of field name to the tag
// that failed.
func Validate(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	for _, fe := range err.(validator.ValidationErrors) {
		fields[fe.Field()] = fe.Tag()
	}
	return fields
}
