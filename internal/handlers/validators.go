package handlers

import (
	"fmt"

	"github.com/amaansodagar786/credence_backend/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the enum tags used by the request DTOs to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	rules := map[string]validator.Func{
		"taskkind": func(fl validator.FieldLevel) bool {
			return domain.TaskKind(fl.Field().String()).Valid()
		},
		"categorytype": func(fl validator.FieldLevel) bool {
			return domain.CategoryType(fl.Field().String()).Valid()
		},
		"notelevel": func(fl validator.FieldLevel) bool {
			return domain.NoteLevel(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("register %s validator: %w", tag, err)
		}
	}
	return nil
}
