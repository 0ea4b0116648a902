package assessment

import (
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validate checks struct tags on configs, questions, metrics and results read
// at the collaborator boundary (files, store). The controllers never call it.
func Validate(v any) error {
	validateOnce.Do(func() {
		validate = validator.New()
		registerCustomValidators(validate)
	})
	return validate.Struct(v)
}

func registerCustomValidators(v *validator.Validate) {
	v.RegisterValidation("question_type", validateQuestionType)
	v.RegisterValidation("blooms_level", validateBloomsLevel)
	v.RegisterValidation("half_step", validateHalfStep)

	// Report JSON field names in errors.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateQuestionType(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	t, err := ParseQuestionType(raw)
	return err == nil && string(t) == raw
}

func validateBloomsLevel(fl validator.FieldLevel) bool {
	return BloomsLevel(fl.Field().String()).Rank() > 0
}

func validateHalfStep(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return math.Mod(f*2, 1) == 0
}
