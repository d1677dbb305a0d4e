package validation

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"kiraya_backend/pkg/apperror"
)

var validate = validator.New()

// ValidateStruct runs validator/v10 tags on an input struct and folds the
// failures into a single BadRequest message.
func ValidateStruct(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperror.BadRequest("Invalid input")
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fe.Field()+" failed on '"+fe.Tag()+"'")
	}
	return apperror.BadRequest("Validation error: %s", strings.Join(parts, ", "))
}
