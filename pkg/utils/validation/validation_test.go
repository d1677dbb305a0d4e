package validation

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiraya_backend/pkg/apperror"
)

type sample struct {
	Email  string `validate:"required,email"`
	Rating int    `validate:"min=1,max=5"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(sample{Email: "a@example.com", Rating: 3}))

	err := ValidateStruct(sample{Email: "nope", Rating: 9})
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusBadRequest))
	assert.Contains(t, err.Error(), "Email")
	assert.Contains(t, err.Error(), "Rating")
}
