package apperror

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// serveError runs a request through a fiber app whose only route fails
// with the given error, and returns the status code and decoded body.
func serveError(t *testing.T, err error) (int, envelope) {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: Handler})
	app.Get("/", func(c *fiber.Ctx) error {
		return err
	})

	resp, testErr := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, testErr)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestHandlerAppError(t *testing.T) {
	code, body := serveError(t, NotFound("Plan not found"))

	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "fail", body.Status)
	assert.Equal(t, "Plan not found", body.Message)
}

func TestHandlerGormTranslation(t *testing.T) {
	code, body := serveError(t, gorm.ErrRecordNotFound)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.Equal(t, "fail", body.Status)

	code, body = serveError(t, gorm.ErrDuplicatedKey)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "fail", body.Status)
}

func TestHandlerSurfacesUnknownErrorCause(t *testing.T) {
	// Unrecognised errors must report their immediate cause in every
	// environment, not a fixed generic text.
	t.Setenv("APP_ENV", "production")

	code, body := serveError(t, errors.New("dial tcp: connection refused"))

	assert.Equal(t, fiber.StatusInternalServerError, code)
	assert.Equal(t, "error", body.Status)
	assert.Equal(t, "dial tcp: connection refused", body.Message)
}
