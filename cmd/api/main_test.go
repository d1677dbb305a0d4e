package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
)

func newRouteApp(t *testing.T) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler})
	setupRoutes(app)
	return app
}

// Clients are written against these exact method+path pairs; a rename
// here is a breaking change even when the handler survives.
func TestClientFacingRoutesRegistered(t *testing.T) {
	app := newRouteApp(t)

	routes := []struct {
		method string
		path   string
	}{
		{fiber.MethodPost, "/api/v1/bookings/createBooking/1"},
		{fiber.MethodGet, "/api/v1/bookings/my-bookings"},
		{fiber.MethodGet, "/api/v1/bookings/myBooking/1"},
		{fiber.MethodPatch, "/api/v1/bookings/approveBooking/1"},
		{fiber.MethodPatch, "/api/v1/bookings/rejectBooking/1"},
		{fiber.MethodGet, "/api/v1/properties/my-properties"},
		{fiber.MethodPatch, "/api/v1/properties/verify/1"},
		{fiber.MethodPost, "/api/v1/payments/create-payment-intent"},
		{fiber.MethodPost, "/api/v1/payments/record-payment/1"},
		{fiber.MethodPatch, "/api/v1/rent-payments/verify/1"},
		{fiber.MethodGet, "/api/v1/rent-payments/check/1/2"},
		{fiber.MethodPost, "/api/v1/chats/support"},
		{fiber.MethodPost, "/api/v1/chats/booking"},
		{fiber.MethodPost, "/api/v1/chats/message"},
		{fiber.MethodGet, "/api/v1/chats/messages/1"},
	}

	for _, route := range routes {
		resp, err := app.Test(httptest.NewRequest(route.method, route.path, nil))
		require.NoError(t, err)
		// All of these sit behind the auth middleware, so an anonymous
		// request proves registration by failing with 401, not 404.
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode,
			"%s %s", route.method, route.path)
	}
}

func TestChatSocketGate(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Conversation{}))

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	conversation := model.Conversation{
		Members: datatypes.NewJSONSlice([]uint{11, 22}),
		Type:    model.ConversationBooking,
	}
	require.NoError(t, db.Create(&conversation).Error)

	app := newRouteApp(t)
	target := fmt.Sprintf("/ws/%d", conversation.ID)

	upgradeReq := func(token string) *http.Request {
		req := httptest.NewRequest(fiber.MethodGet, target, nil)
		req.Header.Set("Connection", "Upgrade")
		req.Header.Set("Upgrade", "websocket")
		req.Header.Set("Sec-WebSocket-Version", "13")
		req.Header.Set("Sec-WebSocket-Key", "dGhlIHNhbXBsZSBub25jZQ==")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return req
	}

	// Plain HTTP request never reaches the socket handler.
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, target, nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)

	// Upgrade without a session is rejected before any room is joined.
	resp, err = app.Test(upgradeReq(""))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	// A logged-in non-member cannot join another pair's conversation.
	token, err := jwt.GenerateToken(33, "stranger@example.com", model.RoleTenant)
	require.NoError(t, err)
	resp, err = app.Test(upgradeReq(token))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
