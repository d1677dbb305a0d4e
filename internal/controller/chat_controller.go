package controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"kiraya_backend/internal/model"
	"kiraya_backend/internal/service"
	"kiraya_backend/pkg/apperror"
	"kiraya_backend/pkg/chat"
	"kiraya_backend/pkg/database"
	"kiraya_backend/pkg/utils/jwt"
	"kiraya_backend/pkg/utils/validation"
)

// chatHub is the process-wide room registry for live message fan-out.
var chatHub = chat.NewHub()

// SupportChat opens (or resumes) the caller's conversation with the
// support admin and returns it with its message history.
func SupportChat(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	conversation, messages, err := service.GetOrCreateSupportChat(database.GetDB(), claims.UserID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"conversation": conversation,
			"messages":     messages,
		},
	})
}

type BookingChatInput struct {
	PropertyID uint `json:"property_id" validate:"required"`
}

// BookingChat opens (or resumes) the tenant-owner conversation attached
// to a property. Always tenant-initiated; the owner side is derived from
// the property record.
func BookingChat(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(BookingChatInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	property, err := service.GetProperty(database.GetDB(), input.PropertyID)
	if err != nil {
		return err
	}

	conversation, err := service.GetOrCreateBookingChat(database.GetDB(), property.ID, claims.UserID, property.OwnerID)
	if err != nil {
		return err
	}

	messages, err := service.GetMessages(database.GetDB(), conversation.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"conversation": conversation,
			"messages":     messages,
		},
	})
}

type SendMessageInput struct {
	ConversationID uint   `json:"conversation_id" validate:"required"`
	Content        string `json:"content" validate:"required,max=2000"`
}

// SendMessage persists a message and fans it out to any live websocket
// clients in the conversation's room.
func SendMessage(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	input := new(SendMessageInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid input",
		})
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	message, err := service.SendMessage(database.GetDB(), claims.UserID, input.ConversationID, input.Content)
	if err != nil {
		return err
	}

	chatHub.Publish(message.ConversationID, message)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"message": message,
		},
	})
}

// GetMessages returns a conversation's history, oldest first. Only
// members may read it.
func GetMessages(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	conversationID, err := c.ParamsInt("conversationId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "fail",
			"message": "Invalid conversation id",
		})
	}

	conversation, err := service.GetConversation(database.GetDB(), uint(conversationID))
	if err != nil {
		return err
	}
	if !conversation.HasMember(claims.UserID) && claims.Role != model.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status":  "fail",
			"message": "You are not a member of this conversation",
		})
	}

	messages, err := service.GetMessages(database.GetDB(), uint(conversationID))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(messages),
		"data": fiber.Map{
			"messages": messages,
		},
	})
}

// ListSupportConversations is the admin inbox of open support threads.
func ListSupportConversations(c *fiber.Ctx) error {
	conversations, err := service.ListSupportConversations(database.GetDB())
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"results": len(conversations),
		"data": fiber.Map{
			"conversations": conversations,
		},
	})
}

// WebsocketUpgrade gates the upgrade handshake; non-websocket requests
// get a 426.
func WebsocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// AuthorizeChatSocket admits only conversation members (or an admin) to
// the live feed. Runs after AuthMiddleware, before the connection is
// upgraded.
func AuthorizeChatSocket(c *fiber.Ctx) error {
	claims := c.Locals("user").(*jwt.Claims)

	conversationID, err := c.ParamsInt("conversationId")
	if err != nil {
		return apperror.BadRequest("Invalid conversation id")
	}

	conversation, err := service.GetConversation(database.GetDB(), uint(conversationID))
	if err != nil {
		return err
	}
	if !conversation.HasMember(claims.UserID) && claims.Role != model.RoleAdmin {
		return apperror.Forbidden("You are not a member of this conversation")
	}

	return c.Next()
}

// ChatSocket joins the client to the conversation's room and keeps the
// connection open until the peer hangs up. Inbound frames are read and
// discarded: sending goes through the HTTP endpoint so persistence and
// authorization stay in one place.
func ChatSocket(conn *websocket.Conn) {
	id, err := strconv.ParseUint(conn.Params("conversationId"), 10, 64)
	if err != nil {
		conn.Close()
		return
	}
	conversationID := uint(id)

	chatHub.Join(conversationID, conn)
	defer func() {
		chatHub.Leave(conversationID, conn)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
