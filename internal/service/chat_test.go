package service

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

func TestSupportChatRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)

	_, _, err := GetOrCreateSupportChat(db, tenant.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusNotFound))
	assert.EqualError(t, err, "Admin not found")
}

func TestSupportChatCreatedOnce(t *testing.T) {
	db := newTestDB(t)
	admin := createUser(t, db, "admin@example.com", model.RoleAdmin)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)

	first, _, err := GetOrCreateSupportChat(db, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ConversationSupport, first.Type)
	assert.True(t, first.HasMember(tenant.ID))
	assert.True(t, first.HasMember(admin.ID))

	second, messages, err := GetOrCreateSupportChat(db, tenant.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, messages)
}

func TestBookingChatReusedPerProperty(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Standard", 5)
	first := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")
	second := createProperty(t, db, owner.ID, plan.ID, "14 Canal Road")

	convA, err := GetOrCreateBookingChat(db, first.ID, tenant.ID, owner.ID)
	require.NoError(t, err)

	convAgain, err := GetOrCreateBookingChat(db, first.ID, tenant.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, convA.ID, convAgain.ID)

	convB, err := GetOrCreateBookingChat(db, second.ID, tenant.ID, owner.ID)
	require.NoError(t, err)
	assert.NotEqual(t, convA.ID, convB.ID)
}

func TestBookingChatOwnerCannotOpenOwnProperty(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	_, err := GetOrCreateBookingChat(db, property.ID, owner.ID, owner.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusBadRequest))

	var count int64
	require.NoError(t, db.Model(&model.Conversation{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSendMessageMembersOnly(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	stranger := createUser(t, db, "stranger@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	conversation, err := GetOrCreateBookingChat(db, property.ID, tenant.ID, owner.ID)
	require.NoError(t, err)

	_, err = SendMessage(db, stranger.ID, conversation.ID, "Hello there")
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, fiber.StatusForbidden))

	message, err := SendMessage(db, tenant.ID, conversation.ID, "Is the place still available?")
	require.NoError(t, err)
	assert.Equal(t, owner.ID, message.ReceiverID)

	var reloaded model.Conversation
	require.NoError(t, db.First(&reloaded, conversation.ID).Error)
	assert.Equal(t, "Is the place still available?", reloaded.LastMessage)
}

func TestGetMessagesOrder(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	conversation, err := GetOrCreateBookingChat(db, property.ID, tenant.ID, owner.ID)
	require.NoError(t, err)

	for _, content := range []string{"first", "second", "third"} {
		_, err := SendMessage(db, tenant.ID, conversation.ID, content)
		require.NoError(t, err)
	}

	messages, err := GetMessages(db, conversation.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "third", messages[2].Content)
}

func TestListSupportConversations(t *testing.T) {
	db := newTestDB(t)
	createUser(t, db, "admin@example.com", model.RoleAdmin)
	tenant := createUser(t, db, "tenant@example.com", model.RoleTenant)
	owner := createUser(t, db, "owner@example.com", model.RoleOwner)
	plan := createPlan(t, db, "Basic", 1)
	property := createProperty(t, db, owner.ID, plan.ID, "12 Canal Road")

	_, _, err := GetOrCreateSupportChat(db, tenant.ID)
	require.NoError(t, err)
	_, err = GetOrCreateBookingChat(db, property.ID, tenant.ID, owner.ID)
	require.NoError(t, err)

	conversations, err := ListSupportConversations(db)
	require.NoError(t, err)
	require.Len(t, conversations, 1)
	assert.Equal(t, model.ConversationSupport, conversations[0].Type)
}
