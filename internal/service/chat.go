package service

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kiraya_backend/internal/model"
	"kiraya_backend/pkg/apperror"
)

// findConversation scans conversations of the given type for one holding
// exactly these two members (and property, for booking chats). Member sets
// are stored as JSON arrays, so matching happens in Go rather than SQL.
func findConversation(db *gorm.DB, convType model.ConversationType, propertyID *uint, memberA, memberB uint) (*model.Conversation, error) {
	query := db.Where("type = ?", convType)
	if propertyID != nil {
		query = query.Where("property_id = ?", *propertyID)
	}

	var conversations []model.Conversation
	if err := query.Find(&conversations).Error; err != nil {
		return nil, err
	}

	for i := range conversations {
		if conversations[i].HasMember(memberA) && conversations[i].HasMember(memberB) {
			return &conversations[i], nil
		}
	}
	return nil, nil
}

// GetOrCreateSupportChat pairs the user with the support admin, returning
// the conversation and its message history.
func GetOrCreateSupportChat(db *gorm.DB, userID uint) (*model.Conversation, []model.Message, error) {
	var admin model.User
	err := db.Where("role = ?", model.RoleAdmin).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperror.NotFound("Admin not found")
	}
	if err != nil {
		return nil, nil, err
	}

	conversation, err := findConversation(db, model.ConversationSupport, nil, userID, admin.ID)
	if err != nil {
		return nil, nil, err
	}

	if conversation == nil {
		conversation = &model.Conversation{
			Members: datatypes.NewJSONSlice([]uint{userID, admin.ID}),
			Type:    model.ConversationSupport,
		}
		if err := db.Create(conversation).Error; err != nil {
			return nil, nil, err
		}
	}

	messages, err := GetMessages(db, conversation.ID)
	if err != nil {
		return nil, nil, err
	}

	return conversation, messages, nil
}

// GetOrCreateBookingChat opens the tenant-owner conversation for a
// property. Booking chats are tenant-initiated; an owner opening one on
// their own listing would produce a single-member conversation with no
// counterparty to receive messages.
func GetOrCreateBookingChat(db *gorm.DB, propertyID, tenantID, ownerID uint) (*model.Conversation, error) {
	if tenantID == ownerID {
		return nil, apperror.BadRequest("You cannot open a booking chat on your own property")
	}

	var property model.PropertyListing
	if err := db.First(&property, propertyID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Property not found")
	}

	conversation, err := findConversation(db, model.ConversationBooking, &propertyID, tenantID, ownerID)
	if err != nil {
		return nil, err
	}

	if conversation == nil {
		conversation = &model.Conversation{
			Members:    datatypes.NewJSONSlice([]uint{tenantID, ownerID}),
			Type:       model.ConversationBooking,
			PropertyID: &propertyID,
		}
		if err := db.Create(conversation).Error; err != nil {
			return nil, err
		}
	}

	return conversation, nil
}

// SendMessage persists a message and mirrors it onto the conversation's
// last-message field. The receiver is derived as the other member.
func SendMessage(db *gorm.DB, senderID, conversationID uint, content string) (*model.Message, error) {
	if content == "" {
		return nil, apperror.BadRequest("conversationId and content required")
	}

	var conversation model.Conversation
	if err := db.First(&conversation, conversationID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Conversation not found")
	}

	if !conversation.HasMember(senderID) {
		return nil, apperror.Forbidden("You are not a member of this conversation")
	}

	message := model.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		ReceiverID:     conversation.OtherMember(senderID),
		Content:        content,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&conversation).Update("last_message", content).Error
	})
	if err != nil {
		return nil, err
	}

	return &message, nil
}

// GetConversation fetches a conversation by id.
func GetConversation(db *gorm.DB, conversationID uint) (*model.Conversation, error) {
	var conversation model.Conversation
	if err := db.First(&conversation, conversationID).Error; err != nil {
		return nil, apperror.FromGorm(err, "Conversation not found")
	}
	return &conversation, nil
}

// GetMessages returns a conversation's messages oldest first.
func GetMessages(db *gorm.DB, conversationID uint) ([]model.Message, error) {
	var messages []model.Message
	err := db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

// ListSupportConversations is the admin's inbox.
func ListSupportConversations(db *gorm.DB) ([]model.Conversation, error) {
	var conversations []model.Conversation
	err := db.Where("type = ?", model.ConversationSupport).
		Order("updated_at DESC").
		Find(&conversations).Error
	return conversations, err
}
