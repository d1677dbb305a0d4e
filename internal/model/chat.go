package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ConversationType string

const (
	ConversationBooking ConversationType = "booking"
	ConversationSupport ConversationType = "support"
)

// Conversation is a two-party chat: tenant-owner (booking) or user-admin
// (support). LastMessage mirrors the most recent message content.
type Conversation struct {
	gorm.Model
	Members     datatypes.JSONSlice[uint] `json:"members"`
	Type        ConversationType          `json:"type" gorm:"not null"`
	PropertyID  *uint                     `json:"property_id"`
	LastMessage string                    `json:"last_message"`
}

// HasMember reports whether userID belongs to the conversation.
func (c *Conversation) HasMember(userID uint) bool {
	for _, id := range c.Members {
		if id == userID {
			return true
		}
	}
	return false
}

// OtherMember returns the counterparty of userID, or 0 if none.
func (c *Conversation) OtherMember(userID uint) uint {
	for _, id := range c.Members {
		if id != userID {
			return id
		}
	}
	return 0
}

type Message struct {
	gorm.Model
	ConversationID uint   `json:"conversation_id" gorm:"not null;index"`
	SenderID       uint   `json:"sender_id" gorm:"not null"`
	ReceiverID     uint   `json:"receiver_id" gorm:"not null"`
	Content        string `json:"content" gorm:"type:text;not null"`

	Conversation Conversation `json:"-" gorm:"foreignKey:ConversationID"`
}
