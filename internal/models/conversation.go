package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message senders
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Conversation is an assistant chat thread. Its ID doubles as the
// threadId the dashboard passes back for conversation continuity.
type Conversation struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClientID uuid.UUID `gorm:"type:uuid;not null;index" json:"client_id"`

	Title string `gorm:"type:text" json:"title,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Conversation) TableName() string {
	return "dash_conversations"
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Message is one turn in a conversation. Analysis marks assistant
// turns produced by the file-analysis path.
type Message struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ConversationID uuid.UUID `gorm:"type:uuid;not null;index" json:"conversation_id"`

	Sender   string `gorm:"type:text;not null" json:"sender"`
	Text     string `gorm:"type:text" json:"text"`
	Analysis bool   `gorm:"type:boolean;default:false" json:"analysis,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Conversation Conversation `gorm:"foreignKey:ConversationID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Message) TableName() string {
	return "dash_messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
