package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skystack/backoffice/pkg/constants"
)

// SupportTicket is a user-opened support case with a message thread.
type SupportTicket struct {
	ID      string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID  string `gorm:"index;not null" json:"userId"`
	Subject string `gorm:"not null" json:"subject"`
	Message string `gorm:"not null" json:"message"`

	Category   constants.TicketCategory `gorm:"default:other" json:"category"`
	Priority   constants.TicketPriority `gorm:"default:normal" json:"priority"`
	Status     constants.TicketStatus   `gorm:"default:open;index" json:"status"`
	AssignedTo string                   `json:"assignedTo,omitempty"`

	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
	User     *User           `gorm:"foreignKey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (t *SupportTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// IsClosed reports whether the ticket has been resolved.
func (t *SupportTicket) IsClosed() bool {
	return t.Status == constants.TicketClosed
}

// TicketMessage is one entry in a ticket's conversation thread.
type TicketMessage struct {
	ID         string               `gorm:"primaryKey;type:varchar(36)" json:"id"`
	TicketID   string               `gorm:"index;not null" json:"ticketId"`
	SenderID   string               `gorm:"not null" json:"senderId"`
	SenderType constants.SenderType `gorm:"not null" json:"senderType"`
	Message    string               `gorm:"not null" json:"message"`
	CreatedAt  time.Time            `json:"createdAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (m *TicketMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
