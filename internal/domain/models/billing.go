package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skystack/backoffice/pkg/constants"
)

// Invoice is a billing record for a user.
type Invoice struct {
	ID        string                  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string                  `gorm:"index;not null" json:"userId"`
	Amount    float64                 `gorm:"not null" json:"amount"`
	Currency  string                  `gorm:"default:EUR" json:"currency"`
	Status    constants.InvoiceStatus `gorm:"default:pending;index" json:"status"`
	PaidAt    *time.Time              `json:"paidAt,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Backup is a snapshot of a user's server.
type Backup struct {
	ID         string                 `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string                 `gorm:"index;not null" json:"userId"`
	SnapshotID string                 `json:"snapshotId"`
	SizeMB     int64                  `json:"sizeMb"`
	Status     constants.BackupStatus `gorm:"default:completed" json:"status"`
	CreatedAt  time.Time              `json:"createdAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (b *Backup) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
