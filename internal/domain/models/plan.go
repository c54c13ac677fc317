package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skystack/backoffice/pkg/constants"
)

// ServerSpecs describes the machine shape a plan provisions.
type ServerSpecs struct {
	CPU       int    `json:"cpu"`
	RAM       string `json:"ram"`
	Storage   string `json:"storage"`
	Bandwidth string `json:"bandwidth"`
}

// SubscriptionPlan is a purchasable plan tier.
type SubscriptionPlan struct {
	ID       string             `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name     string             `gorm:"not null" json:"name"`
	Price    float64            `gorm:"not null" json:"price"`
	PlanType constants.PlanType `gorm:"default:monthly" json:"planType"`

	ServerType  string      `json:"serverType"`
	ServerSpecs ServerSpecs `gorm:"serializer:json" json:"serverSpecs"`

	MaxUsageHours       int `json:"maxUsageHours"`
	MaxProjects         int `json:"maxProjects"`
	BackupRetentionDays int `json:"backupRetentionDays"`

	Features      []string             `gorm:"serializer:json" json:"features"`
	Status        constants.PlanStatus `gorm:"default:active" json:"status"`
	StripePriceID string               `json:"stripePriceId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (p *SubscriptionPlan) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
