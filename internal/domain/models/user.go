// Package models defines the domain models for the back-office service.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skystack/backoffice/pkg/constants"
)

// ModelConfig is a user-supplied model provider configuration.
type ModelConfig struct {
	APIKey string `json:"apiKey"`
	Model  string `json:"model"`
}

// CustomModelMap maps a provider name to its configuration. Stored as JSON.
type CustomModelMap map[string]ModelConfig

// User is an account holder with an optional subscription and provisioned
// server. PasswordHash is never serialized.
type User struct {
	ID           string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `gorm:"not null" json:"name"`

	Plan                  string                       `json:"plan"`
	SubscriptionStatus    constants.SubscriptionStatus `gorm:"default:trial" json:"subscriptionStatus"`
	SubscriptionStartedAt *time.Time                   `json:"subscriptionStartedAt,omitempty"`
	SubscriptionExpiresAt *time.Time                   `json:"subscriptionExpiresAt,omitempty"`

	ServerID     string                 `json:"serverId,omitempty"`
	ServerIP     string                 `json:"serverIp,omitempty"`
	ServerStatus constants.ServerStatus `json:"serverStatus,omitempty"`

	DefaultModel  string         `json:"defaultModel,omitempty"`
	MaxUsageHours int            `json:"maxUsageHours"`
	MaxProjects   int            `json:"maxProjects"`
	CustomModels  CustomModelMap `gorm:"serializer:json" json:"customModels,omitempty"`

	LastActiveAt *time.Time `json:"lastActiveAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// IsActive reports whether the user's subscription is active.
func (u *User) IsActive() bool {
	return u.SubscriptionStatus == constants.SubscriptionActive
}

// TouchLastActive updates the last-activity timestamp to now.
func (u *User) TouchLastActive() {
	now := time.Now().UTC()
	u.LastActiveAt = &now
}
