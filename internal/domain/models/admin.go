package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skystack/backoffice/pkg/constants"
)

// Admin is an administrator registration. A user holds elevated access only
// when a row with their subject ID exists here.
type Admin struct {
	ID        string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string              `gorm:"uniqueIndex;type:varchar(36);not null" json:"userId"`
	Email     string              `gorm:"uniqueIndex;not null" json:"email"`
	Name      string              `gorm:"not null" json:"name"`
	Role      constants.AdminRole `gorm:"default:support" json:"role"`
	CreatedAt time.Time           `json:"createdAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// Principal converts the registration into the context principal attached to
// admitted admin requests.
func (a *Admin) Principal() *AdminPrincipal {
	return &AdminPrincipal{
		ID:    a.ID,
		Email: a.Email,
		Name:  a.Name,
		Role:  a.Role,
	}
}
