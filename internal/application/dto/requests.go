// Package dto defines the request and response payloads exchanged over the
// HTTP API. Binding tags follow go-playground/validator semantics.
package dto

import (
	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/pkg/constants"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
}

// LoginRequest is the payload for credential authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest carries the mutable profile fields. Pointers
// distinguish "not sent" from "set to zero value".
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,min=2,max=100"`
	DefaultModel *string `json:"defaultModel,omitempty"`
}

// UpdateModelsRequest replaces the user's custom model configuration.
type UpdateModelsRequest struct {
	CustomModels models.CustomModelMap `json:"customModels" binding:"required"`
}

// CreateTicketRequest opens a new support ticket.
type CreateTicketRequest struct {
	Subject  string                   `json:"subject" binding:"required,max=200"`
	Message  string                   `json:"message" binding:"required,max=5000"`
	Category constants.TicketCategory `json:"category" binding:"omitempty,oneof=billing technical account other"`
	Priority constants.TicketPriority `json:"priority" binding:"omitempty,oneof=low normal high urgent"`
}

// TicketReplyRequest appends a message to a ticket thread.
type TicketReplyRequest struct {
	Message string `json:"message" binding:"required,max=5000"`
}

// UpdateTicketRequest is the admin payload for triaging a ticket.
type UpdateTicketRequest struct {
	Status     *constants.TicketStatus   `json:"status,omitempty" binding:"omitempty,oneof=open in_progress closed"`
	Priority   *constants.TicketPriority `json:"priority,omitempty" binding:"omitempty,oneof=low normal high urgent"`
	AssignedTo *string                   `json:"assignedTo,omitempty"`
}

// PlanRequest creates or replaces a subscription plan.
type PlanRequest struct {
	Name     string             `json:"name" binding:"required,max=100"`
	Price    float64            `json:"price" binding:"gte=0"`
	PlanType constants.PlanType `json:"planType" binding:"omitempty,oneof=monthly yearly"`

	ServerType  string             `json:"serverType"`
	ServerSpecs models.ServerSpecs `json:"serverSpecs"`

	MaxUsageHours       int `json:"maxUsageHours" binding:"gte=0"`
	MaxProjects         int `json:"maxProjects" binding:"gte=0"`
	BackupRetentionDays int `json:"backupRetentionDays" binding:"gte=0"`

	Features      []string             `json:"features"`
	Status        constants.PlanStatus `json:"status" binding:"omitempty,oneof=active archived"`
	StripePriceID string               `json:"stripePriceId"`
}

// ListUsersQuery filters and paginates the admin user listing.
type ListUsersQuery struct {
	Page   int    `form:"page,default=1" binding:"gte=1"`
	Limit  int    `form:"limit,default=20" binding:"gte=1,lte=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=active suspended cancelled trial"`
	Plan   string `form:"plan"`
}

// ListTicketsQuery filters and paginates the admin ticket listing.
type ListTicketsQuery struct {
	Page     int    `form:"page,default=1" binding:"gte=1"`
	Limit    int    `form:"limit,default=20" binding:"gte=1,lte=100"`
	Status   string `form:"status" binding:"omitempty,oneof=open in_progress closed"`
	Category string `form:"category" binding:"omitempty,oneof=billing technical account other"`
	Priority string `form:"priority" binding:"omitempty,oneof=low normal high urgent"`
}

// PageQuery is a plain pagination query.
type PageQuery struct {
	Page  int `form:"page,default=1" binding:"gte=1"`
	Limit int `form:"limit,default=20" binding:"gte=1,lte=100"`
}

// Offset converts the 1-based page into a row offset.
func (q PageQuery) Offset() int { return (q.Page - 1) * q.Limit }

// Offset converts the 1-based page into a row offset.
func (q ListUsersQuery) Offset() int { return (q.Page - 1) * q.Limit }

// Offset converts the 1-based page into a row offset.
func (q ListTicketsQuery) Offset() int { return (q.Page - 1) * q.Limit }
