package dto

import (
	"math"
	"time"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/pkg/constants"
)

// Pagination is the envelope attached to every paginated listing.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes the envelope for a result set.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// UserProfile is the caller-facing view of a user account.
type UserProfile struct {
	ID                    string                       `json:"id"`
	Email                 string                       `json:"email"`
	Name                  string                       `json:"name"`
	Plan                  string                       `json:"plan"`
	SubscriptionStatus    constants.SubscriptionStatus `json:"subscriptionStatus"`
	SubscriptionStartedAt *time.Time                   `json:"subscriptionStartedAt,omitempty"`
	SubscriptionExpiresAt *time.Time                   `json:"subscriptionExpiresAt,omitempty"`
	ServerIP              string                       `json:"serverIp,omitempty"`
	ServerStatus          constants.ServerStatus       `json:"serverStatus,omitempty"`
	DefaultModel          string                       `json:"defaultModel,omitempty"`
	MaxUsageHours         int                          `json:"maxUsageHours"`
	MaxProjects           int                          `json:"maxProjects"`
	CustomModels          models.CustomModelMap        `json:"customModels,omitempty"`
	CreatedAt             time.Time                    `json:"createdAt"`
}

// NewUserProfile projects a user model into its API view. The password hash
// and internal server identifiers never leave the service.
func NewUserProfile(u *models.User) *UserProfile {
	return &UserProfile{
		ID:                    u.ID,
		Email:                 u.Email,
		Name:                  u.Name,
		Plan:                  u.Plan,
		SubscriptionStatus:    u.SubscriptionStatus,
		SubscriptionStartedAt: u.SubscriptionStartedAt,
		SubscriptionExpiresAt: u.SubscriptionExpiresAt,
		ServerIP:              u.ServerIP,
		ServerStatus:          u.ServerStatus,
		DefaultModel:          u.DefaultModel,
		MaxUsageHours:         u.MaxUsageHours,
		MaxProjects:           u.MaxProjects,
		CustomModels:          u.CustomModels,
		CreatedAt:             u.CreatedAt,
	}
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Success bool         `json:"success"`
	User    *UserProfile `json:"user"`
	Token   string       `json:"token"`
}

// Dashboard aggregates the signed-in user's account overview.
type Dashboard struct {
	User        *UserProfile            `json:"user"`
	OpenTickets []*models.SupportTicket `json:"openTickets"`
	Invoices    []*models.Invoice       `json:"recentInvoices"`
	Backups     []*models.Backup        `json:"recentBackups"`
}

// AdminUserList is the admin listing of accounts.
type AdminUserList struct {
	Users      []*UserProfile `json:"users"`
	Pagination Pagination     `json:"pagination"`
}

// TicketList is a paginated ticket listing.
type TicketList struct {
	Tickets    []*models.SupportTicket `json:"tickets"`
	Pagination Pagination              `json:"pagination"`
}

// InvoiceList is a paginated invoice listing.
type InvoiceList struct {
	Invoices   []*models.Invoice `json:"invoices"`
	Pagination Pagination        `json:"pagination"`
}

// BackupList is a paginated backup listing.
type BackupList struct {
	Backups    []*models.Backup `json:"backups"`
	Pagination Pagination       `json:"pagination"`
}

// PlatformStats is the admin operations overview.
type PlatformStats struct {
	TotalUsers        int64   `json:"totalUsers"`
	ActiveUsers       int64   `json:"activeUsers"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	AnnualRevenue     float64 `json:"annualRevenue"`
	RunningServers    int64   `json:"runningServers"`
	StoppedServers    int64   `json:"stoppedServers"`
	EstimatedCosts    float64 `json:"estimatedCosts"`
	OpenTickets       int64   `json:"openTickets"`
	InProgressTickets int64   `json:"inProgressTickets"`
}
