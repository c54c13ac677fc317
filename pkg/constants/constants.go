// Package constants defines shared enumerations and context keys for the
// back-office service.
package constants

// Gin context keys used to pass admission results from middleware to
// handlers.
const (
	// ContextKeyIdentity holds the *models.Identity of the authenticated caller.
	ContextKeyIdentity = "identity"
	// ContextKeyAdmin holds the *models.AdminPrincipal of an authorized admin.
	ContextKeyAdmin = "admin_principal"
)

// ctxKey keeps request-context values set by this module from colliding with
// keys owned by other packages.
type ctxKey string

// ContextKeyRequestID holds the per-request correlation ID in a
// context.Context.
const ContextKeyRequestID ctxKey = "request_id"

// SubscriptionStatus indicates the billing state of a user account.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionSuspended SubscriptionStatus = "suspended"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionTrial     SubscriptionStatus = "trial"
)

// ServerStatus indicates the state of a user's provisioned server.
type ServerStatus string

const (
	ServerRunning ServerStatus = "running"
	ServerStopped ServerStatus = "stopped"
)

// PlanStatus indicates whether a subscription plan is offered.
type PlanStatus string

const (
	PlanActive   PlanStatus = "active"
	PlanArchived PlanStatus = "archived"
)

// PlanType is the billing cadence of a plan.
type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
)

// TicketStatus is the lifecycle state of a support ticket.
type TicketStatus string

const (
	TicketOpen       TicketStatus = "open"
	TicketInProgress TicketStatus = "in_progress"
	TicketClosed     TicketStatus = "closed"
)

// TicketPriority is the triage priority of a support ticket.
type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityNormal TicketPriority = "normal"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

// TicketCategory classifies a support ticket.
type TicketCategory string

const (
	CategoryBilling   TicketCategory = "billing"
	CategoryTechnical TicketCategory = "technical"
	CategoryAccount   TicketCategory = "account"
	CategoryOther     TicketCategory = "other"
)

// SenderType distinguishes who wrote a ticket message.
type SenderType string

const (
	SenderUser  SenderType = "user"
	SenderAdmin SenderType = "admin"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePending InvoiceStatus = "pending"
	InvoiceFailed  InvoiceStatus = "failed"
)

// BackupStatus is the state of a server backup.
type BackupStatus string

const (
	BackupCompleted  BackupStatus = "completed"
	BackupInProgress BackupStatus = "in_progress"
	BackupFailed     BackupStatus = "failed"
)

// AdminRole is the role held by an admin registration.
type AdminRole string

const (
	RoleSupport    AdminRole = "support"
	RoleOperator   AdminRole = "operator"
	RoleSuperAdmin AdminRole = "superadmin"
)

// BcryptCost is the work factor used when hashing passwords.
const BcryptCost = 10
