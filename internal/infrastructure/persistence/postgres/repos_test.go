package postgres

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/internal/domain/repository"
	"github.com/skystack/backoffice/pkg/constants"
	apperrors "github.com/skystack/backoffice/pkg/errors"
	"github.com/skystack/backoffice/pkg/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named in-memory database keeps every connection in the pool on the
	// same schema while isolating tests from each other. The production
	// gorm configuration is used so the error translation the repositories
	// rely on is exercised here too.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})
	return db
}

// A racing registration can slip past the application-level existence check;
// the unique index is the backstop, and its violation must surface as a
// conflict rather than a bare driver error. That mapping only works when the
// connection config translates driver errors into gorm sentinels.
func TestConnectionConfigMapsDuplicateKeys(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewNop())
	ctx := context.Background()

	seedUser(t, repo, "raced@example.com")
	err := repo.Create(ctx, &models.User{
		Email:        "raced@example.com",
		PasswordHash: "x",
		Name:         "Raced",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, http.StatusConflict, apperrors.HTTPStatus(err))
}

func seedUser(t *testing.T, repo repository.UserRepository, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		PasswordHash: "$2a$10$hashhashhashhashhashha",
		Name:         "Test User",
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewNop())
	ctx := context.Background()

	t.Run("create assigns id and defaults", func(t *testing.T) {
		user := seedUser(t, repo, "create@example.com")
		assert.NotEmpty(t, user.ID)

		got, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "create@example.com", got.Email)
		assert.Equal(t, constants.SubscriptionTrial, got.SubscriptionStatus)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		seedUser(t, repo, "dup@example.com")
		err := repo.Create(ctx, &models.User{
			Email:        "dup@example.com",
			PasswordHash: "x",
			Name:         "Other",
		})
		require.Error(t, err)
		assert.True(t, apperrors.IsConflict(err))
	})

	t.Run("find by email", func(t *testing.T) {
		seedUser(t, repo, "byemail@example.com")

		got, err := repo.FindByEmail(ctx, "byemail@example.com")
		require.NoError(t, err)
		assert.Equal(t, "byemail@example.com", got.Email)

		_, err = repo.FindByEmail(ctx, "nobody@example.com")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("exists by email", func(t *testing.T) {
		seedUser(t, repo, "exists@example.com")

		ok, err := repo.ExistsByEmail(ctx, "exists@example.com")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.ExistsByEmail(ctx, "missing@example.com")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("update fields", func(t *testing.T) {
		user := seedUser(t, repo, "fields@example.com")

		err := repo.UpdateFields(ctx, user.ID, map[string]interface{}{
			"subscription_status": constants.SubscriptionSuspended,
		})
		require.NoError(t, err)

		got, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.SubscriptionSuspended, got.SubscriptionStatus)
	})

	t.Run("update fields on missing user", func(t *testing.T) {
		err := repo.UpdateFields(ctx, "no-such-id", map[string]interface{}{"name": "x"})
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("custom models round trip", func(t *testing.T) {
		user := seedUser(t, repo, "models@example.com")
		user.CustomModels = models.CustomModelMap{
			"anthropic": {APIKey: "sk-test", Model: "claude-sonnet"},
		}
		require.NoError(t, repo.Update(ctx, user))

		got, err := repo.FindByID(ctx, user.ID)
		require.NoError(t, err)
		require.Contains(t, got.CustomModels, "anthropic")
		assert.Equal(t, "claude-sonnet", got.CustomModels["anthropic"].Model)
	})

	t.Run("delete", func(t *testing.T) {
		user := seedUser(t, repo, "delete@example.com")
		require.NoError(t, repo.Delete(ctx, user.ID))

		_, err := repo.FindByID(ctx, user.ID)
		assert.True(t, apperrors.IsNotFound(err))

		err = repo.Delete(ctx, user.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestUserRepositoryList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, logger.NewNop())
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		user := &models.User{
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: "x",
			Name:         fmt.Sprintf("User %d", i),
			Plan:         "starter",
		}
		if i%2 == 0 {
			user.SubscriptionStatus = constants.SubscriptionActive
		}
		require.NoError(t, repo.Create(ctx, user))
	}
	special := &models.User{
		Email:              "alice@example.com",
		PasswordHash:       "x",
		Name:               "Alice Wonder",
		Plan:               "pro",
		SubscriptionStatus: constants.SubscriptionActive,
	}
	require.NoError(t, repo.Create(ctx, special))

	t.Run("no filter returns all with total", func(t *testing.T) {
		users, total, err := repo.List(ctx, repository.UserFilter{}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Len(t, users, 6)
	})

	t.Run("pagination caps page size", func(t *testing.T) {
		users, total, err := repo.List(ctx, repository.UserFilter{}, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)
		assert.Len(t, users, 2)

		rest, _, err := repo.List(ctx, repository.UserFilter{}, 10, 4)
		require.NoError(t, err)
		assert.Len(t, rest, 2)
	})

	t.Run("search matches email and name", func(t *testing.T) {
		users, total, err := repo.List(ctx, repository.UserFilter{Search: "alice"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "alice@example.com", users[0].Email)

		users, _, err = repo.List(ctx, repository.UserFilter{Search: "Wonder"}, 10, 0)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("status and plan filters", func(t *testing.T) {
		_, total, err := repo.List(ctx, repository.UserFilter{Status: constants.SubscriptionActive}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(4), total)

		_, total, err = repo.List(ctx, repository.UserFilter{Plan: "pro"}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("counts", func(t *testing.T) {
		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(6), total)

		byPlan, err := repo.CountByPlan(ctx, "starter")
		require.NoError(t, err)
		assert.Equal(t, int64(5), byPlan)
	})

	t.Run("count active since", func(t *testing.T) {
		user, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		user.TouchLastActive()
		require.NoError(t, repo.Update(ctx, user))

		n, err := repo.CountActiveSince(ctx, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("count by server status", func(t *testing.T) {
		user, err := repo.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		user.ServerStatus = constants.ServerRunning
		require.NoError(t, repo.Update(ctx, user))

		n, err := repo.CountByServerStatus(ctx, constants.ServerRunning, constants.SubscriptionActive)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = repo.CountByServerStatus(ctx, constants.ServerStopped, constants.SubscriptionActive)
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}

func TestPlanRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlanRepository(db, logger.NewNop())
	ctx := context.Background()

	plan := &models.SubscriptionPlan{
		Name:     "Pro",
		Price:    49.90,
		PlanType: constants.PlanMonthly,
		ServerSpecs: models.ServerSpecs{
			CPU: 4, RAM: "16GB", Storage: "200GB", Bandwidth: "unlimited",
		},
		Features: []string{"priority-support", "daily-backups"},
	}
	require.NoError(t, repo.Create(ctx, plan))

	cheap := &models.SubscriptionPlan{Name: "Starter", Price: 9.90}
	require.NoError(t, repo.Create(ctx, cheap))

	archived := &models.SubscriptionPlan{Name: "Legacy", Price: 5, Status: constants.PlanArchived}
	require.NoError(t, repo.Create(ctx, archived))

	t.Run("find preserves serialized fields", func(t *testing.T) {
		got, err := repo.FindByID(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 4, got.ServerSpecs.CPU)
		assert.Equal(t, []string{"priority-support", "daily-backups"}, got.Features)
	})

	t.Run("list filters by status and orders by price", func(t *testing.T) {
		plans, err := repo.List(ctx, constants.PlanActive)
		require.NoError(t, err)
		require.Len(t, plans, 2)
		assert.Equal(t, "Starter", plans[0].Name)
		assert.Equal(t, "Pro", plans[1].Name)

		all, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("update and delete", func(t *testing.T) {
		plan.Price = 59.90
		require.NoError(t, repo.Update(ctx, plan))

		got, err := repo.FindByID(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 59.90, got.Price)

		require.NoError(t, repo.Delete(ctx, cheap.ID))
		_, err = repo.FindByID(ctx, cheap.ID)
		assert.True(t, apperrors.IsNotFound(err))
	})
}

func TestTicketRepository(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, logger.NewNop())
	repo := NewTicketRepository(db, logger.NewNop())
	ctx := context.Background()

	owner := seedUser(t, users, "owner@example.com")
	other := seedUser(t, users, "other@example.com")

	ticket := &models.SupportTicket{
		UserID:  owner.ID,
		Subject: "Server unreachable",
		Message: "My server stopped responding this morning.",
	}
	require.NoError(t, repo.Create(ctx, ticket))

	t.Run("ownership is enforced on lookup", func(t *testing.T) {
		got, err := repo.FindByIDForUser(ctx, ticket.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "Server unreachable", got.Subject)

		_, err = repo.FindByIDForUser(ctx, ticket.ID, other.ID)
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("messages are threaded oldest first", func(t *testing.T) {
		first := &models.TicketMessage{
			TicketID:   ticket.ID,
			SenderID:   owner.ID,
			SenderType: constants.SenderUser,
			Message:    "Any update?",
		}
		require.NoError(t, repo.AddMessage(ctx, first))

		second := &models.TicketMessage{
			TicketID:   ticket.ID,
			SenderID:   "admin-1",
			SenderType: constants.SenderAdmin,
			Message:    "Restarting it now.",
		}
		// sqlite timestamps have second precision, force distinct ordering
		second.CreatedAt = first.CreatedAt.Add(2 * time.Second)
		require.NoError(t, repo.AddMessage(ctx, second))

		got, err := repo.FindByIDForUser(ctx, ticket.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "Any update?", got.Messages[0].Message)
		assert.Equal(t, constants.SenderAdmin, got.Messages[1].SenderType)
	})

	t.Run("open tickets exclude closed", func(t *testing.T) {
		closed := &models.SupportTicket{
			UserID:  owner.ID,
			Subject: "Old issue",
			Message: "Resolved long ago.",
			Status:  constants.TicketClosed,
		}
		require.NoError(t, repo.Create(ctx, closed))

		open, err := repo.ListOpenByUser(ctx, owner.ID, 10)
		require.NoError(t, err)
		require.Len(t, open, 1)
		assert.Equal(t, ticket.ID, open[0].ID)
	})

	t.Run("admin list filters and preloads user", func(t *testing.T) {
		tickets, total, err := repo.List(ctx, repository.TicketFilter{Status: constants.TicketOpen}, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		require.NotNil(t, tickets[0].User)
		assert.Equal(t, "owner@example.com", tickets[0].User.Email)
	})

	t.Run("update status", func(t *testing.T) {
		ticket.Status = constants.TicketInProgress
		ticket.AssignedTo = "admin-1"
		require.NoError(t, repo.Update(ctx, ticket))

		got, err := repo.FindByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, constants.TicketInProgress, got.Status)
		assert.Equal(t, "admin-1", got.AssignedTo)
	})

	t.Run("clearing the assignee persists", func(t *testing.T) {
		ticket.AssignedTo = "admin-1"
		require.NoError(t, repo.Update(ctx, ticket))

		ticket.AssignedTo = ""
		require.NoError(t, repo.Update(ctx, ticket))

		got, err := repo.FindByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Empty(t, got.AssignedTo)
	})
}

func TestInvoiceRepository(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, logger.NewNop())
	repo := NewInvoiceRepository(db, logger.NewNop())
	ctx := context.Background()

	user := seedUser(t, users, "billing@example.com")

	mk := func(amount float64, status constants.InvoiceStatus, age time.Duration) {
		inv := &models.Invoice{UserID: user.ID, Amount: amount, Status: status}
		require.NoError(t, repo.Create(ctx, inv))
		if age > 0 {
			err := db.Model(&models.Invoice{}).Where("id = ?", inv.ID).
				Update("created_at", time.Now().Add(-age)).Error
			require.NoError(t, err)
		}
	}

	mk(29.90, constants.InvoicePaid, 0)
	mk(29.90, constants.InvoicePaid, 10*24*time.Hour)
	mk(29.90, constants.InvoicePaid, 60*24*time.Hour)
	mk(99.00, constants.InvoicePending, 0)
	mk(15.00, constants.InvoiceFailed, 0)

	t.Run("list by user paginates", func(t *testing.T) {
		invoices, total, err := repo.ListByUser(ctx, user.ID, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		assert.Len(t, invoices, 2)
	})

	t.Run("recent respects limit", func(t *testing.T) {
		invoices, err := repo.RecentByUser(ctx, user.ID, 3)
		require.NoError(t, err)
		assert.Len(t, invoices, 3)
	})

	t.Run("sum counts only paid invoices in window", func(t *testing.T) {
		sum, err := repo.SumPaidSince(ctx, time.Now().Add(-30*24*time.Hour))
		require.NoError(t, err)
		assert.InDelta(t, 59.80, sum, 0.001)
	})

	t.Run("sum is zero with no matches", func(t *testing.T) {
		sum, err := repo.SumPaidSince(ctx, time.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.Zero(t, sum)
	})
}

func TestBackupRepository(t *testing.T) {
	db := setupTestDB(t)
	users := NewUserRepository(db, logger.NewNop())
	repo := NewBackupRepository(db, logger.NewNop())
	ctx := context.Background()

	user := seedUser(t, users, "backups@example.com")

	for i := 0; i < 4; i++ {
		backup := &models.Backup{
			UserID:     user.ID,
			SnapshotID: fmt.Sprintf("snap-%d", i),
			SizeMB:     int64(1024 * (i + 1)),
		}
		require.NoError(t, repo.Create(ctx, backup))
	}

	backups, total, err := repo.ListByUser(ctx, user.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, backups, 4)
	assert.Equal(t, constants.BackupCompleted, backups[0].Status)

	recent, err := repo.RecentByUser(ctx, user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, recent, 2)
}

func TestAdminRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepository(db, logger.NewNop())
	ctx := context.Background()

	admin := &models.Admin{
		UserID: "user-123",
		Email:  "ops@example.com",
		Name:   "Ops Admin",
		Role:   constants.RoleOperator,
	}
	require.NoError(t, repo.Create(ctx, admin))

	t.Run("find by subject", func(t *testing.T) {
		got, err := repo.FindBySubject(ctx, "user-123")
		require.NoError(t, err)
		assert.Equal(t, "ops@example.com", got.Email)
		assert.Equal(t, constants.RoleOperator, got.Role)
	})

	t.Run("missing registration is not found", func(t *testing.T) {
		_, err := repo.FindBySubject(ctx, "user-999")
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("principal carries registration fields", func(t *testing.T) {
		got, err := repo.FindBySubject(ctx, "user-123")
		require.NoError(t, err)
		principal := got.Principal()
		assert.Equal(t, got.ID, principal.ID)
		assert.Equal(t, "Ops Admin", principal.Name)
	})
}
