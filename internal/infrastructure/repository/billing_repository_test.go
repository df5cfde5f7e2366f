package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	domainRepo "github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.BillingSession{},
		&entity.BillLine{},
		&entity.Notification{},
		&entity.IdempotencyKey{},
		&entity.PasswordResetToken{},
	))
	return db
}

func seedSession(t *testing.T, repo domainRepo.BillingRepository, userID uuid.UUID) *entity.BillingSession {
	t.Helper()
	session := &entity.BillingSession{
		UserID:     userID,
		Shop:       entity.DefaultShopProfile(),
		GSTPercent: "18",
	}
	require.NoError(t, repo.Create(context.Background(), session))
	return session
}

func TestBillingRepositoryLinesKeepInsertionOrder(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))
	ctx := context.Background()
	session := seedSession(t, repo, uuid.New())

	for i, desc := range []string{"first", "second", "third"} {
		require.NoError(t, repo.AddLine(ctx, &entity.BillLine{
			SessionID:   session.ID,
			Position:    i,
			Description: desc,
			Quantity:    "1",
			UnitPrice:   "100",
		}))
	}

	got, err := repo.GetWithLines(ctx, session.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Lines, 3)
	require.Equal(t, "first", got.Lines[0].Description)
	require.Equal(t, "second", got.Lines[1].Description)
	require.Equal(t, "third", got.Lines[2].Description)
}

func TestBillingRepositoryUpdateStatusIf(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))
	ctx := context.Background()
	session := seedSession(t, repo, uuid.New())

	ok, err := repo.UpdateStatusIf(ctx, session.ID, enum.BillingStatusDraft, enum.BillingStatusPreviewOpen)
	require.NoError(t, err)
	require.True(t, ok)

	// The session is no longer a draft, so the same move loses.
	ok, err = repo.UpdateStatusIf(ctx, session.ID, enum.BillingStatusDraft, enum.BillingStatusPreviewOpen)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.GetWithLines(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, enum.BillingStatusPreviewOpen, got.Status)
}

func TestBillingRepositoryGetActiveForUserSkipsCompleted(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	done := seedSession(t, repo, userID)
	done.Status = enum.BillingStatusCompleted
	require.NoError(t, repo.Update(ctx, done))

	active, err := repo.GetActiveForUser(ctx, userID)
	require.NoError(t, err)
	require.Nil(t, active)

	open := seedSession(t, repo, userID)
	active, err = repo.GetActiveForUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, open.ID, active.ID)
}

func TestBillingRepositoryClearLines(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))
	ctx := context.Background()
	session := seedSession(t, repo, uuid.New())

	require.NoError(t, repo.AddLine(ctx, &entity.BillLine{SessionID: session.ID, Position: 0, Quantity: "1", UnitPrice: "10"}))
	require.NoError(t, repo.AddLine(ctx, &entity.BillLine{SessionID: session.ID, Position: 1, Quantity: "2", UnitPrice: "20"}))
	require.NoError(t, repo.ClearLines(ctx, session.ID))

	got, err := repo.GetWithLines(ctx, session.ID)
	require.NoError(t, err)
	require.Empty(t, got.Lines)
}

func TestBillingRepositoryListFilters(t *testing.T) {
	repo := NewBillingRepository(newTestDB(t))
	ctx := context.Background()
	userID := uuid.New()

	a := seedSession(t, repo, userID)
	a.Customer.Name = "Ramesh Kumar"
	a.InvoiceNo = "INV-1001"
	require.NoError(t, repo.Update(ctx, a))

	b := seedSession(t, repo, userID)
	b.Customer.Name = "Suresh Gupta"
	b.Status = enum.BillingStatusCompleted
	require.NoError(t, repo.Update(ctx, b))

	params := &domainRepo.BillingFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Search:     "ramesh",
	}
	sessions, total, err := repo.List(ctx, userID, params)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, sessions, 1)
	require.Equal(t, "INV-1001", sessions[0].InvoiceNo)

	completed := enum.BillingStatusCompleted
	params = &domainRepo.BillingFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
		Status:     &completed,
	}
	sessions, total, err = repo.List(ctx, userID, params)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "Suresh Gupta", sessions[0].Customer.Name)
}
