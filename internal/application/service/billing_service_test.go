package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	domainRepo "github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	infraRepo "github.com/tyreshoppe/shopdesk-api/internal/infrastructure/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
	"github.com/tyreshoppe/shopdesk-api/pkg/pagination"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type billingFixture struct {
	svc              *BillingService
	billingRepo      domainRepo.BillingRepository
	notificationRepo domainRepo.NotificationRepository
	finalizeCalls    *atomic.Int64
	lastPayload      *catalog.FinalizeOrderRequest
	server           *httptest.Server
}

func newBillingFixture(t *testing.T, upstreamStatus int) *billingFixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.BillingSession{}, &entity.BillLine{}, &entity.Notification{},
	))

	f := &billingFixture{
		billingRepo:      infraRepo.NewBillingRepository(db),
		notificationRepo: infraRepo.NewNotificationRepository(db),
		finalizeCalls:    &atomic.Int64{},
	}

	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shops/owncustomers":
			f.finalizeCalls.Add(1)
			var payload catalog.FinalizeOrderRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			f.lastPayload = &payload
			w.WriteHeader(upstreamStatus)
			w.Write([]byte(`{"message":"stock unavailable"}`))
		case "/shops/getshopstocks":
			w.Write([]byte(`{"shopStocks":[
				{"tyreId":"t1","tyreDetails":{"brand":"MRF","model":"ZVTS"},
				 "sizes":[{"size":"145/80 R12","quantity":8,"price":3200},
				          {"size":"155/70 R13","quantity":0,"price":3400}]}
			]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(f.server.Close)

	client := catalog.NewClient(f.server.URL, 5*time.Second)
	f.svc = NewBillingService(f.billingRepo, f.notificationRepo, client, nil)
	return f
}

func seedPreviewedSession(t *testing.T, f *billingFixture, userID uuid.UUID) *entity.BillingSession {
	t.Helper()
	ctx := context.Background()

	session, err := f.svc.ActiveSession(ctx, userID)
	require.NoError(t, err)

	tyreID := "tyre-42"
	_, err = f.svc.AddLine(ctx, userID, session.ID, &LineInput{
		Description:  "MRF ZVTS 145/80 R12",
		Quantity:     "2",
		UnitPrice:    "3200",
		SourceTyreID: &tyreID,
		Size:         "145/80 R12",
	})
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, userID, session.ID, &LineInput{
		Description: "Wheel alignment",
		Quantity:    "1",
		UnitPrice:   "500",
	})
	require.NoError(t, err)

	session, err = f.svc.OpenPreview(ctx, userID, session.ID)
	require.NoError(t, err)
	require.Equal(t, enum.BillingStatusPreviewOpen, session.Status)
	require.NotEmpty(t, session.InvoiceNo)
	return session
}

func TestFinalizeSubmitsSinglePayloadAndLocks(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()
	session := seedPreviewedSession(t, f, userID)

	finalized, err := f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.NoError(t, err)
	require.Equal(t, enum.BillingStatusFinalized, finalized.Status)
	require.NotNil(t, finalized.FinalizedAt)

	require.EqualValues(t, 1, f.finalizeCalls.Load())
	require.Len(t, f.lastPayload.OrderHistory.Items, 2)
	require.Equal(t, "tyre-42", f.lastPayload.OrderHistory.Items[0].TyreID)
	require.Equal(t, "", f.lastPayload.OrderHistory.Items[1].TyreID)
	require.InDelta(t, 6900.0, f.lastPayload.OrderHistory.TotalAmount, 0.001)

	// Second finalize must not fire a second order.
	_, err = f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.ErrorIs(t, err, apperror.ErrSessionLocked)
	require.EqualValues(t, 1, f.finalizeCalls.Load())
}

func TestFinalizeRequiresPreview(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()

	session, err := f.svc.ActiveSession(ctx, userID)
	require.NoError(t, err)
	_, err = f.svc.AddLine(ctx, userID, session.ID, &LineInput{Quantity: "1", UnitPrice: "100"})
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.ErrorIs(t, err, apperror.ErrInvalidTransition)
	require.EqualValues(t, 0, f.finalizeCalls.Load())
}

func TestFinalizeWithoutTokenSkipsUpstream(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()
	session := seedPreviewedSession(t, f, userID)

	_, err := f.svc.Finalize(ctx, userID, session.ID, "")
	require.ErrorIs(t, err, apperror.ErrCredentialRequired)
	require.EqualValues(t, 0, f.finalizeCalls.Load())

	// Draft is untouched and can still be finalized later.
	got, err := f.svc.GetSession(ctx, userID, session.ID)
	require.NoError(t, err)
	require.Equal(t, enum.BillingStatusPreviewOpen, got.Status)
}

func TestFinalizeUpstreamFailureUnlocks(t *testing.T) {
	f := newBillingFixture(t, http.StatusServiceUnavailable)
	ctx := context.Background()
	userID := uuid.New()
	session := seedPreviewedSession(t, f, userID)

	_, err := f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.Equal(t, http.StatusBadGateway, appErr.Code)

	got, err := f.svc.GetSession(ctx, userID, session.ID)
	require.NoError(t, err)
	require.Equal(t, enum.BillingStatusPreviewOpen, got.Status)

	// Retry succeeds once upstream recovers.
	f.server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.finalizeCalls.Add(1)
		w.WriteHeader(http.StatusOK)
	})
	finalized, err := f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.NoError(t, err)
	require.Equal(t, enum.BillingStatusFinalized, finalized.Status)
}

func TestEditsRejectedAfterFinalize(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()
	session := seedPreviewedSession(t, f, userID)

	_, err := f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.NoError(t, err)

	_, err = f.svc.AddLine(ctx, userID, session.ID, &LineInput{Quantity: "1", UnitPrice: "10"})
	require.ErrorIs(t, err, apperror.ErrSessionLocked)

	gst := "12"
	_, err = f.svc.UpdateSession(ctx, userID, session.ID, &UpdateSessionInput{GSTPercent: &gst})
	require.ErrorIs(t, err, apperror.ErrSessionLocked)

	err = f.svc.ClearCart(ctx, userID, session.ID)
	require.ErrorIs(t, err, apperror.ErrSessionLocked)
}

func TestCompleteStartsFreshDraft(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()
	session := seedPreviewedSession(t, f, userID)

	_, err := f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.NoError(t, err)
	require.NoError(t, f.svc.Complete(ctx, userID, session.ID))

	// Completing twice is rejected.
	err = f.svc.Complete(ctx, userID, session.ID)
	require.ErrorIs(t, err, apperror.ErrInvalidTransition)

	fresh, err := f.svc.ActiveSession(ctx, userID)
	require.NoError(t, err)
	require.NotEqual(t, session.ID, fresh.ID)
	require.Equal(t, enum.BillingStatusDraft, fresh.Status)
	require.Equal(t, entity.DefaultShopProfile(), fresh.Shop)
	require.Empty(t, fresh.Lines)
}

func TestPreviewCloseReturnsToDraft(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()
	session := seedPreviewedSession(t, f, userID)

	require.NoError(t, f.svc.ClosePreview(ctx, userID, session.ID))

	got, err := f.svc.GetSession(ctx, userID, session.ID)
	require.NoError(t, err)
	require.Equal(t, enum.BillingStatusDraft, got.Status)

	// Invoice number survives the round trip.
	require.Equal(t, session.InvoiceNo, got.InvoiceNo)
}

func TestFinalizeRecordsNotification(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()
	session := seedPreviewedSession(t, f, userID)

	_, err := f.svc.Finalize(ctx, userID, session.ID, "token-1")
	require.NoError(t, err)

	params := &domainRepo.NotificationFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 10},
	}
	notifications, total, err := f.notificationRepo.List(ctx, userID, params)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, enum.NotificationTypeBilling, notifications[0].Type)
}

func TestAddCatalogLineSkipsOutOfStockSize(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()

	session, err := f.svc.ActiveSession(ctx, userID)
	require.NoError(t, err)

	line, err := f.svc.AddCatalogLine(ctx, userID, session.ID, "token-1", enum.StockSourcePartner, "t1", "145/80 R12")
	require.NoError(t, err)
	require.NotNil(t, line)
	require.Equal(t, "MRF ZVTS", line.Description)
	require.Equal(t, "1", line.Quantity)
	require.Equal(t, "3200", line.UnitPrice)
	require.Equal(t, "145/80 R12", line.Size)

	// Zero quantity for the chosen size adds nothing.
	line, err = f.svc.AddCatalogLine(ctx, userID, session.ID, "token-1", enum.StockSourcePartner, "t1", "155/70 R13")
	require.NoError(t, err)
	require.Nil(t, line)

	got, err := f.svc.GetSession(ctx, userID, session.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)

	// Unknown tyre or size is reported, not silently ignored.
	_, err = f.svc.AddCatalogLine(ctx, userID, session.ID, "token-1", enum.StockSourcePartner, "t9", "145/80 R12")
	require.Error(t, err)
	_, err = f.svc.AddCatalogLine(ctx, userID, session.ID, "", enum.StockSourcePartner, "t1", "145/80 R12")
	require.ErrorIs(t, err, apperror.ErrCredentialRequired)
}

func TestAddAfterRemoveKeepsPositionsUnique(t *testing.T) {
	f := newBillingFixture(t, http.StatusOK)
	ctx := context.Background()
	userID := uuid.New()

	session, err := f.svc.ActiveSession(ctx, userID)
	require.NoError(t, err)

	var lines []*entity.BillLine
	for _, desc := range []string{"first", "second", "third"} {
		line, err := f.svc.AddLine(ctx, userID, session.ID, &LineInput{
			Description: desc, Quantity: "1", UnitPrice: "100",
		})
		require.NoError(t, err)
		lines = append(lines, line)
	}

	require.NoError(t, f.svc.RemoveLine(ctx, userID, session.ID, lines[0].ID))

	fourth, err := f.svc.AddLine(ctx, userID, session.ID, &LineInput{
		Description: "fourth", Quantity: "1", UnitPrice: "100",
	})
	require.NoError(t, err)

	got, err := f.svc.GetSession(ctx, userID, session.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 3)

	// No position is ever reused, so the read order stays the order
	// rows were added in.
	seen := map[int]bool{}
	for _, line := range got.Lines {
		require.False(t, seen[line.Position], "position %d assigned twice", line.Position)
		seen[line.Position] = true
	}
	require.Equal(t, []string{"second", "third", "fourth"}, []string{
		got.Lines[0].Description, got.Lines[1].Description, got.Lines[2].Description,
	})
	require.Greater(t, fourth.Position, lines[2].Position)
}
