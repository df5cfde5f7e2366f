package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	infraRepo "github.com/tyreshoppe/shopdesk-api/internal/infrastructure/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const partnerStockBody = `{"shopStocks":[
	{"tyreId":"t1","tyreDetails":{"brand":"MRF","model":"ZVTS","type":"Tubeless","vehicleType":"Car","warranty":"5 years"},
	 "sizes":[{"size":"145/80 R12","quantity":8,"price":3200}]},
	{"tyreId":"t2","tyreDetails":{"brand":"CEAT","model":"SecuraDrive","type":"Tubeless","vehicleType":"Car","warranty":"3 years"},
	 "sizes":[{"size":"185/65 R15","quantity":4,"price":4100}]}
]}`

func newCatalogFixture(t *testing.T) *CatalogService {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shops/getshopstocks":
			w.Write([]byte(partnerStockBody))
		case "/shops/owninventory/getall":
			w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.Notification{}))

	return NewCatalogService(catalog.NewClient(server.URL, 5*time.Second), infraRepo.NewNotificationRepository(db))
}

func TestFetchStockFiltersBySearch(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	result, err := svc.FetchStock(ctx, "token-1", enum.StockSourcePartner, "")
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)

	result, err = svc.FetchStock(ctx, "token-1", enum.StockSourcePartner, "mrf")
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	require.Equal(t, "MRF", result.Entries[0].Brand)

	// Size text matches too.
	result, err = svc.FetchStock(ctx, "token-1", enum.StockSourcePartner, "185/65")
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	require.Equal(t, "CEAT", result.Entries[0].Brand)
}

func TestFetchStockSequencesDetectStaleResults(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	first, err := svc.FetchStock(ctx, "token-1", enum.StockSourcePartner, "")
	require.NoError(t, err)
	require.False(t, svc.IsStale(first))

	second, err := svc.FetchStock(ctx, "token-1", enum.StockSourceOwn, "")
	require.NoError(t, err)

	// The earlier result was overtaken; only the newest may render.
	require.True(t, svc.IsStale(first))
	require.False(t, svc.IsStale(second))
	require.Greater(t, second.Seq, first.Seq)
	require.Equal(t, second.Seq, svc.LatestSeq())
}

func TestFetchStockRejectsUnknownSource(t *testing.T) {
	svc := newCatalogFixture(t)

	_, err := svc.FetchStock(context.Background(), "token-1", enum.StockSource("warehouse"), "")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.Equal(t, http.StatusBadRequest, appErr.Code)
}

func TestAddOwnTyreValidation(t *testing.T) {
	svc := newCatalogFixture(t)
	ctx := context.Background()

	err := svc.AddOwnTyre(ctx, "token-1", uuid.New(), &catalog.OwnTyreInput{Model: "ZVTS"})
	require.Error(t, err)

	err = svc.AddOwnTyre(ctx, "token-1", uuid.New(), &catalog.OwnTyreInput{Brand: "MRF", Model: "ZVTS"})
	require.Error(t, err)
}
