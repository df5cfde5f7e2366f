package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
)

func TestFetchPartnerStockNormalizesShape(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/shops/getshopstocks", r.URL.Path)
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{"shopStocks":[{
			"tyreId":"t-1",
			"tyreDetails":{"brand":"MRF","model":"ZLX","type":"Radial","vehicleType":"Car","warranty":"5 years"},
			"sizes":[{"size":"185/65R15","quantity":4,"price":3500}]
		}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	entries, err := client.FetchPartnerStock(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "t-1", entries[0].ID)
	require.Equal(t, "MRF", entries[0].Brand)

	row, ok := entries[0].SizeFor("185/65R15")
	require.True(t, ok)
	require.Equal(t, 4, row.Quantity)
	require.Equal(t, 3500.0, row.Price)
}

func TestFinalizeOrderPayloadShape(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/shops/owncustomers", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.FinalizeOrder(context.Background(), "tok", &FinalizeOrderRequest{
		CustomerName:     "Ravi Kumar",
		AddressProofType: "Aadhar Card",
		Address:          "Chennai",
		PhoneNumber:      "9876543210",
		OrderHistory: OrderHistory{
			Items: []OrderHistoryItem{{
				TyreID:               "t-1",
				InvoiceURL:           "https://example.com/invoice/inv1234.pdf",
				Size:                 "185/65R15",
				Quantity:             2,
				CustomerPurchaseType: "Retail",
			}},
			TotalAmount: 300,
			OrderDate:   "2024-06-01T10:00:00Z",
		},
	})
	require.NoError(t, err)

	require.Equal(t, "Ravi Kumar", got["customerName"])
	history, ok := got["orderHistory"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, 300.0, history["totalAmount"])
	items, ok := history["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	require.Equal(t, "t-1", item["tyreId"])
	require.Equal(t, "https://example.com/invoice/inv1234.pdf", item["invoiceUrl"])
}

func TestMissingTokenSkipsCall(t *testing.T) {
	t.Parallel()

	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.FetchOwnInventory(context.Background(), "")
	require.ErrorIs(t, err, apperror.ErrCredentialRequired)
	require.False(t, called, "a call without a credential must never hit the wire")
}

func TestUpstreamErrorLeavesMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"stock ledger unavailable"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	err := client.CompleteTyreOrder(context.Background(), "tok", "o-1")
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	require.Equal(t, http.StatusBadGateway, appErr.Code)
	require.Equal(t, "stock ledger unavailable", appErr.Message)
}
