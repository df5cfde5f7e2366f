// Package catalog is the HTTP client for the remote tyre-platform API,
// the service that owns stock levels, tyre requests, and order
// persistence. The caller's bearer token is an explicit argument on every
// call; the client never reads credentials from ambient state.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
)

// Client talks to the tyre-platform REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchPartnerStock returns the partner (admin-allocated) tyre stock.
func (c *Client) FetchPartnerStock(ctx context.Context, token string) ([]TyreEntry, error) {
	var raw shopStocksResponse
	if err := c.do(ctx, token, http.MethodGet, "/shops/getshopstocks", nil, &raw); err != nil {
		return nil, err
	}

	entries := make([]TyreEntry, 0, len(raw.ShopStocks))
	for _, s := range raw.ShopStocks {
		entries = append(entries, TyreEntry{
			ID:          s.TyreID,
			Brand:       s.TyreDetails.Brand,
			Model:       s.TyreDetails.Model,
			Type:        s.TyreDetails.Type,
			VehicleType: s.TyreDetails.VehicleType,
			Warranty:    s.TyreDetails.Warranty,
			Stock:       s.Sizes,
		})
	}
	return entries, nil
}

// FetchOwnInventory returns the shop's own tyre inventory.
func (c *Client) FetchOwnInventory(ctx context.Context, token string) ([]TyreEntry, error) {
	var entries []TyreEntry
	if err := c.do(ctx, token, http.MethodGet, "/shops/owninventory/getall", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// AddOwnTyre adds a tyre to the shop's own inventory.
func (c *Client) AddOwnTyre(ctx context.Context, token string, input *OwnTyreInput) error {
	return c.do(ctx, token, http.MethodPost, "/shops/owninventory", input, nil)
}

// FinalizeOrder persists a finalized invoice. This is the irreversible
// submission; callers gate it behind their own lock.
func (c *Client) FinalizeOrder(ctx context.Context, token string, order *FinalizeOrderRequest) error {
	return c.do(ctx, token, http.MethodPost, "/shops/owncustomers", order, nil)
}

// ListOrders returns the shop's customer orders.
func (c *Client) ListOrders(ctx context.Context, token string) ([]CustomerOrder, error) {
	var orders []CustomerOrder
	if err := c.do(ctx, token, http.MethodGet, "/shops/getorders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CompleteTyreOrder marks a tyre order as completed.
func (c *Client) CompleteTyreOrder(ctx context.Context, token, orderID string) error {
	body := map[string]string{"orderId": orderID}
	return c.do(ctx, token, http.MethodPost, "/shops/tyres/completeorder", body, nil)
}

// CompleteAppointment marks an appointment-backed order as completed.
func (c *Client) CompleteAppointment(ctx context.Context, token, appointmentID, orderID string) error {
	body := map[string]string{"appointmentid": appointmentID, "orderid": orderID}
	return c.do(ctx, token, http.MethodPost, "/shops/completeorder", body, nil)
}

// CreateTyreRequest submits a request for tyres from the partner.
func (c *Client) CreateTyreRequest(ctx context.Context, token string, input *TyreRequestInput) error {
	return c.do(ctx, token, http.MethodPost, "/shops/tyres/createorder", input, nil)
}

// ListTyreRequests returns all tyre requests with their statuses.
func (c *Client) ListTyreRequests(ctx context.Context, token string) ([]TyreRequest, error) {
	var requests []TyreRequest
	if err := c.do(ctx, token, http.MethodGet, "/shops/requestedtyres-all", nil, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// do runs one authenticated request and decodes the response into out.
func (c *Client) do(ctx context.Context, token, method, path string, body, out interface{}) error {
	if token == "" {
		return apperror.ErrCredentialRequired
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("catalog: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperror.NewUpstreamError(fmt.Sprintf("Failed to reach tyre platform: %v", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperror.NewUpstreamError(fmt.Sprintf("Failed to decode tyre platform response: %v", err))
	}
	return nil
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	var payload struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&payload)

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperror.ErrCredentialRequired
	}
	msg := payload.Message
	if msg == "" {
		msg = fmt.Sprintf("tyre platform returned status %d", resp.StatusCode)
	}
	return apperror.NewUpstreamError(msg)
}
