package service

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
)

// CatalogService proxies the upstream stock catalog. Each fetch gets a
// monotonically increasing sequence number; when fetches race (operator
// flips the partner/own toggle quickly), only the response carrying the
// newest sequence should be displayed.
type CatalogService struct {
	client           *catalog.Client
	notificationRepo repository.NotificationRepository
	fetchSeq         atomic.Uint64
}

// NewCatalogService creates a new catalog service
func NewCatalogService(client *catalog.Client, notificationRepo repository.NotificationRepository) *CatalogService {
	return &CatalogService{
		client:           client,
		notificationRepo: notificationRepo,
	}
}

// StockResult is one fetch outcome tagged with its sequence number.
type StockResult struct {
	Seq     uint64              `json:"seq"`
	Source  enum.StockSource    `json:"source"`
	Entries []catalog.TyreEntry `json:"entries"`
}

// FetchStock pulls the requested stock source and applies the search
// filter. The caller compares Seq against LatestSeq to discard results
// that were overtaken by a newer fetch.
func (s *CatalogService) FetchStock(ctx context.Context, token string, source enum.StockSource, search string) (*StockResult, error) {
	if !source.Valid() {
		return nil, apperror.NewBadRequestError("Unknown stock source")
	}

	seq := s.fetchSeq.Add(1)

	var entries []catalog.TyreEntry
	var err error
	if source == enum.StockSourcePartner {
		entries, err = s.client.FetchPartnerStock(ctx, token)
	} else {
		entries, err = s.client.FetchOwnInventory(ctx, token)
	}
	if err != nil {
		return nil, err
	}

	return &StockResult{
		Seq:     seq,
		Source:  source,
		Entries: filterEntries(entries, search),
	}, nil
}

// LatestSeq returns the sequence number of the newest fetch started.
func (s *CatalogService) LatestSeq() uint64 {
	return s.fetchSeq.Load()
}

// IsStale reports whether a result was overtaken by a later fetch.
func (s *CatalogService) IsStale(result *StockResult) bool {
	return result.Seq < s.fetchSeq.Load()
}

// filterEntries keeps entries whose brand, model, type, vehicle type
// or any size matches the search text, case-insensitively. Empty
// search keeps everything.
func filterEntries(entries []catalog.TyreEntry, search string) []catalog.TyreEntry {
	if search == "" {
		return entries
	}

	needle := strings.ToLower(search)
	filtered := make([]catalog.TyreEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Brand), needle) ||
			strings.Contains(strings.ToLower(e.Model), needle) ||
			strings.Contains(strings.ToLower(e.Type), needle) ||
			strings.Contains(strings.ToLower(e.VehicleType), needle) {
			filtered = append(filtered, e)
			continue
		}
		for _, size := range e.Stock {
			if strings.Contains(strings.ToLower(size.Size), needle) {
				filtered = append(filtered, e)
				break
			}
		}
	}
	return filtered
}

// AddOwnTyre adds a tyre to the shop's own inventory and records a
// notification for the feed.
func (s *CatalogService) AddOwnTyre(ctx context.Context, token string, userID uuid.UUID, input *catalog.OwnTyreInput) error {
	if input.Brand == "" || input.Model == "" {
		return apperror.NewBadRequestError("Brand and model are required")
	}
	if len(input.Stock) == 0 {
		return apperror.NewBadRequestError("At least one size with stock is required")
	}

	if err := s.client.AddOwnTyre(ctx, token, input); err != nil {
		return err
	}

	_ = s.notificationRepo.Create(ctx, &entity.Notification{
		UserID:  userID,
		Type:    enum.NotificationTypeInventory,
		Message: fmt.Sprintf("%s %s added to own inventory", input.Brand, input.Model),
	})
	return nil
}
