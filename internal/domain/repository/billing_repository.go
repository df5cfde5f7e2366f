package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"github.com/tyreshoppe/shopdesk-api/pkg/pagination"
)

// BillingFilterParams holds filters for listing billing sessions
type BillingFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.BillingStatus
	Search     string
}

// BillingRepository defines the interface for billing session persistence
type BillingRepository interface {
	Create(ctx context.Context, session *entity.BillingSession) error
	// GetWithLines loads a session with its lines in print order.
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.BillingSession, error)
	// GetActiveForUser returns the user's open (non-completed) session, if any.
	GetActiveForUser(ctx context.Context, userID uuid.UUID) (*entity.BillingSession, error)
	Update(ctx context.Context, session *entity.BillingSession) error
	// UpdateStatusIf atomically moves a session from one status to another.
	// It reports false when the session was not in the expected status,
	// which is how a concurrent double-finalize loses the race.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.BillingStatus) (bool, error)
	List(ctx context.Context, userID uuid.UUID, params *BillingFilterParams) ([]entity.BillingSession, int64, error)
	// ListLocked returns finalized and completed sessions with lines,
	// oldest first, optionally bounded by finalize date.
	ListLocked(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]entity.BillingSession, error)

	AddLine(ctx context.Context, line *entity.BillLine) error
	UpdateLine(ctx context.Context, line *entity.BillLine) error
	RemoveLine(ctx context.Context, id uuid.UUID) error
	// ClearLines deletes every line of a session (cart reset).
	ClearLines(ctx context.Context, sessionID uuid.UUID) error
}
