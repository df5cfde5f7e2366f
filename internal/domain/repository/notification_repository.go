package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"github.com/tyreshoppe/shopdesk-api/pkg/pagination"
)

// NotificationFilterParams holds filters for the notification feed
type NotificationFilterParams struct {
	Pagination *pagination.PaginationParams
	Type       *enum.NotificationType
	UnreadOnly bool
}

// NotificationRepository defines the interface for notification persistence
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Notification, error)
	List(ctx context.Context, userID uuid.UUID, params *NotificationFilterParams) ([]entity.Notification, int64, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}
