package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
	"github.com/tyreshoppe/shopdesk-api/pkg/pagination"
)

// NotificationService handles the dashboard notification feed
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, params *repository.NotificationFilterParams) (*pagination.PaginatedResult[entity.Notification], error) {
	notifications, total, err := s.notificationRepo.List(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(notifications, pag), nil
}

// Get returns one notification owned by the user
func (s *NotificationService) Get(ctx context.Context, userID, notificationID uuid.UUID) (*entity.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if notification == nil {
		return nil, apperror.NewNotFoundError("Notification")
	}
	if notification.UserID != userID {
		return nil, apperror.ErrForbidden
	}
	return notification, nil
}

// MarkRead marks one notification as read
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		return err
	}
	if notification == nil {
		return apperror.NewNotFoundError("Notification")
	}
	if notification.UserID != userID {
		return apperror.ErrForbidden
	}
	return s.notificationRepo.MarkRead(ctx, notificationID)
}
