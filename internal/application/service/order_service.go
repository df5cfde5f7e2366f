package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"github.com/tyreshoppe/shopdesk-api/pkg/apperror"
	"github.com/tyreshoppe/shopdesk-api/pkg/catalog"
)

// OrderService proxies customer orders and tyre requests held by the
// upstream platform.
type OrderService struct {
	client           *catalog.Client
	notificationRepo repository.NotificationRepository
}

// NewOrderService creates a new order service
func NewOrderService(client *catalog.Client, notificationRepo repository.NotificationRepository) *OrderService {
	return &OrderService{
		client:           client,
		notificationRepo: notificationRepo,
	}
}

// OrdersView splits customer orders the way the dashboard shows them:
// new orders still awaiting fulfilment and present (completed) ones.
type OrdersView struct {
	New     []catalog.CustomerOrder `json:"new"`
	Present []catalog.CustomerOrder `json:"present"`
}

// ListCustomerOrders returns the shop's customer orders from the platform
func (s *OrderService) ListCustomerOrders(ctx context.Context, token string) (*OrdersView, error) {
	orders, err := s.client.ListOrders(ctx, token)
	if err != nil {
		return nil, err
	}

	view := &OrdersView{
		New:     []catalog.CustomerOrder{},
		Present: []catalog.CustomerOrder{},
	}
	for _, order := range orders {
		if strings.EqualFold(order.OrderStatus, "completed") {
			view.Present = append(view.Present, order)
		} else {
			view.New = append(view.New, order)
		}
	}
	return view, nil
}

// CompleteTyreOrder marks one tyre order delivered and records a
// notification for the feed.
func (s *OrderService) CompleteTyreOrder(ctx context.Context, token string, userID uuid.UUID, orderID string) error {
	if orderID == "" {
		return apperror.NewBadRequestError("Order ID is required")
	}

	if err := s.client.CompleteTyreOrder(ctx, token, orderID); err != nil {
		return err
	}

	_ = s.notificationRepo.Create(ctx, &entity.Notification{
		UserID:  userID,
		Type:    enum.NotificationTypeTyreOrder,
		Message: fmt.Sprintf("Tyre order %s completed", orderID),
	})
	return nil
}

// CompleteAppointment marks a fitment appointment done together with
// its order.
func (s *OrderService) CompleteAppointment(ctx context.Context, token string, userID uuid.UUID, appointmentID, orderID string) error {
	if appointmentID == "" || orderID == "" {
		return apperror.NewBadRequestError("Appointment ID and order ID are required")
	}

	if err := s.client.CompleteAppointment(ctx, token, appointmentID, orderID); err != nil {
		return err
	}

	_ = s.notificationRepo.Create(ctx, &entity.Notification{
		UserID:  userID,
		Type:    enum.NotificationTypeServiceRequest,
		Message: fmt.Sprintf("Appointment %s completed", appointmentID),
	})
	return nil
}

// CreateTyreRequest submits a restock request to the partner
func (s *OrderService) CreateTyreRequest(ctx context.Context, token string, input *catalog.TyreRequestInput) error {
	if len(input.Specification) == 0 {
		return apperror.NewBadRequestError("At least one tyre specification is required")
	}
	for _, spec := range input.Specification {
		if spec.Quantity <= 0 {
			return apperror.NewBadRequestError("Requested quantity must be positive")
		}
	}
	return s.client.CreateTyreRequest(ctx, token, input)
}

// ListTyreRequests returns submitted restock requests with status
func (s *OrderService) ListTyreRequests(ctx context.Context, token string) ([]catalog.TyreRequest, error) {
	return s.client.ListTyreRequests(ctx, token)
}
