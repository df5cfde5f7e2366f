package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/entity"
	"github.com/tyreshoppe/shopdesk-api/internal/domain/enum"
	domainRepo "github.com/tyreshoppe/shopdesk-api/internal/domain/repository"
	"gorm.io/gorm"
)

type billingRepository struct {
	db *gorm.DB
}

// NewBillingRepository creates a new billing session repository
func NewBillingRepository(db *gorm.DB) domainRepo.BillingRepository {
	return &billingRepository{db: db}
}

func (r *billingRepository) Create(ctx context.Context, session *entity.BillingSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *billingRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.BillingSession, error) {
	var session entity.BillingSession
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *billingRepository) GetActiveForUser(ctx context.Context, userID uuid.UUID) (*entity.BillingSession, error) {
	var session entity.BillingSession
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ? AND status <> ?", userID, enum.BillingStatusCompleted).
		Order("created_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *billingRepository) Update(ctx context.Context, session *entity.BillingSession) error {
	return r.db.WithContext(ctx).Save(session).Error
}

func (r *billingRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to enum.BillingStatus) (bool, error) {
	res := r.db.WithContext(ctx).Model(&entity.BillingSession{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *billingRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.BillingFilterParams) ([]entity.BillingSession, int64, error) {
	var sessions []entity.BillingSession
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BillingSession{}).
		Where("user_id = ?", userID)

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Search != "" {
		needle := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(customer_name) LIKE ? OR LOWER(invoice_no) LIKE ?", needle, needle)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&sessions).Error

	return sessions, total, err
}

func (r *billingRepository) ListLocked(ctx context.Context, userID uuid.UUID, from, to *time.Time) ([]entity.BillingSession, error) {
	var sessions []entity.BillingSession

	query := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("user_id = ? AND status IN ?", userID,
			[]enum.BillingStatus{enum.BillingStatusFinalized, enum.BillingStatusCompleted})

	if from != nil {
		query = query.Where("finalized_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("finalized_at < ?", *to)
	}

	err := query.Order("finalized_at ASC").Find(&sessions).Error
	return sessions, err
}

func (r *billingRepository) AddLine(ctx context.Context, line *entity.BillLine) error {
	return r.db.WithContext(ctx).Create(line).Error
}

func (r *billingRepository) UpdateLine(ctx context.Context, line *entity.BillLine) error {
	return r.db.WithContext(ctx).Save(line).Error
}

func (r *billingRepository) RemoveLine(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.BillLine{}, "id = ?", id).Error
}

func (r *billingRepository) ClearLines(ctx context.Context, sessionID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.BillLine{}, "session_id = ?", sessionID).Error
}
