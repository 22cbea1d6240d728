package repository

import (
	"context"

	"rental-order-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentLogRepository is the append-only payment ledger. There is no update
// or delete on purpose.
type PaymentLogRepository interface {
	WithTx(tx *gorm.DB) PaymentLogRepository
	Create(ctx context.Context, log *models.PaymentLog) error
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.PaymentLog, error)
}

// GormPaymentLogRepository implements PaymentLogRepository using GORM
type GormPaymentLogRepository struct {
	db *gorm.DB
}

// NewGormPaymentLogRepository creates a new instance of GormPaymentLogRepository
func NewGormPaymentLogRepository(db *gorm.DB) PaymentLogRepository {
	return &GormPaymentLogRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *GormPaymentLogRepository) WithTx(tx *gorm.DB) PaymentLogRepository {
	return &GormPaymentLogRepository{db: tx}
}

func (r *GormPaymentLogRepository) Create(ctx context.Context, log *models.PaymentLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *GormPaymentLogRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.PaymentLog, error) {
	var logs []models.PaymentLog
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
