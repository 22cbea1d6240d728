package repository

import (
	"context"
	"errors"
	"time"

	"rental-order-service/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	AddPayment(ctx context.Context, id uuid.UUID, amount float64) (int64, error)
	SettlePaid(ctx context.Context, id uuid.UUID) error
	ReservedQuantities(ctx context.Context, productIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new instance of GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: tx}
}

// Create persists the order together with its line items.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByIDAndUserID retrieves an order only when it belongs to the given
// user. A foreign order and a missing order are indistinguishable to the
// caller by design.
func (r *GormOrderRepository) FindByIDAndUserID(ctx context.Context, id uuid.UUID, userID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddPayment moves amount from pending to paid in one conditional statement.
// The `pending_payment >= amount` guard serializes concurrent payments on the
// same order: a payment that would overdraw the pending balance affects zero
// rows, and the relative arithmetic means no update can be lost.
func (r *GormOrderRepository) AddPayment(ctx context.Context, id uuid.UUID, amount float64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND pending_payment >= ?", id, amount).
		Updates(map[string]interface{}{
			"paid_payment":    gorm.Expr("paid_payment + ?", amount),
			"pending_payment": gorm.Expr("pending_payment - ?", amount),
		})
	return res.RowsAffected, res.Error
}

// SettlePaid clamps a tolerance-level pending residue to exactly zero and
// flips the order to paid.
func (r *GormOrderRepository) SettlePaid(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"pending_payment": 0,
			"status":          models.OrderStatusPaid,
		}).Error
}

// ReservedQuantities sums line-item quantities per product across all
// non-canceled orders whose rental window overlaps [from, to]. An order with
// no pickup time occupies its delivery date as a single-day window. Overlap
// holds when the order's delivery date falls inside the query window, its
// pickup date falls inside the query window, or its window spans the query
// window entirely.
func (r *GormOrderRepository) ReservedQuantities(ctx context.Context, productIDs []uuid.UUID, from, to time.Time) (map[uuid.UUID]int, error) {
	type reservedRow struct {
		ProductID uuid.UUID
		Total     int
	}
	var rows []reservedRow

	err := r.db.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.product_id AS product_id, SUM(oi.quantity) AS total").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.deleted_at IS NULL AND o.status <> ?", models.OrderStatusCanceled).
		Where("oi.product_id IN ?", productIDs).
		Where(`(o.delivered_date BETWEEN @from AND @to)
			OR (COALESCE(o.pickup_time, o.delivered_date) BETWEEN @from AND @to)
			OR (o.delivered_date <= @from AND COALESCE(o.pickup_time, o.delivered_date) >= @to)`,
			map[string]interface{}{"from": from, "to": to}).
		Group("oi.product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	reserved := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		reserved[row.ProductID] = row.Total
	}
	return reserved, nil
}
