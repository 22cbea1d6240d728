package repository

import (
	"context"

	"rental-order-service/models"

	"gorm.io/gorm"
)

// CartRepository covers the single cart operation this service performs:
// clearing a user's lines when a checkout order commits. Cart CRUD itself
// belongs to the cart feature.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	ClearForUser(ctx context.Context, userID string) error
}

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new instance of GormCartRepository
func NewGormCartRepository(db *gorm.DB) CartRepository {
	return &GormCartRepository{db: db}
}

// WithTx returns a repository bound to the given transaction handle.
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	return &GormCartRepository{db: tx}
}

func (r *GormCartRepository) ClearForUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartLine{}).Error
}
