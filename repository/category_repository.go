package repository

import (
	"context"

	"rental-order-service/models"

	"gorm.io/gorm"
)

// CategoryRepository is the read-only catalog dimension.
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]models.Category, error)
}

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new instance of GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
