package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product holds the free-standing stock for a rental item. StockQuantity is
// uncommitted stock only; quantities held by active orders are tracked on the
// orders themselves and subtracted at query time (see OrderRepository.ReservedQuantities).
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ProductName   string         `gorm:"size:255;not null" json:"productName"`
	CompanyName   string         `gorm:"size:255" json:"companyName"`
	Category      string         `gorm:"size:100;index" json:"category"`
	OwnedImported string         `gorm:"size:20" json:"owned_imported"`
	Price         float64        `gorm:"not null" json:"price"`
	StockQuantity int            `gorm:"not null;default:0" json:"stock_quantity"`
	Description   string         `json:"description"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Category is a read-only catalog dimension maintained by inventory management.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
