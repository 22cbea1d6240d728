package services

import (
	"context"
	"testing"
	"time"

	"rental-order-service/models"
	"rental-order-service/repository"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A second connection would see its own empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Product{}, &models.Category{},
		&models.Order{}, &models.OrderItem{},
		&models.PaymentLog{}, &models.CartLine{},
	))
	return db
}

type captureProducer struct {
	events []models.OrderEvent
}

func (p *captureProducer) PublishOrderEvent(_ context.Context, evt models.OrderEvent) error {
	p.events = append(p.events, evt)
	return nil
}

type captureInvalidator struct {
	users []string
}

func (c *captureInvalidator) Invalidate(_ context.Context, userID string) error {
	c.users = append(c.users, userID)
	return nil
}

type testEnv struct {
	db          *gorm.DB
	orders      *OrderService
	payments    *PaymentService
	avail       *AvailabilityService
	producer    *captureProducer
	invalidator *captureInvalidator
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := newTestDB(t)
	orderRepo := repository.NewGormOrderRepository(db)
	productRepo := repository.NewGormProductRepository(db)
	paymentRepo := repository.NewGormPaymentLogRepository(db)
	cartRepo := repository.NewGormCartRepository(db)
	producer := &captureProducer{}
	invalidator := &captureInvalidator{}
	log := zap.NewNop()

	return &testEnv{
		db:          db,
		orders:      NewOrderService(db, orderRepo, productRepo, paymentRepo, cartRepo, invalidator, producer, log),
		payments:    NewPaymentService(db, orderRepo, paymentRepo, producer, log),
		avail:       NewAvailabilityService(orderRepo, productRepo, log),
		producer:    producer,
		invalidator: invalidator,
	}
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int) *models.Product {
	t.Helper()
	p := &models.Product{ProductName: name, Price: 100, StockQuantity: stock}
	require.NoError(t, db.Create(p).Error)
	return p
}

func placeOrderRequest(productID string, qty int, paid, pending float64) *models.PlaceOrderRequest {
	return &models.PlaceOrderRequest{
		Name:            "Asha Verma",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		ShippingAddress: "14 MG Road",
		UserAddress:     "14 MG Road",
		City:            "Pune",
		Zip:             "411001",
		PaidAmount:      paid,
		PendingPayment:  pending,
		TotalAmount:     paid + pending,
		DeliveredDate:   "2026-06-10",
		PickupDate:      "2026-06-15",
		Products: []models.OrderLineRequest{
			{
				ProductID:    productID,
				Quantity:     qty,
				From:         "cart",
				ProductPrice: 100,
				TotalPrice:   100 * float64(qty),
			},
		},
	}
}

func reloadProduct(t *testing.T, db *gorm.DB, p *models.Product) *models.Product {
	t.Helper()
	var out models.Product
	require.NoError(t, db.First(&out, "id = ?", p.ID).Error)
	return &out
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}
