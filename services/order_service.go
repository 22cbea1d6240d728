package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rental-order-service/cart"
	"rental-order-service/kafka"
	"rental-order-service/models"
	"rental-order-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// errAborted signals the transaction closure to roll back after a
// ServiceError has already been recorded.
var errAborted = errors.New("transaction aborted")

// OrderService owns order placement and cancellation. Both run as a single
// database transaction: stock checks, stock mutation, the order row, its
// items and the payment log commit together or not at all.
type OrderService struct {
	db        *gorm.DB
	orders    repository.OrderRepository
	products  repository.ProductRepository
	payments  repository.PaymentLogRepository
	carts     repository.CartRepository
	cartCache cart.Invalidator
	producer  kafka.ProducerAPI
	logger    *zap.Logger
}

// NewOrderService creates a new OrderService. cartCache and producer may be
// nil; both are best-effort collaborators.
func NewOrderService(
	db *gorm.DB,
	orders repository.OrderRepository,
	products repository.ProductRepository,
	payments repository.PaymentLogRepository,
	carts repository.CartRepository,
	cartCache cart.Invalidator,
	producer kafka.ProducerAPI,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		db:        db,
		orders:    orders,
		products:  products,
		payments:  payments,
		carts:     carts,
		cartCache: cartCache,
		producer:  producer,
		logger:    logger,
	}
}

// PlaceOrder validates the request, reserves stock and persists the order,
// its line items and the initial payment log entry atomically. When the
// request carries type=checkout the user's cart lines are cleared in the same
// transaction.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req *models.PlaceOrderRequest) (*models.Order, *models.PaymentLog, *ServiceError) {
	if !models.AmountsEqual(req.PaidAmount+req.PendingPayment, req.TotalAmount) {
		return nil, nil, &ServiceError{http.StatusBadRequest, "Payment amounts must equal total amount"}
	}

	deliveredDate, err := time.Parse("2006-01-02", req.DeliveredDate)
	if err != nil {
		return nil, nil, &ServiceError{http.StatusBadRequest, "Invalid delivered_date"}
	}
	var pickupTime *time.Time
	if req.PickupDate != "" {
		t, err := time.Parse("2006-01-02", req.PickupDate)
		if err != nil {
			return nil, nil, &ServiceError{http.StatusBadRequest, "Invalid pickup_date"}
		}
		if t.Before(deliveredDate) {
			return nil, nil, &ServiceError{http.StatusBadRequest, "pickup_date must be on or after delivered_date"}
		}
		pickupTime = &t
	}

	lines := make([]models.OrderItem, 0, len(req.Products))
	for _, line := range req.Products {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, nil, &ServiceError{http.StatusBadRequest, fmt.Sprintf("Invalid product id: %s", line.ProductID)}
		}
		lines = append(lines, models.OrderItem{
			ProductID:    productID,
			Quantity:     line.Quantity,
			From:         line.From,
			ProductPrice: line.ProductPrice,
			TotalPrice:   line.TotalPrice,
		})
	}

	status := models.OrderStatusPending
	pending := req.PendingPayment
	if models.IsZeroAmount(pending) {
		status = models.OrderStatusPaid
		pending = 0
	}

	order := &models.Order{
		UserID:          userID,
		UserName:        req.Name,
		UserEmail:       req.Email,
		UserPhone:       req.Phone,
		UserAddress:     req.UserAddress,
		ShippingAddress: req.ShippingAddress,
		UserCity:        req.City,
		UserZip:         req.Zip,
		BillingNumber:   req.BillingNumber,
		PaidPayment:     req.PaidAmount,
		TotalAmount:     req.TotalAmount,
		PendingPayment:  pending,
		Status:          status,
		DeliveredDate:   deliveredDate,
		PickupTime:      pickupTime,
		Items:           lines,
	}
	paymentLog := &models.PaymentLog{
		UserID:        userID,
		PaymentAmount: req.PaidAmount,
	}

	var svcErr *ServiceError
	abort := func(code int, msg string) error {
		svcErr = &ServiceError{code, msg}
		return errAborted
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		products := s.products.WithTx(tx)
		payments := s.payments.WithTx(tx)

		for _, line := range order.Items {
			product, err := products.FindByID(ctx, line.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return abort(http.StatusNotFound, fmt.Sprintf("Product not found: %s", line.ProductID))
			}
			if err != nil {
				return err
			}
			if product.StockQuantity < line.Quantity {
				return abort(http.StatusConflict, fmt.Sprintf(
					"Insufficient stock for product ID %s. Available: %d, Requested: %d",
					line.ProductID, product.StockQuantity, line.Quantity))
			}
		}

		if err := orders.Create(ctx, order); err != nil {
			return err
		}

		for _, line := range order.Items {
			err := products.DecrementStock(ctx, line.ProductID, line.Quantity)
			if errors.Is(err, repository.ErrNotFound) {
				return abort(http.StatusNotFound, fmt.Sprintf("Product not found: %s", line.ProductID))
			}
			if errors.Is(err, repository.ErrInsufficientStock) {
				// A concurrent order won the stock between our check and the
				// decrement; re-read for an accurate available count.
				available := 0
				if product, ferr := products.FindByID(ctx, line.ProductID); ferr == nil {
					available = product.StockQuantity
				}
				return abort(http.StatusConflict, fmt.Sprintf(
					"Insufficient stock for product ID %s. Available: %d, Requested: %d",
					line.ProductID, available, line.Quantity))
			}
			if err != nil {
				return err
			}
		}

		paymentLog.OrderID = order.ID
		if err := payments.Create(ctx, paymentLog); err != nil {
			return err
		}

		if req.Type == "checkout" {
			if err := s.carts.WithTx(tx).ClearForUser(ctx, userID); err != nil {
				return err
			}
		}
		return nil
	})

	if txErr != nil {
		if svcErr != nil {
			return nil, nil, svcErr
		}
		s.logger.Error("Order placement failed", zap.String("user_id", userID), zap.Error(txErr))
		return nil, nil, &ServiceError{http.StatusInternalServerError, "Failed to create order"}
	}

	if req.Type == "checkout" && s.cartCache != nil {
		if err := s.cartCache.Invalidate(ctx, userID); err != nil {
			s.logger.Warn("Cart cache invalidation failed", zap.String("user_id", userID), zap.Error(err))
		}
	}
	s.publishEvent(ctx, models.OrderEvent{
		Type:      models.EventOrderPlaced,
		OrderID:   order.ID.String(),
		UserID:    userID,
		Status:    order.Status,
		Amount:    order.TotalAmount,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.TotalAmount))

	return order, paymentLog, nil
}

// CancelOrder restores each line's stock and marks the order canceled, in one
// transaction. Restoration is best-effort per line: a product that has since
// been removed from the catalog is skipped silently, the status change is
// not. A second cancel of the same order is rejected so stock is never
// restored twice.
func (s *OrderService) CancelOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	var canceled *models.Order

	var svcErr *ServiceError
	abort := func(code int, msg string) error {
		svcErr = &ServiceError{code, msg}
		return errAborted
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		products := s.products.WithTx(tx)

		order, err := orders.FindByID(ctx, orderID)
		if errors.Is(err, repository.ErrNotFound) {
			return abort(http.StatusNotFound, "Order not found.")
		}
		if err != nil {
			return err
		}
		if order.Status == models.OrderStatusCanceled {
			return abort(http.StatusConflict, "Order is already canceled.")
		}

		for _, line := range order.Items {
			restored, err := products.IncrementStock(ctx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !restored {
				s.logger.Warn("Product missing during stock restoration",
					zap.String("order_id", orderID.String()),
					zap.String("product_id", line.ProductID.String()))
			}
		}

		if err := orders.UpdateStatus(ctx, orderID, models.OrderStatusCanceled); err != nil {
			return err
		}
		order.Status = models.OrderStatusCanceled
		canceled = order
		return nil
	})

	if txErr != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		s.logger.Error("Order cancellation failed", zap.String("order_id", orderID.String()), zap.Error(txErr))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to cancel order"}
	}

	s.publishEvent(ctx, models.OrderEvent{
		Type:      models.EventOrderCanceled,
		OrderID:   orderID.String(),
		UserID:    canceled.UserID,
		Status:    canceled.Status,
		Amount:    canceled.TotalAmount,
		Timestamp: time.Now().UTC(),
	})
	s.logger.Info("Order canceled", zap.String("order_id", orderID.String()))
	return canceled, nil
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*models.Order, *ServiceError) {
	order, err := s.orders.FindByID(ctx, orderID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ServiceError{http.StatusNotFound, "Order not found."}
	}
	if err != nil {
		s.logger.Error("Failed to fetch order", zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch order"}
	}
	return order, nil
}

// GetUserOrders retrieves all orders belonging to the given user.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to fetch user orders", zap.String("user_id", userID), zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch orders"}
	}
	return orders, nil
}

// GetAllOrders retrieves every order (staff dashboard feed).
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, *ServiceError) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch orders", zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch orders"}
	}
	return orders, nil
}

func (s *OrderService) publishEvent(ctx context.Context, evt models.OrderEvent) {
	if s.producer == nil {
		return
	}
	// Best-effort; the producer logs its own failures.
	_ = s.producer.PublishOrderEvent(ctx, evt)
}
