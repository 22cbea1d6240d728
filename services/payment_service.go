package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"rental-order-service/kafka"
	"rental-order-service/models"
	"rental-order-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentService applies follow-up payments to an order's pending balance.
type PaymentService struct {
	db       *gorm.DB
	orders   repository.OrderRepository
	payments repository.PaymentLogRepository
	producer kafka.ProducerAPI
	logger   *zap.Logger
}

// NewPaymentService creates a new PaymentService. producer may be nil.
func NewPaymentService(
	db *gorm.DB,
	orders repository.OrderRepository,
	payments repository.PaymentLogRepository,
	producer kafka.ProducerAPI,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{db: db, orders: orders, payments: payments, producer: producer, logger: logger}
}

// ApplyPayment moves amount from the order's pending balance to its paid
// balance, appends a payment log entry, and flips the order to paid when the
// pending balance reaches zero. The order must belong to the calling user.
func (s *PaymentService) ApplyPayment(ctx context.Context, userID string, req *models.PayPendingRequest) (*models.Order, *ServiceError) {
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return nil, &ServiceError{http.StatusBadRequest, "Invalid order_id"}
	}

	var updated *models.Order

	var svcErr *ServiceError
	abort := func(code int, msg string) error {
		svcErr = &ServiceError{code, msg}
		return errAborted
	}

	txErr := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		payments := s.payments.WithTx(tx)

		order, err := orders.FindByIDAndUserID(ctx, orderID, userID)
		if errors.Is(err, repository.ErrNotFound) {
			return abort(http.StatusNotFound, "Order not found or unauthorized access.")
		}
		if err != nil {
			return err
		}
		if order.Status == models.OrderStatusCanceled {
			return abort(http.StatusConflict, "Order is canceled; no further payments accepted.")
		}
		if req.PaymentAmount > order.PendingPayment+models.AmountTolerance {
			return abort(http.StatusBadRequest, "Payment exceeds pending amount.")
		}

		rows, err := orders.AddPayment(ctx, orderID, req.PaymentAmount)
		if err != nil {
			return err
		}
		if rows == 0 {
			// A concurrent payment drained the pending balance first.
			return abort(http.StatusBadRequest, "Payment exceeds pending amount.")
		}

		if err := payments.Create(ctx, &models.PaymentLog{
			OrderID:       orderID,
			UserID:        userID,
			PaymentAmount: req.PaymentAmount,
		}); err != nil {
			return err
		}

		order, err = orders.FindByIDAndUserID(ctx, orderID, userID)
		if err != nil {
			return err
		}
		if models.IsZeroAmount(order.PendingPayment) && order.Status != models.OrderStatusPaid {
			if err := orders.SettlePaid(ctx, orderID); err != nil {
				return err
			}
			order.PendingPayment = 0
			order.Status = models.OrderStatusPaid
		}
		updated = order
		return nil
	})

	if txErr != nil {
		if svcErr != nil {
			return nil, svcErr
		}
		s.logger.Error("Payment application failed",
			zap.String("order_id", req.OrderID), zap.String("user_id", userID), zap.Error(txErr))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to apply payment"}
	}

	if s.producer != nil {
		_ = s.producer.PublishOrderEvent(ctx, models.OrderEvent{
			Type:      models.EventPaymentReceived,
			OrderID:   orderID.String(),
			UserID:    userID,
			Status:    updated.Status,
			Amount:    req.PaymentAmount,
			Timestamp: time.Now().UTC(),
		})
	}
	s.logger.Info("Payment applied",
		zap.String("order_id", orderID.String()),
		zap.Float64("amount", req.PaymentAmount),
		zap.String("status", updated.Status))
	return updated, nil
}

// PaymentHistory returns the append-only payment log for one of the user's
// orders, oldest first.
func (s *PaymentService) PaymentHistory(ctx context.Context, userID string, orderID uuid.UUID) ([]models.PaymentLog, *ServiceError) {
	if _, err := s.orders.FindByIDAndUserID(ctx, orderID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{http.StatusNotFound, "Order not found or unauthorized access."}
		}
		s.logger.Error("Failed to fetch order for payment history",
			zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch payment history"}
	}
	logs, err := s.payments.FindByOrderID(ctx, orderID)
	if err != nil {
		s.logger.Error("Failed to fetch payment history",
			zap.String("order_id", orderID.String()), zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to fetch payment history"}
	}
	return logs, nil
}
