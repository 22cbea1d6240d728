package models

import "time"

// Order event types published to Kafka after a successful commit.
const (
	EventOrderPlaced     = "order.placed"
	EventOrderCanceled   = "order.canceled"
	EventPaymentReceived = "payment.received"
)

// OrderEvent is the best-effort notification emitted after order mutations.
// Publishing failures are logged and never fail the originating request.
type OrderEvent struct {
	Type      string    `json:"type"`
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
