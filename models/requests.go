package models

// OrderLineRequest is one requested product line inside PlaceOrderRequest.
type OrderLineRequest struct {
	ProductID    string  `json:"product_id" binding:"required,uuid"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	From         string  `json:"From" binding:"required,max=255"`
	ProductPrice float64 `json:"product_price" binding:"gte=0"`
	TotalPrice   float64 `json:"total_price" binding:"gte=0"`
}

// PlaceOrderRequest is the payload for POST /api/order. Amount fields allow
// zero (a fully pending or fully paid order), so they carry only gte checks;
// the paid + pending == total cross-check happens in the service.
type PlaceOrderRequest struct {
	Name            string             `json:"name" binding:"required,max=255"`
	Email           string             `json:"email" binding:"required,email,max=255"`
	Phone           string             `json:"phone" binding:"required,phone10"`
	ShippingAddress string             `json:"shippingAddress" binding:"required,max=500"`
	UserAddress     string             `json:"userAddress" binding:"required,max=500"`
	City            string             `json:"city" binding:"required,max=100"`
	Zip             string             `json:"zip" binding:"required,zip6"`
	BillingNumber   string             `json:"billing_number" binding:"omitempty,max=50"`
	PaidAmount      float64            `json:"paid_amount" binding:"gte=0"`
	TotalAmount     float64            `json:"total_amount" binding:"gte=0"`
	PendingPayment  float64            `json:"pending_payment" binding:"gte=0"`
	Products        []OrderLineRequest `json:"products" binding:"required,min=1,dive"`
	DeliveredDate   string             `json:"delivered_date" binding:"required,datetime=2006-01-02"`
	PickupDate      string             `json:"pickup_date" binding:"omitempty,datetime=2006-01-02"`
	Type            string             `json:"type" binding:"omitempty,oneof=checkout"`
}

// AvailabilityLine is one product + quantity to check.
type AvailabilityLine struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// AvailabilityRequest is the payload for POST /api/check-availability.
// PickupDate is optional; when absent the delivery date is treated as a
// single-day window.
type AvailabilityRequest struct {
	Products      []AvailabilityLine `json:"products" binding:"required,min=1,dive"`
	DeliveredDate string             `json:"delivered_date" binding:"required,datetime=2006-01-02"`
	PickupDate    string             `json:"pickup_date" binding:"omitempty,datetime=2006-01-02"`
}

// AvailabilityResult is the per-product answer to an availability check.
// Advisory only: nothing is reserved by a check, and the result may be stale
// by the time an order commits.
type AvailabilityResult struct {
	Available         bool   `json:"available"`
	AvailableQuantity int    `json:"available_quantity"`
	Message           string `json:"message"`
}

// PayPendingRequest is the payload for POST /api/PayPendingPayment.
type PayPendingRequest struct {
	OrderID       string  `json:"order_id" binding:"required,uuid"`
	PaymentAmount float64 `json:"payment_amount" binding:"gte=0"`
}
