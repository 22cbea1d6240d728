package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"rental-order-service/models"
	"rental-order-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService answers "how many units of each product are free over a
// date window". The answer is advisory: nothing is reserved by a check, only
// a committed order holds stock.
type AvailabilityService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(orders repository.OrderRepository, products repository.ProductRepository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{orders: orders, products: products, logger: logger}
}

// Check computes per-product availability over the requested window. The
// available quantity is the product's stock on hand minus every unit already
// committed to a non-canceled order whose rental window overlaps the
// requested one. Results are keyed by product ID.
func (s *AvailabilityService) Check(ctx context.Context, req *models.AvailabilityRequest) (map[string]models.AvailabilityResult, *ServiceError) {
	from, err := time.Parse("2006-01-02", req.DeliveredDate)
	if err != nil {
		return nil, &ServiceError{http.StatusBadRequest, "Invalid delivered_date"}
	}
	to := from
	if req.PickupDate != "" {
		t, err := time.Parse("2006-01-02", req.PickupDate)
		if err != nil {
			return nil, &ServiceError{http.StatusBadRequest, "Invalid pickup_date"}
		}
		if t.Before(from) {
			return nil, &ServiceError{http.StatusBadRequest, "pickup_date must be on or after delivered_date"}
		}
		to = t
	}

	productIDs := make([]uuid.UUID, 0, len(req.Products))
	stocks := make(map[uuid.UUID]int, len(req.Products))
	for _, line := range req.Products {
		id, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, &ServiceError{http.StatusBadRequest, fmt.Sprintf("Invalid product id: %s", line.ProductID)}
		}
		product, err := s.products.FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &ServiceError{http.StatusNotFound, fmt.Sprintf("Product not found: %s", line.ProductID)}
		}
		if err != nil {
			s.logger.Error("Failed to load product for availability check",
				zap.String("product_id", line.ProductID), zap.Error(err))
			return nil, &ServiceError{http.StatusInternalServerError, "Failed to check availability"}
		}
		productIDs = append(productIDs, id)
		stocks[id] = product.StockQuantity
	}

	reserved, err := s.orders.ReservedQuantities(ctx, productIDs, from, to)
	if err != nil {
		s.logger.Error("Failed to compute reserved quantities", zap.Error(err))
		return nil, &ServiceError{http.StatusInternalServerError, "Failed to check availability"}
	}

	results := make(map[string]models.AvailabilityResult, len(req.Products))
	for _, line := range req.Products {
		id, _ := uuid.Parse(line.ProductID)
		available := stocks[id] - reserved[id]
		if available < 0 {
			available = 0
		}
		if available >= line.Quantity {
			results[line.ProductID] = models.AvailabilityResult{
				Available:         true,
				AvailableQuantity: available,
				Message:           fmt.Sprintf("Available: %d in stock", available),
			}
		} else {
			results[line.ProductID] = models.AvailabilityResult{
				Available:         false,
				AvailableQuantity: available,
				Message:           fmt.Sprintf("Not enough stock. Only %d available", available),
			}
		}
	}
	return results, nil
}
