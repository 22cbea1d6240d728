package services

import (
	"context"
	"net/http"
	"testing"

	"rental-order-service/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_DecrementsStockAndLogsPayment(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 10)

	req := placeOrderRequest(product.ID.String(), 3, 100, 200)
	order, paymentLog, svcErr := env.orders.PlaceOrder(context.Background(), "user-1", req)
	require.Nil(t, svcErr)
	require.NotNil(t, order)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 7, reloadProduct(t, env.db, product).StockQuantity)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 3, order.Items[0].Quantity)

	require.NotNil(t, paymentLog)
	assert.Equal(t, order.ID, paymentLog.OrderID)
	assert.Equal(t, 100.0, paymentLog.PaymentAmount)

	var logCount int64
	require.NoError(t, env.db.Model(&models.PaymentLog{}).Where("order_id = ?", order.ID).Count(&logCount).Error)
	assert.Equal(t, int64(1), logCount)

	require.Len(t, env.producer.events, 1)
	assert.Equal(t, models.EventOrderPlaced, env.producer.events[0].Type)
}

func TestPlaceOrder_NoPendingBalanceMeansPaid(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 5)

	order, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(product.ID.String(), 1, 100, 0))
	require.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
	assert.Equal(t, 0.0, order.PendingPayment)
}

func TestPlaceOrder_RejectsMismatchedAmounts(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 5)

	req := placeOrderRequest(product.ID.String(), 1, 100, 200)
	req.TotalAmount = 250

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1", req)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "Payment amounts must equal total amount", svcErr.Message)
	assert.Equal(t, 5, reloadProduct(t, env.db, product).StockQuantity)
}

func TestPlaceOrder_ToleratesRoundingResidue(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 5)

	req := placeOrderRequest(product.ID.String(), 1, 0.1, 0.2)
	req.TotalAmount = 0.3 // 0.1 + 0.2 != 0.3 in float64

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1", req)
	assert.Nil(t, svcErr)
}

func TestPlaceOrder_InsufficientStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 2)

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(product.ID.String(), 5, 100, 0))
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Contains(t, svcErr.Message, "Insufficient stock for product ID")
	assert.Contains(t, svcErr.Message, "Available: 2, Requested: 5")

	assert.Equal(t, 2, reloadProduct(t, env.db, product).StockQuantity)
	var orderCount int64
	require.NoError(t, env.db.Model(&models.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(0), orderCount)
	assert.Empty(t, env.producer.events)
}

func TestPlaceOrder_OneBadLineRollsBackAllLines(t *testing.T) {
	env := newTestEnv(t)
	chairs := seedProduct(t, env.db, "Banquet Chair", 10)
	canopies := seedProduct(t, env.db, "Canopy Tent", 6)
	tables := seedProduct(t, env.db, "Round Table", 1)

	req := placeOrderRequest(chairs.ID.String(), 4, 100, 0)
	req.Products = append(req.Products,
		models.OrderLineRequest{ProductID: canopies.ID.String(), Quantity: 2, From: "cart", ProductPrice: 100, TotalPrice: 200},
		models.OrderLineRequest{ProductID: tables.ID.String(), Quantity: 3, From: "cart", ProductPrice: 100, TotalPrice: 300},
	)

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1", req)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)

	assert.Equal(t, 10, reloadProduct(t, env.db, chairs).StockQuantity)
	assert.Equal(t, 6, reloadProduct(t, env.db, canopies).StockQuantity)
	assert.Equal(t, 1, reloadProduct(t, env.db, tables).StockQuantity)
}

func TestPlaceOrder_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(uuid.NewString(), 1, 100, 0))
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Contains(t, svcErr.Message, "Product not found")
}

func TestPlaceOrder_PickupBeforeDeliveryRejected(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 5)

	req := placeOrderRequest(product.ID.String(), 1, 100, 0)
	req.DeliveredDate = "2026-06-15"
	req.PickupDate = "2026-06-10"

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1", req)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestPlaceOrder_CheckoutClearsCart(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 5)
	require.NoError(t, env.db.Create(&models.CartLine{UserID: "user-1", ProductID: product.ID, Quantity: 2}).Error)
	require.NoError(t, env.db.Create(&models.CartLine{UserID: "user-2", ProductID: product.ID, Quantity: 1}).Error)

	req := placeOrderRequest(product.ID.String(), 2, 100, 0)
	req.Type = "checkout"

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1", req)
	require.Nil(t, svcErr)

	var mine, theirs int64
	require.NoError(t, env.db.Model(&models.CartLine{}).Where("user_id = ?", "user-1").Count(&mine).Error)
	require.NoError(t, env.db.Model(&models.CartLine{}).Where("user_id = ?", "user-2").Count(&theirs).Error)
	assert.Equal(t, int64(0), mine)
	assert.Equal(t, int64(1), theirs)
	assert.Equal(t, []string{"user-1"}, env.invalidator.users)
}

func TestPlaceOrder_NonCheckoutLeavesCartAlone(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 5)
	require.NoError(t, env.db.Create(&models.CartLine{UserID: "user-1", ProductID: product.ID, Quantity: 2}).Error)

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(product.ID.String(), 1, 100, 0))
	require.Nil(t, svcErr)

	var count int64
	require.NoError(t, env.db.Model(&models.CartLine{}).Where("user_id = ?", "user-1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Empty(t, env.invalidator.users)
}

func TestCancelOrder_RestoresStock(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 10)

	order, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(product.ID.String(), 4, 100, 0))
	require.Nil(t, svcErr)
	require.Equal(t, 6, reloadProduct(t, env.db, product).StockQuantity)

	canceled, svcErr := env.orders.CancelOrder(context.Background(), order.ID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCanceled, canceled.Status)
	assert.Equal(t, 10, reloadProduct(t, env.db, product).StockQuantity)

	require.Len(t, env.producer.events, 2)
	assert.Equal(t, models.EventOrderCanceled, env.producer.events[1].Type)
}

func TestCancelOrder_TwiceDoesNotRestoreTwice(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 10)

	order, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(product.ID.String(), 4, 100, 0))
	require.Nil(t, svcErr)

	_, svcErr = env.orders.CancelOrder(context.Background(), order.ID)
	require.Nil(t, svcErr)

	_, svcErr = env.orders.CancelOrder(context.Background(), order.ID)
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, 10, reloadProduct(t, env.db, product).StockQuantity)
}

func TestCancelOrder_SkipsRemovedProduct(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 10)

	order, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(product.ID.String(), 4, 100, 0))
	require.Nil(t, svcErr)

	require.NoError(t, env.db.Delete(&models.Product{}, "id = ?", product.ID).Error)

	canceled, svcErr := env.orders.CancelOrder(context.Background(), order.ID)
	require.Nil(t, svcErr)
	assert.Equal(t, models.OrderStatusCanceled, canceled.Status)
}

func TestCancelOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, svcErr := env.orders.CancelOrder(context.Background(), uuid.New())
	require.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestGetUserOrders_ScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	product := seedProduct(t, env.db, "Banquet Chair", 10)

	_, _, svcErr := env.orders.PlaceOrder(context.Background(), "user-1",
		placeOrderRequest(product.ID.String(), 1, 100, 0))
	require.Nil(t, svcErr)
	_, _, svcErr = env.orders.PlaceOrder(context.Background(), "user-2",
		placeOrderRequest(product.ID.String(), 1, 100, 0))
	require.Nil(t, svcErr)

	mine, svcErr2 := env.orders.GetUserOrders(context.Background(), "user-1")
	require.Nil(t, svcErr2)
	require.Len(t, mine, 1)
	assert.Equal(t, "user-1", mine[0].UserID)

	all, svcErr2 := env.orders.GetAllOrders(context.Background())
	require.Nil(t, svcErr2)
	assert.Len(t, all, 2)
}
