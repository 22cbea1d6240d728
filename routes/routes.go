package routes

import (
	"rental-order-service/controllers"
	"rental-order-service/logger"
	"rental-order-service/middleware"

	"github.com/gin-gonic/gin"
)

// Register wires every HTTP route. Availability and the catalog are public;
// everything touching orders requires the gateway-authenticated user header.
func Register(
	r *gin.Engine,
	orders *controllers.OrderController,
	availability *controllers.AvailabilityController,
	payments *controllers.PaymentController,
	catalog *controllers.CatalogController,
) {
	r.Use(logger.RequestLogger())

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware())

	api.POST("/check-availability", availability.CheckAvailability)
	api.GET("/products", catalog.GetProducts)
	api.GET("/products/:id", catalog.GetProduct)
	api.GET("/categories", catalog.GetCategories)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware())
	authed.POST("/order", orders.PlaceOrder)
	authed.GET("/order", orders.GetAllOrders)
	authed.GET("/order/user/order", orders.GetUserOrders)
	authed.GET("/order/:id", orders.GetOrder)
	authed.POST("/order/:id", orders.CancelOrder)
	authed.GET("/order/:id/payments", payments.GetPaymentHistory)
	authed.POST("/PayPendingPayment", payments.PayPendingPayment)
}
