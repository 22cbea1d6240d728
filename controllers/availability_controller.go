package controllers

import (
	"net/http"

	"rental-order-service/models"
	"rental-order-service/services"

	"github.com/gin-gonic/gin"
)

type AvailabilityController struct {
	availabilityService *services.AvailabilityService
}

func NewAvailabilityController(availabilityService *services.AvailabilityService) *AvailabilityController {
	return &AvailabilityController{availabilityService: availabilityService}
}

// CheckAvailability handles POST /api/check-availability. Public: the
// storefront calls it before the user has signed in.
func (ac *AvailabilityController) CheckAvailability(ctx *gin.Context) {
	var req models.AvailabilityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	results, svcErr := ac.availabilityService.Check(ctx.Request.Context(), &req)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"availability": results})
}
