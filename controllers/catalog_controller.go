package controllers

import (
	"net/http"

	"rental-order-service/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogController struct {
	catalogService *services.CatalogService
}

func NewCatalogController(catalogService *services.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// GetProducts handles GET /api/products.
func (cc *CatalogController) GetProducts(ctx *gin.Context) {
	products, svcErr := cc.catalogService.ListProducts(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct handles GET /api/products/:id.
func (cc *CatalogController) GetProduct(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	product, svcErr := cc.catalogService.GetProduct(ctx.Request.Context(), id)
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// GetCategories handles GET /api/categories.
func (cc *CatalogController) GetCategories(ctx *gin.Context) {
	categories, svcErr := cc.catalogService.ListCategories(ctx.Request.Context())
	if svcErr != nil {
		ctx.JSON(svcErr.StatusCode, gin.H{"error": svcErr.Message})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"categories": categories})
}
