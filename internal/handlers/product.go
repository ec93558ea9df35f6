package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/services"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (ph *ProductHandler) Create(c *gin.Context) {
	var input services.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	product, err := ph.productService.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"product": product})
}

func (ph *ProductHandler) List(c *gin.Context) {
	priceGte, err := decimalParam(c, "price_gte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	priceLte, err := decimalParam(c, "price_lte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	stockGte, err := intParam(c, "stock_gte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	stockLte, err := intParam(c, "stock_lte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	filter := repos.ProductFilter{
		NameContains: c.Query("name"),
		PriceGte:     priceGte,
		PriceLte:     priceLte,
		StockGte:     stockGte,
		StockLte:     stockLte,
	}
	products, err := ph.productService.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"products": products})
}

func (ph *ProductHandler) Restock(c *gin.Context) {
	updated, message, err := ph.productService.UpdateLowStock(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated_products": updated, "message": message})
}
