package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (oh *OrderHandler) Create(c *gin.Context) {
	var input services.CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	order, err := oh.orderService.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"order": order})
}

func (oh *OrderHandler) List(c *gin.Context) {
	totalGte, err := decimalParam(c, "total_amount_gte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	totalLte, err := decimalParam(c, "total_amount_lte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	orderDateGte, err := timeParam(c, "order_date_gte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	orderDateLte, err := timeParam(c, "order_date_lte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	productID, err := uuidParam(c, "product_id")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	filter := repos.OrderFilter{
		TotalAmountGte:       totalGte,
		TotalAmountLte:       totalLte,
		OrderDateGte:         orderDateGte,
		OrderDateLte:         orderDateLte,
		CustomerNameContains: c.Query("customer_name"),
		ProductNameContains:  c.Query("product_name"),
		ProductID:            productID,
	}
	orders, err := oh.orderService.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"orders": orders})
}
