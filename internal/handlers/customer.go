package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/yungbote/crmcore-backend/internal/pkg/errors"
	"github.com/yungbote/crmcore-backend/internal/repos"
	"github.com/yungbote/crmcore-backend/internal/services"
)

type CustomerHandler struct {
	customerService services.CustomerService
}

func NewCustomerHandler(customerService services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (ch *CustomerHandler) Create(c *gin.Context) {
	var input services.CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	customer, message, err := ch.customerService.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"customer": customer, "message": message})
}

type bulkCreateRequest struct {
	Records []services.CreateCustomerInput `json:"records" binding:"required"`
}

func (ch *CustomerHandler) BulkCreate(c *gin.Context) {
	var req bulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	customers, recordErrors, err := ch.customerService.BulkCreate(c.Request.Context(), req.Records)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"customers": customers, "errors": recordErrors})
}

func (ch *CustomerHandler) List(c *gin.Context) {
	createdAtGte, err := timeParam(c, "created_at_gte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	createdAtLte, err := timeParam(c, "created_at_lte")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	filter := repos.CustomerFilter{
		NameContains:  c.Query("name"),
		EmailContains: c.Query("email"),
		CreatedAtGte:  createdAtGte,
		CreatedAtLte:  createdAtLte,
		PhonePrefix:   c.Query("phone_pattern"),
	}
	customers, err := ch.customerService.List(c.Request.Context(), filter)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"customers": customers})
}

// Get renders a typed null for a missing id rather than an error.
func (ch *CustomerHandler) Get(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", "id must be a UUID")
		return
	}

	customer, err := ch.customerService.Get(c.Request.Context(), customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			RespondOK(c, gin.H{"customer": nil})
			return
		}
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"customer": customer})
}
