// internal/handlers/insurance/insurance_handler.go
package insurance

import (
	"net/http"
	"strconv"

	"alamin-service/internal/domain/insurance"
	"alamin-service/internal/pkg/response"
	service "alamin-service/internal/service/insurance"

	"github.com/gin-gonic/gin"
)

type InsuranceHandler struct {
	insuranceService *service.InsuranceService
}

func NewInsuranceHandler(insuranceService *service.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{
		insuranceService: insuranceService,
	}
}

// List returns every insurance company.
func (h *InsuranceHandler) List(c *gin.Context) {
	companies, err := h.insuranceService.List(c.Request.Context())
	if err != nil {
		response.FromError(c, "failed to list insurance companies", err)
		return
	}

	response.Success(c, http.StatusOK, "insurance companies retrieved", companies)
}

// Get returns one company.
func (h *InsuranceHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.insuranceService.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, "failed to get insurance company", err)
		return
	}

	response.Success(c, http.StatusOK, "insurance company retrieved", result)
}

// Create adds a new company.
func (h *InsuranceHandler) Create(c *gin.Context) {
	var req insurance.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.insuranceService.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create insurance company", err)
		return
	}

	response.Success(c, http.StatusCreated, "insurance company created", result)
}

// Update applies a partial update.
func (h *InsuranceHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req insurance.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.insuranceService.Update(c.Request.Context(), id, &req)
	if err != nil {
		response.FromError(c, "failed to update insurance company", err)
		return
	}

	response.Success(c, http.StatusOK, "insurance company updated", result)
}

// Delete removes a company.
func (h *InsuranceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.insuranceService.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, "failed to delete insurance company", err)
		return
	}

	response.Success(c, http.StatusOK, "insurance company deleted", nil)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid id", err)
		return 0, false
	}
	return id, true
}
