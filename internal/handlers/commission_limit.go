package handlers

import (
	"net/http"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type CommissionLimitHandler struct {
	service *services.CommissionLimitService
}

func NewCommissionLimitHandler(service *services.CommissionLimitService) *CommissionLimitHandler {
	return &CommissionLimitHandler{service: service}
}

// GET /api/v1/franchise-commission-limits
func (h *CommissionLimitHandler) GetAll(c *gin.Context) {
	limits, err := h.service.GetAll(listFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": limits, "total": len(limits)})
}

// GET /api/v1/franchise-commission-limits/:id
func (h *CommissionLimitHandler) Get(c *gin.Context) {
	limit, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": limit})
}

// POST /api/v1/franchise-commission-limits
func (h *CommissionLimitHandler) Create(c *gin.Context) {
	var req services.CommissionLimitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	limit, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Commission limit created successfully", "data": limit})
}

// PUT /api/v1/franchise-commission-limits/:id
func (h *CommissionLimitHandler) Update(c *gin.Context) {
	var req services.CommissionLimitInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	limit, err := h.service.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commission limit updated successfully", "data": limit})
}

// DELETE /api/v1/franchise-commission-limits/:id
func (h *CommissionLimitHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commission limit deleted successfully"})
}
