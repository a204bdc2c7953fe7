package handlers

import (
	"net/http"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	service *services.InvoiceService
}

func NewInvoiceHandler(service *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// GET /api/v1/invoices
func (h *InvoiceHandler) GetAll(c *gin.Context) {
	invoices, err := h.service.GetAll(listFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": invoices, "total": len(invoices)})
}

// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	inv, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": inv})
}

// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req services.InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	inv, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Invoice created successfully", "data": inv})
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an invoice along its workflow
// PATCH /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	var req UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}
	inv, err := h.service.UpdateStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invoice status updated successfully", "data": inv})
}
