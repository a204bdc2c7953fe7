package handlers

import (
	"net/http"

	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type LeadFormHandler struct {
	service *services.LeadFormService
}

func NewLeadFormHandler(service *services.LeadFormService) *LeadFormHandler {
	return &LeadFormHandler{service: service}
}

// List returns lead forms, optionally for one lead type
// GET /api/v1/lead-forms?leadType=bank
func (h *LeadFormHandler) List(c *gin.Context) {
	leadType := models.LeadType(c.Query("leadType"))
	if leadType != "" && !leadType.Valid() {
		badRequest(c, "leadType must be bank or new_lead")
		return
	}
	forms, err := h.service.List(leadType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": forms, "total": len(forms)})
}

// Get returns one lead form
// GET /api/v1/lead-forms/:id
func (h *LeadFormHandler) Get(c *gin.Context) {
	form, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// GetByBank returns the form configured for a bank
// GET /api/v1/lead-forms/bank/:bankId
func (h *LeadFormHandler) GetByBank(c *gin.Context) {
	bankID := c.Param("bankId")
	if bankID == "" {
		badRequest(c, "bankId is required")
		return
	}
	form, err := h.service.GetByBank(bankID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// GetNewLeadForm returns the new lead form
// GET /api/v1/lead-forms/new-lead
func (h *LeadFormHandler) GetNewLeadForm(c *gin.Context) {
	form, err := h.service.GetNewLeadForm()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": form})
}

// Create stores a new lead form; 409 when an active one exists for the target
// POST /api/v1/lead-forms
func (h *LeadFormHandler) Create(c *gin.Context) {
	var req services.LeadFormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	form, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Lead form created successfully", "data": form})
}

// Update replaces a lead form
// PUT /api/v1/lead-forms/:id
func (h *LeadFormHandler) Update(c *gin.Context) {
	var req services.LeadFormInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	form, err := h.service.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead form updated successfully", "data": form})
}

// Delete removes a lead form
// DELETE /api/v1/lead-forms/:id
func (h *LeadFormHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lead form deleted successfully"})
}
