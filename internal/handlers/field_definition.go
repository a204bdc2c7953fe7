package handlers

import (
	"net/http"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type FieldDefinitionHandler struct {
	service *services.FieldDefinitionService
}

func NewFieldDefinitionHandler(service *services.FieldDefinitionService) *FieldDefinitionHandler {
	return &FieldDefinitionHandler{service: service}
}

// List returns the field catalogue
// GET /api/v1/field-defs
func (h *FieldDefinitionHandler) List(c *gin.Context) {
	defs, err := h.service.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": defs, "total": len(defs)})
}

// Create stores a definition, replacing any with the same key
// POST /api/v1/field-defs
func (h *FieldDefinitionHandler) Create(c *gin.Context) {
	var req services.FieldDefinitionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	def, created, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}

	status, message := http.StatusOK, "Field definition updated successfully"
	if created {
		status, message = http.StatusCreated, "Field definition created successfully"
	}
	c.JSON(status, gin.H{"message": message, "data": def})
}
