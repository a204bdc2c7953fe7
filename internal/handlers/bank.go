package handlers

import (
	"net/http"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type BankHandler struct {
	service *services.BankService
}

func NewBankHandler(service *services.BankService) *BankHandler {
	return &BankHandler{service: service}
}

// GetAll returns banks; ?active=true hides disabled ones
// GET /api/v1/banks
func (h *BankHandler) GetAll(c *gin.Context) {
	banks, err := h.service.GetAll(c.Query("active") == "true")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banks, "total": len(banks)})
}

// GET /api/v1/banks/:id
func (h *BankHandler) Get(c *gin.Context) {
	bank, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": bank})
}

// POST /api/v1/banks
func (h *BankHandler) Create(c *gin.Context) {
	var req services.BankInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	bank, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bank created successfully", "data": bank})
}

// PUT /api/v1/banks/:id
func (h *BankHandler) Update(c *gin.Context) {
	var req services.BankInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	bank, err := h.service.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bank updated successfully", "data": bank})
}

// DELETE /api/v1/banks/:id
func (h *BankHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bank deleted successfully"})
}
