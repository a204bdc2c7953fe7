package handlers

import (
	"net/http"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	service *services.BannerService
}

func NewBannerHandler(service *services.BannerService) *BannerHandler {
	return &BannerHandler{service: service}
}

// GET /api/v1/banners
func (h *BannerHandler) GetAll(c *gin.Context) {
	banners, err := h.service.GetAll(listFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners, "total": len(banners)})
}

// Live returns the banners agents currently see
// GET /api/v1/banners/live
func (h *BannerHandler) Live(c *gin.Context) {
	banners, err := h.service.Live()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banners, "total": len(banners)})
}

// GET /api/v1/banners/:id
func (h *BannerHandler) Get(c *gin.Context) {
	banner, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": banner})
}

// POST /api/v1/banners
func (h *BannerHandler) Create(c *gin.Context) {
	var req services.BannerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	banner, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Banner created successfully", "data": banner})
}

// PUT /api/v1/banners/:id
func (h *BannerHandler) Update(c *gin.Context) {
	var req services.BannerInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	banner, err := h.service.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner updated successfully", "data": banner})
}

// DELETE /api/v1/banners/:id
func (h *BannerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
}
