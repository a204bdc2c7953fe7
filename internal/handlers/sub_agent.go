package handlers

import (
	"net/http"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type SubAgentHandler struct {
	service *services.SubAgentService
}

func NewSubAgentHandler(service *services.SubAgentService) *SubAgentHandler {
	return &SubAgentHandler{service: service}
}

// GET /api/v1/sub-agents?franchiseId=
func (h *SubAgentHandler) GetAll(c *gin.Context) {
	agents, err := h.service.GetAll(listFilter(c), c.Query("franchiseId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agents, "total": len(agents)})
}

// GET /api/v1/sub-agents/:id
func (h *SubAgentHandler) Get(c *gin.Context) {
	agent, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": agent})
}

// POST /api/v1/sub-agents
func (h *SubAgentHandler) Create(c *gin.Context) {
	var req services.SubAgentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	agent, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Sub agent created successfully", "data": agent})
}

// PUT /api/v1/sub-agents/:id
func (h *SubAgentHandler) Update(c *gin.Context) {
	var req services.SubAgentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	agent, err := h.service.Update(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub agent updated successfully", "data": agent})
}

// DELETE /api/v1/sub-agents/:id
func (h *SubAgentHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sub agent deleted successfully"})
}
