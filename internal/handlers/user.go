package handlers

import (
	"net/http"
	"strconv"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetAll returns users of one role
// GET /api/v1/users?role=agent&limit=100
func (h *UserHandler) GetAll(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			badRequest(c, "limit must be a positive number")
			return
		}
		limit = n
	}
	users, err := h.service.GetAll(c.Query("role"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users, "total": len(users)})
}

// GET /api/v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": user})
}

// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req services.UserInput
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	user, err := h.service.Create(req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "data": user})
}
