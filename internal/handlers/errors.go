package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to status codes
func respondError(c *gin.Context, err error) {
	var one *apperrors.ValidationError
	var many apperrors.ValidationErrors
	switch {
	case errors.As(err, &many):
		fields := make(gin.H, len(many))
		for _, e := range many {
			fields[e.Field] = e.Message
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": fields})
	case errors.As(err, &one):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "fields": gin.H{one.Field: one.Message}})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLeadFormExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// listFilter reads ?status=&search=&limit= from the query string
func listFilter(c *gin.Context) services.ListFilter {
	limit, _ := strconv.Atoi(c.Query("limit"))
	return services.ListFilter{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Limit:  limit,
	}
}
