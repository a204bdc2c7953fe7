package handlers

import (
	"net/http"
	"strconv"
	"time"

	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type HistoryHandler struct {
	service *services.ActivityLogService
}

func NewHistoryHandler(service *services.ActivityLogService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// GetHistory returns one page of the audit trail
// GET /api/v1/history?page=1&search=&method=&from=2025-01-01&to=2025-01-31
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	q := services.HistoryQuery{
		Search: c.Query("search"),
		Method: c.Query("method"),
	}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			badRequest(c, "page must be a positive number")
			return
		}
		q.Page = page
	}
	if raw := c.Query("from"); raw != "" {
		from, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			badRequest(c, "from must be a date like 2025-01-31")
			return
		}
		q.From = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			badRequest(c, "to must be a date like 2025-01-31")
			return
		}
		// inclusive of the whole day
		to = to.AddDate(0, 0, 1)
		q.To = &to
	}

	page, err := h.service.History(q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
