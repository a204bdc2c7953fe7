package services

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "lead-forms", resourceOf("/api/v1/lead-forms/bank/abc"))
	assert.Equal(t, "banks", resourceOf("/api/v1/banks"))
	assert.Equal(t, "", resourceOf("/health"))
}

func TestLoggingMiddlewareRecordsRequests(t *testing.T) {
	db := testdb.Open(t)
	gin.SetMode(gin.TestMode)

	svc := NewActivityLogService(nil)
	svc.Synchronous = true

	r := gin.New()
	r.Use(svc.LoggingMiddleware())
	r.POST("/api/v1/banks", func(c *gin.Context) {
		var body map[string]string
		require.NoError(t, c.ShouldBindJSON(&body))
		c.JSON(http.StatusCreated, body)
	})
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/banks?x=1", strings.NewReader(`{"name":"HDFC"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-Email", "admin@example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"name":"HDFC"}`, w.Body.String(), "body is still readable by the handler")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var logs []models.ActivityLog
	require.NoError(t, db.Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "banks", logs[0].Resource)
	assert.Equal(t, http.StatusCreated, logs[0].StatusCode)
	assert.Equal(t, `{"name":"HDFC"}`, logs[0].RequestBody)
	assert.Equal(t, "admin@example.com", logs[0].UserEmail)
	assert.JSONEq(t, `{"x":"1"}`, logs[0].QueryParams)
}

func TestHistoryPagination(t *testing.T) {
	db := testdb.Open(t)
	svc := NewActivityLogService(nil)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 120; i++ {
		method := http.MethodPost
		if i%2 == 0 {
			method = http.MethodPut
		}
		entry := models.ActivityLog{
			ID:        uuid.New().String(),
			Method:    method,
			Path:      "/api/v1/banners",
			Resource:  "banners",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if i == 7 {
			entry.Path = "/api/v1/invoices/1/status"
			entry.Resource = "invoices"
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	page, err := svc.History(HistoryQuery{Page: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(120), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, HistoryPageSize, page.PageSize)
	assert.Len(t, page.Items, 20)

	first, err := svc.History(HistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Page)
	assert.True(t, first.Items[0].CreatedAt.After(first.Items[1].CreatedAt), "newest first")

	puts, err := svc.History(HistoryQuery{Method: "put"})
	require.NoError(t, err)
	assert.Equal(t, int64(60), puts.Total)

	invoices, err := svc.History(HistoryQuery{Search: "INVOICES"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), invoices.Total)

	empty, err := svc.History(HistoryQuery{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}
