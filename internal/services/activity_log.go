package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"LF-ADMIN/internal"
	"LF-ADMIN/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// HistoryPageSize is the fixed page size of the history view
const HistoryPageSize = 50

const maxLoggedBody = 10000

// sanitizeUTF8 ensures the string is valid UTF-8, replacing invalid bytes
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return strings.ToValidUTF8(s, "�")
}

// ActivityLogService records API requests and serves them back as history
type ActivityLogService struct {
	log *zap.Logger
	// Synchronous writes entries before the response returns instead of in the background
	Synchronous bool
}

func NewActivityLogService(log *zap.Logger) *ActivityLogService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityLogService{log: log}
}

// HistoryQuery selects one page of history
type HistoryQuery struct {
	Page   int
	Search string
	Method string
	From   *time.Time
	To     *time.Time
}

// HistoryPage is one server-side page of activity
type HistoryPage struct {
	Items      []models.ActivityLog `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
}

// resourceOf extracts the collection name from an API path, e.g. "lead-forms"
func resourceOf(path string) string {
	rest := strings.TrimPrefix(path, "/api/v1/")
	if rest == path {
		return ""
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func (s *ActivityLogService) LogRequest(c *gin.Context, statusCode int, responseTime time.Duration) {
	clientIP := c.ClientIP()
	if clientIP == "" {
		clientIP = c.Request.RemoteAddr
	}

	queryParams := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 && key != "signature" {
			queryParams[key] = values[0]
		}
	}
	queryParamsJSON, _ := json.Marshal(queryParams)

	requestBody := c.GetString("request_body")
	now := time.Now()
	entry := &models.ActivityLog{
		ID:           uuid.New().String(),
		Method:       c.Request.Method,
		Path:         c.Request.URL.Path,
		Resource:     resourceOf(c.Request.URL.Path),
		UserAgent:    c.Request.UserAgent(),
		IPAddress:    clientIP,
		RequestBody:  sanitizeUTF8(requestBody),
		QueryParams:  string(queryParamsJSON),
		StatusCode:   statusCode,
		ResponseTime: responseTime.Milliseconds(),
		UserID:       c.GetString("user_id"),
		UserEmail:    c.GetString("user_email"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if s.Synchronous {
		s.save(entry)
		return
	}
	go s.save(entry)
}

func (s *ActivityLogService) save(entry *models.ActivityLog) {
	if err := internal.DB.Create(entry).Error; err != nil {
		s.log.Warn("failed to save activity log", zap.String("path", entry.Path), zap.Error(err))
	}
}

// History returns one page of activity, newest first
func (s *ActivityLogService) History(q HistoryQuery) (*HistoryPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	query := internal.DB.Model(&models.ActivityLog{})
	if q.Method != "" {
		query = query.Where("method = ?", strings.ToUpper(q.Method))
	}
	if term := strings.TrimSpace(q.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		query = query.Where("LOWER(path) LIKE ? OR LOWER(resource) LIKE ? OR LOWER(user_email) LIKE ?", like, like, like)
	}
	if q.From != nil {
		query = query.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count logs: %w", err)
	}

	var logs []models.ActivityLog
	err := query.Order("created_at DESC").
		Limit(HistoryPageSize).
		Offset((q.Page - 1) * HistoryPageSize).
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch logs: %w", err)
	}

	return &HistoryPage{
		Items:      logs,
		Total:      total,
		Page:       q.Page,
		PageSize:   HistoryPageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(HistoryPageSize))),
	}, nil
}

// LoggingMiddleware records every API request after it has been handled
func (s *ActivityLogService) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.Next()
			return
		}
		start := time.Now()

		// Identity headers are set by the gateway
		if userID := c.GetHeader("X-User-ID"); userID != "" {
			c.Set("user_id", userID)
		}
		if userEmail := c.GetHeader("X-User-Email"); userEmail != "" {
			c.Set("user_email", userEmail)
		}

		// Multipart uploads are not worth keeping in the audit trail
		isJSON := strings.HasPrefix(c.ContentType(), "application/json")
		if c.Request.Method != http.MethodGet && isJSON && c.Request.Body != nil {
			bodyBytes, err := io.ReadAll(c.Request.Body)
			if err == nil {
				c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
				if len(bodyBytes) > maxLoggedBody {
					c.Set("request_body", fmt.Sprintf("[Large body: %d bytes] %s...", len(bodyBytes), string(bodyBytes[:100])))
				} else if len(bodyBytes) > 0 {
					c.Set("request_body", string(bodyBytes))
				}
			}
		}

		c.Next()

		s.LogRequest(c, c.Writer.Status(), time.Since(start))
	}
}
