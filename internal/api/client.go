// Package api is the console's HTTP client for the lead admin backend.
// Responses may be wrapped as {"data": payload} or sent bare; both decode
// the same way.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/notify"

	"go.uber.org/zap"
)

// Client talks to /api/v1. It never retries.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	hub        *notify.Hub
	log        *zap.Logger

	FieldDefs        *FieldDefsAPI
	LeadForms        *LeadFormsAPI
	Banks            *Resource[models.Bank]
	Documents        *DocumentsAPI
	Users            *UsersAPI
	Form16           *Resource[models.Form16]
	Banners          *Resource[models.Banner]
	SubAgents        *Resource[models.SubAgent]
	CommissionLimits *Resource[models.FranchiseCommissionLimit]
	Invoices         *InvoicesAPI
	History          *HistoryAPI
	Dashboard        *DashboardAPI
}

// Option customises a Client
type Option func(*Client)

// WithToken sends a bearer token with every request
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout bounds every request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithNotifications publishes permission failures to hub
func WithNotifications(hub *notify.Hub) Option {
	return func(c *Client) { c.hub = hub }
}

// WithLogger sets the request logger
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient creates a client for baseURL, e.g. http://localhost:8081/api/v1
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.FieldDefs = &FieldDefsAPI{c: c}
	c.LeadForms = &LeadFormsAPI{c: c}
	c.Banks = newResource[models.Bank](c, "/banks", "banks")
	c.Documents = &DocumentsAPI{c: c}
	c.Users = &UsersAPI{c: c}
	c.Form16 = newResource[models.Form16](c, "/form16", "form16 documents")
	c.Banners = newResource[models.Banner](c, "/banners", "banners")
	c.SubAgents = newResource[models.SubAgent](c, "/sub-agents", "sub agents")
	c.CommissionLimits = newResource[models.FranchiseCommissionLimit](c, "/franchise-commission-limits", "commission limits")
	c.Invoices = &InvoicesAPI{Resource: newResource[models.Invoice](c, "/invoices", "invoices")}
	c.History = &HistoryAPI{c: c}
	c.Dashboard = &DashboardAPI{c: c}
	return c
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, result any) error {
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return c.send(ctx, op, http.MethodGet, path, nil, "", result)
}

func (c *Client) sendJSON(ctx context.Context, op, method, path string, body, result any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshaling request: %w", err)
	}
	return c.send(ctx, op, method, path, bytes.NewReader(data), "application/json", result)
}

func (c *Client) send(ctx context.Context, op, method, path string, body io.Reader, contentType string, result any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.do(op, req, result)
}

func (c *Client) do(op string, req *http.Request, result any) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.log.Debug("api request",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(op, resp.StatusCode, body)
	}
	if result == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := decodePayload(body, result); err != nil {
		return &apperrors.NetworkError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// fail builds the NetworkError for a non-2xx response. Permission failures
// are announced here and marked so callers do not announce them again.
func (c *Client) fail(op string, status int, body []byte) error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.Unmarshal(body, &payload)
	msg := payload.Error
	if msg == "" {
		msg = payload.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}

	err := &apperrors.NetworkError{Op: op, Status: status, Message: msg}
	if err.Permission() && c.hub != nil {
		c.hub.Error(fmt.Sprintf("You do not have permission to %s", op))
		apperrors.MarkNotified(err)
	}
	return err
}

// decodePayload unwraps {"data": payload} when present, otherwise decodes
// the body itself. A null data member falls back to the whole body.
func decodePayload(body []byte, result any) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			return json.Unmarshal(data, result)
		}
	}
	return json.Unmarshal(body, result)
}
