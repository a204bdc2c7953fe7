package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"LF-ADMIN/internal/models"
)

// Resource is a CRUD collection under the API root
type Resource[T any] struct {
	c    *Client
	path string
	name string
}

func newResource[T any](c *Client, path, name string) *Resource[T] {
	return &Resource[T]{c: c, path: path, name: name}
}

// GetAll lists the collection; query carries server-side filters
func (r *Resource[T]) GetAll(ctx context.Context, query url.Values) ([]T, error) {
	var items []T
	if err := r.c.get(ctx, "load "+r.name, r.path, query, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	var item T
	if err := r.c.get(ctx, "load "+r.name, r.path+"/"+url.PathEscape(id), nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	var item T
	if err := r.c.sendJSON(ctx, "create "+r.name, http.MethodPost, r.path, payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (*T, error) {
	var item T
	if err := r.c.sendJSON(ctx, "update "+r.name, http.MethodPut, r.path+"/"+url.PathEscape(id), payload, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return r.c.send(ctx, "delete "+r.name, http.MethodDelete, r.path+"/"+url.PathEscape(id), nil, "", nil)
}

// FieldDefinitionPayload is the create body for a field definition
type FieldDefinitionPayload struct {
	Key          string               `json:"key"`
	Label        string               `json:"label"`
	Type         models.FieldType     `json:"type"`
	Required     bool                 `json:"required"`
	IsSearchable bool                 `json:"isSearchable"`
	Description  string               `json:"description,omitempty"`
	Options      []string             `json:"options"`
	Category     models.FieldCategory `json:"category,omitempty"`
}

type FieldDefsAPI struct{ c *Client }

func (a *FieldDefsAPI) List(ctx context.Context) ([]models.FieldDefinition, error) {
	var defs []models.FieldDefinition
	if err := a.c.get(ctx, "load field definitions", "/field-defs", nil, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

func (a *FieldDefsAPI) Create(ctx context.Context, payload FieldDefinitionPayload) (*models.FieldDefinition, error) {
	var def models.FieldDefinition
	if err := a.c.sendJSON(ctx, "create field definition", http.MethodPost, "/field-defs", payload, &def); err != nil {
		return nil, err
	}
	return &def, nil
}

// LeadFormPayload is the create and update body for a lead form
type LeadFormPayload struct {
	LeadType      models.LeadType                  `json:"leadType"`
	Bank          *string                          `json:"bank"`
	Name          string                           `json:"name"`
	AgentFields   []models.LeadFormField           `json:"agentFields"`
	DocumentTypes []models.DocumentTypeRequirement `json:"documentTypes"`
	Active        bool                             `json:"active"`
}

type LeadFormsAPI struct{ c *Client }

func (a *LeadFormsAPI) GetByBank(ctx context.Context, bankID string) (*models.LeadForm, error) {
	var form models.LeadForm
	if err := a.c.get(ctx, "load lead form", "/lead-forms/bank/"+url.PathEscape(bankID), nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (a *LeadFormsAPI) GetNewLeadForm(ctx context.Context) (*models.LeadForm, error) {
	var form models.LeadForm
	if err := a.c.get(ctx, "load lead form", "/lead-forms/new-lead", nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (a *LeadFormsAPI) Create(ctx context.Context, payload LeadFormPayload) (*models.LeadForm, error) {
	var form models.LeadForm
	if err := a.c.sendJSON(ctx, "create lead form", http.MethodPost, "/lead-forms", payload, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (a *LeadFormsAPI) Update(ctx context.Context, id string, payload LeadFormPayload) (*models.LeadForm, error) {
	var form models.LeadForm
	if err := a.c.sendJSON(ctx, "update lead form", http.MethodPut, "/lead-forms/"+url.PathEscape(id), payload, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

// Upload is where an uploaded file ended up. Backends fill in different
// members, so Location picks whichever is set.
type Upload struct {
	URL        string `json:"url"`
	FilePath   string `json:"filePath"`
	Attachment string `json:"attachment"`
}

func (u Upload) Location() string {
	switch {
	case u.URL != "":
		return u.URL
	case u.FilePath != "":
		return u.FilePath
	}
	return u.Attachment
}

type DocumentsAPI struct{ c *Client }

// Upload sends a file as multipart form data tagged with the record it belongs to
func (a *DocumentsAPI) Upload(ctx context.Context, filename string, r io.Reader, recordType, recordID string) (*Upload, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	if recordType != "" {
		_ = mw.WriteField("recordType", recordType)
	}
	if recordID != "" {
		_ = mw.WriteField("recordId", recordID)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	var up Upload
	if err := a.c.send(ctx, "upload "+filename, http.MethodPost, "/documents/upload", &buf, mw.FormDataContentType(), &up); err != nil {
		return nil, err
	}
	return &up, nil
}

type UsersAPI struct{ c *Client }

// GetAll lists users of role; limit <= 0 leaves the backend default
func (a *UsersAPI) GetAll(ctx context.Context, role string, limit int) ([]models.User, error) {
	q := url.Values{}
	if role != "" {
		q.Set("role", role)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var users []models.User
	if err := a.c.get(ctx, "load "+role+" users", "/users", q, &users); err != nil {
		return nil, err
	}
	return users, nil
}

type InvoicesAPI struct {
	*Resource[models.Invoice]
}

func (a *InvoicesAPI) UpdateStatus(ctx context.Context, id, status string) (*models.Invoice, error) {
	var inv models.Invoice
	body := map[string]string{"status": status}
	if err := a.c.sendJSON(ctx, "update invoice status", http.MethodPatch, "/invoices/"+url.PathEscape(id)+"/status", body, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// HistoryParams selects one server-side page of history
type HistoryParams struct {
	Page   int
	Search string
	Method string
	From   time.Time
	To     time.Time
}

// HistoryPage is one page of the audit trail
type HistoryPage struct {
	Items      []models.ActivityLog `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	TotalPages int                  `json:"totalPages"`
}

type HistoryAPI struct{ c *Client }

func (a *HistoryAPI) Page(ctx context.Context, p HistoryParams) (*HistoryPage, error) {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Method != "" {
		q.Set("method", p.Method)
	}
	if !p.From.IsZero() {
		q.Set("from", p.From.Format("2006-01-02"))
	}
	if !p.To.IsZero() {
		q.Set("to", p.To.Format("2006-01-02"))
	}
	var page HistoryPage
	if err := a.c.get(ctx, "load history", "/history", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

type DashboardAPI struct{ c *Client }

func (a *DashboardAPI) Stats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := a.c.get(ctx, "load dashboard", "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
