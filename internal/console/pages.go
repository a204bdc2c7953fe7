// Package console holds the page-level workflows of the admin console:
// loading entity lists, batch lookups and create-with-file sequences.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"

	"LF-ADMIN/internal/api"
	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/notify"

	"go.uber.org/zap"
)

// Page reports the outcome of page-level operations
type Page struct {
	Hub *notify.Hub
	Log *zap.Logger
}

func NewPage(hub *notify.Hub, log *zap.Logger) *Page {
	if log == nil {
		log = zap.NewNop()
	}
	return &Page{Hub: hub, Log: log}
}

func (p *Page) fail(err error, message string) {
	p.Log.Error(message, zap.Error(err))
	if p.Hub != nil && !apperrors.AlreadyNotified(err) {
		p.Hub.Error(message)
	}
}

// LoadPage fetches one entity list. A failure is logged and notified once,
// and the page is left empty.
func LoadPage[T any](ctx context.Context, p *Page, what string, fetch func(context.Context) ([]T, error)) ([]T, error) {
	items, err := fetch(ctx)
	if err != nil {
		p.fail(err, fmt.Sprintf("Failed to load %s", what))
		return nil, err
	}
	return items, nil
}

// UserLister is the users namespace of the API
type UserLister interface {
	GetAll(ctx context.Context, role string, limit int) ([]models.User, error)
}

// FetchUsersByRoles loads each role one after the other. Roles that fail are
// logged and left out; the rest are returned together with a
// *apperrors.PartialBatchFailure naming the failed roles.
func FetchUsersByRoles(ctx context.Context, users UserLister, roles []string, limit int, log *zap.Logger) ([]models.User, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var all []models.User
	batch := &apperrors.PartialBatchFailure{Op: "load users"}
	for _, role := range roles {
		got, err := users.GetAll(ctx, role, limit)
		if err != nil {
			log.Warn("failed to load users for role", zap.String("role", role), zap.Error(err))
			batch.Add(role, err)
			continue
		}
		all = append(all, got...)
	}
	return all, batch.OrNil()
}

// Form16Input is what an operator enters for a new Form16 or TDS document
type Form16Input struct {
	AgentID       string `json:"agentId"`
	AgentName     string `json:"agentName"`
	FinancialYear string `json:"financialYear"`
	DocumentType  string `json:"documentType"`
	Attachment    string `json:"attachment"`
	Status        string `json:"status,omitempty"`
	Remarks       string `json:"remarks,omitempty"`
}

// Validate checks the required fields before anything is sent
func (in Form16Input) Validate() error {
	var errs apperrors.ValidationErrors
	if strings.TrimSpace(in.AgentID) == "" {
		errs = append(errs, apperrors.NewValidation("agentId", "agent is required"))
	}
	if strings.TrimSpace(in.FinancialYear) == "" {
		errs = append(errs, apperrors.NewValidation("financialYear", "financial year is required"))
	}
	return errs.OrNil()
}

// Form16Store is the form16 namespace of the API
type Form16Store interface {
	Create(ctx context.Context, payload any) (*models.Form16, error)
	Update(ctx context.Context, id string, payload any) (*models.Form16, error)
}

// Uploader is the documents namespace of the API
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, recordType, recordID string) (*api.Upload, error)
}

// CreateForm16WithAttachment creates the record with a pending attachment,
// uploads the file against the new id and then stores the file location.
// If a later step fails the created record is returned as it stands, still
// carrying the pending attachment; nothing is rolled back.
func CreateForm16WithAttachment(ctx context.Context, p *Page, store Form16Store, docs Uploader, in Form16Input, filename string, file io.Reader) (*models.Form16, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.Attachment = models.PendingAttachment
	doc, err := store.Create(ctx, in)
	if err != nil {
		p.fail(err, "Failed to create Form16 document")
		return nil, err
	}

	up, err := docs.Upload(ctx, filename, file, "form16", doc.ID)
	if err != nil {
		p.fail(err, fmt.Sprintf("Form16 %s created but the file upload failed", doc.ID))
		return doc, fmt.Errorf("failed to upload attachment for form16 %s: %w", doc.ID, err)
	}

	in.Attachment = up.Location()
	updated, err := store.Update(ctx, doc.ID, in)
	if err != nil {
		p.fail(err, fmt.Sprintf("Form16 %s uploaded but could not be linked to its file", doc.ID))
		return doc, fmt.Errorf("failed to attach file to form16 %s: %w", doc.ID, err)
	}

	if p.Hub != nil {
		p.Hub.Success("Form16 document created")
	}
	return updated, nil
}
