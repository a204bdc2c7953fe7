// Package registry keeps the console's catalogue of reusable field
// definitions in step with the backend.
package registry

import (
	"context"
	"sort"
	"strings"
	"sync"

	"LF-ADMIN/internal/api"
	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/leadform"
	"LF-ADMIN/internal/models"
)

// Backend is the remote half of the registry; *api.FieldDefsAPI satisfies it
type Backend interface {
	List(ctx context.Context) ([]models.FieldDefinition, error)
	Create(ctx context.Context, payload api.FieldDefinitionPayload) (*models.FieldDefinition, error)
}

// CreateRequest is a field definition as typed by an operator. Options is
// the comma separated edit-mode form.
type CreateRequest struct {
	Key          string
	Label        string
	Type         models.FieldType
	Required     bool
	IsSearchable bool
	Description  string
	Options      string
	Category     models.FieldCategory
}

// Registry caches the field catalogue, sorted by key
type Registry struct {
	backend Backend

	mu        sync.RWMutex
	catalogue []models.FieldDefinition
}

func New(backend Backend) *Registry {
	return &Registry{backend: backend}
}

// List fetches every definition and replaces the cached catalogue
func (r *Registry) List(ctx context.Context) ([]models.FieldDefinition, error) {
	defs, err := r.backend.List(ctx)
	if err != nil {
		return nil, err
	}
	sorted := append([]models.FieldDefinition(nil), defs...)
	sortByKey(sorted)

	r.mu.Lock()
	r.catalogue = sorted
	r.mu.Unlock()
	return r.Catalogue(), nil
}

// Create validates req, sends it and merges the result into the catalogue.
// Missing key or label fails before any request is made.
func (r *Registry) Create(ctx context.Context, req CreateRequest) (*models.FieldDefinition, error) {
	payload, err := req.payload()
	if err != nil {
		return nil, err
	}

	def, err := r.backend.Create(ctx, payload)
	if err != nil {
		return nil, err
	}
	if def.Key == "" {
		def.Key = payload.Key
	}
	r.upsert(*def)
	return def, nil
}

func (req CreateRequest) payload() (api.FieldDefinitionPayload, error) {
	key := leadform.NormalizeKey(req.Key)
	label := strings.TrimSpace(req.Label)

	var verrs apperrors.ValidationErrors
	if key == "" {
		verrs = append(verrs, apperrors.NewValidation("key", "key is required"))
	}
	if label == "" {
		verrs = append(verrs, apperrors.NewValidation("label", "label is required"))
	}
	if err := verrs.OrNil(); err != nil {
		return api.FieldDefinitionPayload{}, err
	}

	typ := req.Type
	if typ == "" {
		typ = models.FieldTypeText
	}
	options := []string{}
	if typ == models.FieldTypeSelect {
		if parsed := leadform.ParseOptions(req.Options); parsed != nil {
			options = parsed
		}
	}

	return api.FieldDefinitionPayload{
		Key:          key,
		Label:        label,
		Type:         typ,
		Required:     req.Required,
		IsSearchable: req.IsSearchable,
		Description:  strings.TrimSpace(req.Description),
		Options:      options,
		Category:     req.Category,
	}, nil
}

func (r *Registry) upsert(def models.FieldDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.catalogue {
		if r.catalogue[i].Key == def.Key {
			r.catalogue[i] = def
			return
		}
	}
	r.catalogue = append(r.catalogue, def)
	sortByKey(r.catalogue)
}

// Lookup returns the cached definition for key
func (r *Registry) Lookup(key string) (models.FieldDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, def := range r.catalogue {
		if def.Key == key {
			return def, true
		}
	}
	return models.FieldDefinition{}, false
}

// Catalogue returns a copy of the cached definitions
func (r *Registry) Catalogue() []models.FieldDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.FieldDefinition(nil), r.catalogue...)
}

func sortByKey(defs []models.FieldDefinition) {
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Key < defs[j].Key })
}
