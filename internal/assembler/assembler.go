// Package assembler edits one lead form at a time: the selected agent
// fields, their per-form overrides, and the required document types.
package assembler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"LF-ADMIN/internal/api"
	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/leadform"
	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/notify"

	"go.uber.org/zap"
)

// State of the form being edited
type State string

const (
	StateEmpty      State = "empty"
	StateLoading    State = "loading"
	StateLoaded     State = "loaded"
	StateSaving     State = "saving"
	StateSaveFailed State = "save_failed"
)

// ErrUpdateFallbackFailed is returned when create reported a conflict and
// updating the existing form failed as well.
var ErrUpdateFallbackFailed = errors.New("lead form update fallback failed")

// ErrNoTarget is returned by Save before any form was loaded
var ErrNoTarget = errors.New("no bank or new lead form selected")

// Backend is the lead form half of the API; *api.LeadFormsAPI satisfies it
type Backend interface {
	GetByBank(ctx context.Context, bankID string) (*models.LeadForm, error)
	GetNewLeadForm(ctx context.Context) (*models.LeadForm, error)
	Create(ctx context.Context, payload api.LeadFormPayload) (*models.LeadForm, error)
	Update(ctx context.Context, id string, payload api.LeadFormPayload) (*models.LeadForm, error)
}

// Catalogue resolves field definitions; *registry.Registry satisfies it
type Catalogue interface {
	Lookup(key string) (models.FieldDefinition, bool)
	Catalogue() []models.FieldDefinition
}

// Binding is a field as edited inside one form. Options is the comma
// separated edit-mode form of the option list.
type Binding struct {
	Key          string           `json:"key"`
	Label        string           `json:"label"`
	Type         models.FieldType `json:"type"`
	Required     bool             `json:"required"`
	IsSearchable bool             `json:"isSearchable"`
	Description  string           `json:"description,omitempty"`
	Options      string           `json:"options"`
	Order        int              `json:"order"`
}

// FieldPatch holds the attributes to overwrite; nil members are left alone
type FieldPatch struct {
	Label        *string
	Type         *models.FieldType
	Required     *bool
	IsSearchable *bool
	Description  *string
	Options      *string
}

// Assembler is not safe for concurrent use; each operation runs to
// completion before the next one starts.
type Assembler struct {
	backend   Backend
	catalogue Catalogue
	hub       *notify.Hub
	log       *zap.Logger
	policy    leadform.Policy

	state    State
	leadType models.LeadType
	bankID   string
	formID   string
	name     string
	active   bool
	fields   []Binding
	docs     []models.DocumentTypeRequirement
}

func New(backend Backend, catalogue Catalogue, hub *notify.Hub, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{
		backend:   backend,
		catalogue: catalogue,
		hub:       hub,
		log:       logger,
		policy:    leadform.DefaultPolicy(),
		state:     StateEmpty,
	}
}

func (a *Assembler) State() State              { return a.state }
func (a *Assembler) FormID() string            { return a.formID }
func (a *Assembler) LeadType() models.LeadType { return a.leadType }
func (a *Assembler) BankID() string            { return a.bankID }
func (a *Assembler) Name() string              { return a.name }
func (a *Assembler) Active() bool              { return a.active }

// LoadForNewLead resets the editor to the new lead form
func (a *Assembler) LoadForNewLead(ctx context.Context) error {
	return a.load(ctx, models.LeadTypeNewLead, "")
}

// LoadForBank resets the editor to the lead form of bankID
func (a *Assembler) LoadForBank(ctx context.Context, bankID string) error {
	if strings.TrimSpace(bankID) == "" {
		return apperrors.NewValidation("bank", "bank is required")
	}
	return a.load(ctx, models.LeadTypeBank, bankID)
}

func (a *Assembler) load(ctx context.Context, t models.LeadType, bankID string) error {
	a.reset(t, bankID)
	a.state = StateLoading

	form, err := a.fetch(ctx)
	if err != nil {
		a.state = StateEmpty
		if apperrors.IsNotFound(err) {
			return nil
		}
		a.log.Error("failed to load lead form", zap.String("lead_type", string(t)), zap.String("bank", bankID), zap.Error(err))
		a.notifyError(err, "Failed to load lead form")
		return err
	}

	a.apply(form)
	a.state = StateLoaded
	return nil
}

func (a *Assembler) fetch(ctx context.Context) (*models.LeadForm, error) {
	if a.leadType == models.LeadTypeNewLead {
		return a.backend.GetNewLeadForm(ctx)
	}
	return a.backend.GetByBank(ctx, a.bankID)
}

func (a *Assembler) reset(t models.LeadType, bankID string) {
	a.leadType = t
	a.bankID = bankID
	a.formID = ""
	a.name = ""
	a.active = true
	a.fields = nil
	a.docs = nil
}

func (a *Assembler) apply(form *models.LeadForm) {
	a.formID = form.ID
	a.name = form.Name
	a.active = form.Active

	source := []models.LeadFormField(form.AgentFields)
	if len(source) == 0 {
		source = form.Fields
	}
	bindings := make([]Binding, 0, len(source))
	for _, f := range source {
		bindings = append(bindings, Binding{
			Key:          f.Key,
			Label:        f.Label,
			Type:         f.Type,
			Required:     f.Required,
			IsSearchable: f.IsSearchable,
			Description:  f.Description,
			Options:      leadform.JoinOptions(f.Options),
			Order:        f.Order,
		})
	}
	a.fields = a.filter(bindings, leadform.PurposeSave, nil)
	a.docs = append([]models.DocumentTypeRequirement(nil), form.DocumentTypes...)
}

func (a *Assembler) filter(bindings []Binding, purpose leadform.Purpose, selected map[string]bool) []Binding {
	return leadform.Filter(bindings, bindingView, leadform.Options{
		Context:  leadform.ContextFor(string(a.leadType)),
		Purpose:  purpose,
		Selected: selected,
		Policy:   &a.policy,
	})
}

func bindingView(b Binding) leadform.Field {
	return leadform.Field{Key: b.Key, Label: b.Label}
}

func (a *Assembler) indexOf(key string) int {
	for i, b := range a.fields {
		if b.Key == key {
			return i
		}
	}
	return -1
}

// ToggleField removes key from the form when it is selected and appends it
// otherwise. It reports whether the field is selected afterwards.
func (a *Assembler) ToggleField(key string) bool {
	if i := a.indexOf(key); i >= 0 {
		a.fields = append(a.fields[:i:i], a.fields[i+1:]...)
		return false
	}

	b := Binding{Key: key, Label: key, Type: models.FieldTypeText}
	if def, ok := a.lookup(key); ok {
		b = Binding{
			Key:          def.Key,
			Label:        def.Label,
			Type:         def.Type,
			Required:     def.Required,
			IsSearchable: def.IsSearchable,
			Description:  def.Description,
			Options:      leadform.JoinOptions(def.Options),
		}
		if b.Type == "" {
			b.Type = models.FieldTypeText
		}
	}
	b.Order = len(a.fields) + 1
	a.fields = append(a.fields, b)
	return true
}

func (a *Assembler) lookup(key string) (models.FieldDefinition, bool) {
	if a.catalogue == nil {
		return models.FieldDefinition{}, false
	}
	return a.catalogue.Lookup(key)
}

// SetFieldOrder reads the leading integer of order, so "2.5" is 2 and
// "3 px" is 3. Anything without one becomes 0.
func (a *Assembler) SetFieldOrder(key, order string) bool {
	i := a.indexOf(key)
	if i < 0 {
		return false
	}
	a.fields[i].Order = leadingInt(order)
	return true
}

func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// EditField merges patch into the binding for key
func (a *Assembler) EditField(key string, patch FieldPatch) bool {
	i := a.indexOf(key)
	if i < 0 {
		return false
	}
	b := &a.fields[i]
	if patch.Label != nil {
		b.Label = *patch.Label
	}
	if patch.Type != nil {
		b.Type = *patch.Type
	}
	if patch.Required != nil {
		b.Required = *patch.Required
	}
	if patch.IsSearchable != nil {
		b.IsSearchable = *patch.IsSearchable
	}
	if patch.Description != nil {
		b.Description = *patch.Description
	}
	if patch.Options != nil {
		b.Options = *patch.Options
	}
	return true
}

func (a *Assembler) SetName(name string) { a.name = strings.TrimSpace(name) }

func (a *Assembler) SetActive(active bool) { a.active = active }

// SetDocumentTypes replaces the document requirements. Missing keys are
// derived from the name.
func (a *Assembler) SetDocumentTypes(docs []models.DocumentTypeRequirement) {
	a.docs = make([]models.DocumentTypeRequirement, 0, len(docs))
	for _, d := range docs {
		if d.Key == "" {
			d.Key = leadform.NormalizeKey(d.Name)
		}
		a.docs = append(a.docs, d)
	}
}

// AddDocumentType appends a requirement named name
func (a *Assembler) AddDocumentType(name string, required bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidation("name", "document type name is required")
	}
	key := leadform.NormalizeKey(name)
	for _, d := range a.docs {
		if d.Key == key {
			return apperrors.NewValidation("name", fmt.Sprintf("document type %q already added", name))
		}
	}
	a.docs = append(a.docs, models.DocumentTypeRequirement{
		Key:      key,
		Name:     name,
		Required: required,
		Order:    len(a.docs) + 1,
	})
	return nil
}

// DocumentTypes returns a copy of the document requirements
func (a *Assembler) DocumentTypes() []models.DocumentTypeRequirement {
	return append([]models.DocumentTypeRequirement(nil), a.docs...)
}

// Fields returns the selected bindings ordered by order, then key
func (a *Assembler) Fields() []Binding {
	out := append([]Binding(nil), a.fields...)
	sortBindings(out)
	return out
}

func sortBindings(bs []Binding) {
	sort.SliceStable(bs, func(i, j int) bool {
		if bs[i].Order != bs[j].Order {
			return bs[i].Order < bs[j].Order
		}
		return bs[i].Key < bs[j].Key
	})
}

// AvailableFields lists the catalogue entries an operator may pick from.
// Fields already on the form keep their DSA code variant.
func (a *Assembler) AvailableFields() []models.FieldDefinition {
	if a.catalogue == nil {
		return nil
	}
	selected := make(map[string]bool, len(a.fields))
	for _, b := range a.fields {
		selected[b.Key] = true
	}
	return leadform.Filter(a.catalogue.Catalogue(), func(d models.FieldDefinition) leadform.Field {
		return leadform.Field{Key: d.Key, Label: d.Label}
	}, leadform.Options{
		Context:  leadform.ContextFor(string(a.leadType)),
		Purpose:  leadform.PurposeDisplay,
		Selected: selected,
		Policy:   &a.policy,
	})
}

// Payload builds the persisted form from the current selection after the
// save-time policy has removed excluded fields
func (a *Assembler) Payload() api.LeadFormPayload {
	kept := a.filter(a.fields, leadform.PurposeSave, nil)
	sortBindings(kept)

	agentFields := make([]models.LeadFormField, 0, len(kept))
	for _, b := range kept {
		options := leadform.ParseOptions(b.Options)
		if options == nil {
			options = []string{}
		}
		agentFields = append(agentFields, models.LeadFormField{
			Key:          b.Key,
			Label:        b.Label,
			Type:         b.Type,
			Required:     b.Required,
			IsSearchable: b.IsSearchable,
			Description:  b.Description,
			Options:      options,
			Order:        b.Order,
		})
	}

	var bank *string
	if a.leadType == models.LeadTypeBank && a.bankID != "" {
		id := a.bankID
		bank = &id
	}
	name := a.name
	if name == "" {
		name = models.DefaultFormName(a.leadType)
	}
	docs := a.DocumentTypes()
	if docs == nil {
		docs = []models.DocumentTypeRequirement{}
	}

	return api.LeadFormPayload{
		LeadType:      a.leadType,
		Bank:          bank,
		Name:          name,
		AgentFields:   agentFields,
		DocumentTypes: docs,
		Active:        a.active,
	}
}

// Save persists the form. A known form id is updated; otherwise the form is
// created, and a conflict on create is recovered by fetching the existing
// form for the same target and updating it.
func (a *Assembler) Save(ctx context.Context) (*models.LeadForm, error) {
	if a.leadType == "" {
		return nil, ErrNoTarget
	}
	prev := a.state
	a.state = StateSaving
	payload := a.Payload()

	form, err := a.upsert(ctx, payload)
	if err != nil {
		a.state = StateSaveFailed
		if errors.Is(err, ErrUpdateFallbackFailed) {
			a.log.Error("lead form update fallback failed", zap.String("bank", a.bankID), zap.Error(err))
			a.notifyError(err, "Lead form already exists and could not be updated")
		} else {
			a.log.Error("failed to save lead form", zap.String("bank", a.bankID), zap.String("previous_state", string(prev)), zap.Error(err))
			a.notifyError(err, "Failed to save lead form")
		}
		return nil, err
	}

	a.apply(form)
	a.state = StateLoaded
	if a.hub != nil {
		a.hub.Success(fmt.Sprintf("Lead form %q saved", form.Name))
	}
	return form, nil
}

func (a *Assembler) upsert(ctx context.Context, payload api.LeadFormPayload) (*models.LeadForm, error) {
	if a.formID != "" {
		return a.backend.Update(ctx, a.formID, payload)
	}

	form, err := a.backend.Create(ctx, payload)
	if err == nil {
		return form, nil
	}
	if !apperrors.IsConflict(err) {
		return nil, err
	}

	a.log.Warn("lead form already exists, updating instead", zap.String("bank", a.bankID))
	existing, ferr := a.fetch(ctx)
	if ferr != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFallbackFailed, ferr)
	}
	form, err = a.backend.Update(ctx, existing.ID, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpdateFallbackFailed, err)
	}
	return form, nil
}

func (a *Assembler) notifyError(err error, message string) {
	if a.hub == nil || apperrors.AlreadyNotified(err) {
		return
	}
	a.hub.Error(message)
}
