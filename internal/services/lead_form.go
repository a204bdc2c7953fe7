package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"LF-ADMIN/internal"
	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/leadform"
	"LF-ADMIN/internal/metrics"
	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LeadFormService persists lead forms. Every save runs the field policy again
// so excluded fields never reach the database.
type LeadFormService struct {
	policy leadform.Policy
	log    *zap.Logger
}

func NewLeadFormService(log *zap.Logger) *LeadFormService {
	if log == nil {
		log = zap.NewNop()
	}
	return &LeadFormService{policy: leadform.DefaultPolicy(), log: log}
}

// LeadFormInput is the create and update payload
type LeadFormInput struct {
	LeadType      models.LeadType                  `json:"leadType"`
	Bank          *string                          `json:"bank"`
	Name          string                           `json:"name"`
	AgentFields   []models.LeadFormField           `json:"agentFields"`
	Fields        []models.LeadFormField           `json:"fields"` // older clients
	DocumentTypes []models.DocumentTypeRequirement `json:"documentTypes"`
	Active        *bool                            `json:"active"`
}

func (in *LeadFormInput) validate() error {
	var errs apperrors.ValidationErrors
	if !in.LeadType.Valid() {
		errs = append(errs, apperrors.NewValidation("leadType", "leadType must be bank or new_lead"))
	}
	if in.LeadType == models.LeadTypeNewLead {
		in.Bank = nil
	}
	if in.LeadType == models.LeadTypeBank && (in.Bank == nil || strings.TrimSpace(*in.Bank) == "") {
		errs = append(errs, apperrors.NewValidation("bank", "bank is required for bank lead forms"))
	}
	for i, f := range in.agentFields() {
		if strings.TrimSpace(f.Key) == "" {
			errs = append(errs, apperrors.NewValidation(fmt.Sprintf("agentFields[%d].key", i), "key is required"))
		}
	}
	for i, d := range in.DocumentTypes {
		if strings.TrimSpace(d.Key) == "" && strings.TrimSpace(d.Name) == "" {
			errs = append(errs, apperrors.NewValidation(fmt.Sprintf("documentTypes[%d]", i), "key or name is required"))
		}
	}
	return errs.OrNil()
}

func (in *LeadFormInput) agentFields() []models.LeadFormField {
	if in.AgentFields != nil {
		return in.AgentFields
	}
	return in.Fields
}

// sanitizeFields applies the save-time policy, drops duplicate keys and
// orders the bindings by order then key
func (s *LeadFormService) sanitizeFields(t models.LeadType, fields []models.LeadFormField) []models.LeadFormField {
	ctx := leadform.ContextFor(string(t))
	kept := leadform.Filter(fields, func(f models.LeadFormField) leadform.Field {
		return leadform.Field{Key: f.Key, Label: f.Label}
	}, leadform.Options{Context: ctx, Purpose: leadform.PurposeSave, Policy: &s.policy})

	if dropped := len(fields) - len(kept); dropped > 0 {
		metrics.FieldsExcluded.WithLabelValues(string(ctx)).Add(float64(dropped))
		s.log.Debug("lead form fields excluded on save", zap.String("context", string(ctx)), zap.Int("dropped", dropped))
	}

	seen := make(map[string]bool, len(kept))
	out := make([]models.LeadFormField, 0, len(kept))
	for _, f := range kept {
		f.Key = strings.TrimSpace(f.Key)
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		if f.Type == "" {
			f.Type = models.FieldTypeText
		}
		f.Options = leadform.ParseOptions(strings.Join(f.Options, ","))
		if f.Options == nil {
			f.Options = []string{}
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func sanitizeDocumentTypes(docs []models.DocumentTypeRequirement) []models.DocumentTypeRequirement {
	out := make([]models.DocumentTypeRequirement, 0, len(docs))
	for _, d := range docs {
		d.Key = strings.TrimSpace(d.Key)
		d.Name = strings.TrimSpace(d.Name)
		if d.Key == "" {
			d.Key = leadform.NormalizeKey(d.Name)
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// targetScope narrows a query to forms for the same lead type and bank
func targetScope(t models.LeadType, bank *string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("lead_type = ?", t)
		if bank == nil {
			return db.Where("bank_id IS NULL")
		}
		return db.Where("bank_id = ?", *bank)
	}
}

func (s *LeadFormService) activeExists(tx *gorm.DB, t models.LeadType, bank *string, exceptID string) (bool, error) {
	var count int64
	q := tx.Model(&models.LeadForm{}).Scopes(targetScope(t, bank)).Where("active = ?", true)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create stores a new lead form. Only one active form may exist per target.
func (s *LeadFormService) Create(in LeadFormInput) (*models.LeadForm, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	form := &models.LeadForm{
		ID:            uuid.New().String(),
		LeadType:      in.LeadType,
		Bank:          in.Bank,
		Name:          strings.TrimSpace(in.Name),
		AgentFields:   s.sanitizeFields(in.LeadType, in.agentFields()),
		DocumentTypes: sanitizeDocumentTypes(in.DocumentTypes),
		Active:        in.Active == nil || *in.Active,
	}
	if form.Name == "" {
		form.Name = models.DefaultFormName(form.LeadType)
	}

	err := internal.DB.Transaction(func(tx *gorm.DB) error {
		if form.Active {
			exists, err := s.activeExists(tx, form.LeadType, form.Bank, "")
			if err != nil {
				return err
			}
			if exists {
				return ErrLeadFormExists
			}
		}
		return tx.Create(form).Error
	})
	if errors.Is(err, ErrLeadFormExists) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create lead form: %w", err)
	}
	return form, nil
}

// Update replaces the editable parts of a lead form. Lead type and bank may
// change as long as the one-active-form rule still holds.
func (s *LeadFormService) Update(id string, in LeadFormInput) (*models.LeadForm, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var form models.LeadForm
	err := internal.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&form, "id = ?", id).Error; err != nil {
			return lookupErr(err)
		}

		form.LeadType = in.LeadType
		form.Bank = in.Bank
		form.Name = strings.TrimSpace(in.Name)
		if form.Name == "" {
			form.Name = models.DefaultFormName(form.LeadType)
		}
		form.AgentFields = s.sanitizeFields(in.LeadType, in.agentFields())
		form.DocumentTypes = sanitizeDocumentTypes(in.DocumentTypes)
		if in.Active != nil {
			form.Active = *in.Active
		}

		if form.Active {
			exists, err := s.activeExists(tx, form.LeadType, form.Bank, form.ID)
			if err != nil {
				return err
			}
			if exists {
				return ErrLeadFormExists
			}
		}
		return tx.Save(&form).Error
	})
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrLeadFormExists) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update lead form: %w", err)
	}
	return &form, nil
}

// Get returns one lead form by id
func (s *LeadFormService) Get(id string) (*models.LeadForm, error) {
	var form models.LeadForm
	if err := internal.DB.First(&form, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err)
	}
	return &form, nil
}

// forTarget prefers the active form, then the most recently updated one
func (s *LeadFormService) forTarget(t models.LeadType, bank *string) (*models.LeadForm, error) {
	var form models.LeadForm
	err := internal.DB.Scopes(targetScope(t, bank)).
		Order("active DESC").Order("updated_at DESC").
		First(&form).Error
	if err != nil {
		return nil, lookupErr(err)
	}
	return &form, nil
}

// GetByBank returns the lead form configured for a bank
func (s *LeadFormService) GetByBank(bankID string) (*models.LeadForm, error) {
	return s.forTarget(models.LeadTypeBank, &bankID)
}

// GetNewLeadForm returns the form used by the new lead flow
func (s *LeadFormService) GetNewLeadForm() (*models.LeadForm, error) {
	return s.forTarget(models.LeadTypeNewLead, nil)
}

// List returns lead forms, optionally narrowed to one lead type
func (s *LeadFormService) List(leadType models.LeadType) ([]models.LeadForm, error) {
	var forms []models.LeadForm
	q := internal.DB.Order("lead_type ASC").Order("name ASC")
	if leadType != "" {
		q = q.Where("lead_type = ?", leadType)
	}
	if err := q.Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("failed to get lead forms: %w", err)
	}
	return forms, nil
}

// Delete removes a lead form
func (s *LeadFormService) Delete(id string) error {
	res := internal.DB.Delete(&models.LeadForm{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete lead form: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
