package services

import (
	"errors"
	"fmt"
	"strings"

	"LF-ADMIN/internal"
	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/leadform"
	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// "key" is reserved in MySQL, so the column goes through gorm's quoting
var byKey = clause.OrderByColumn{Column: clause.Column{Name: "key"}}

type FieldDefinitionService struct{}

func NewFieldDefinitionService() *FieldDefinitionService {
	return &FieldDefinitionService{}
}

// FieldDefinitionInput is the create payload. Options may arrive either as a
// list or as a comma separated string.
type FieldDefinitionInput struct {
	Key          string               `json:"key"`
	Label        string               `json:"label"`
	Type         models.FieldType     `json:"type"`
	Required     bool                 `json:"required"`
	IsSearchable bool                 `json:"isSearchable"`
	Description  string               `json:"description"`
	Options      []string             `json:"options"`
	OptionsText  string               `json:"optionsText"`
	Category     models.FieldCategory `json:"category"`
}

// Validate normalizes the key and checks required values
func (in *FieldDefinitionInput) Validate() error {
	var errs apperrors.ValidationErrors

	in.Key = leadform.NormalizeKey(in.Key)
	in.Label = strings.TrimSpace(in.Label)
	if in.Type == "" {
		in.Type = models.FieldTypeText
	}

	switch {
	case in.Key == "":
		errs = append(errs, apperrors.NewValidation("key", "key is required"))
	case !leadform.ValidKey(in.Key):
		errs = append(errs, apperrors.NewValidation("key", "key may only contain a-z, 0-9 and _"))
	}
	if in.Label == "" {
		errs = append(errs, apperrors.NewValidation("label", "label is required"))
	}
	if !in.Type.Valid() {
		errs = append(errs, apperrors.NewValidation("type", fmt.Sprintf("unsupported field type %q", in.Type)))
	}
	return errs.OrNil()
}

func (in *FieldDefinitionInput) options() []string {
	if in.Type != models.FieldTypeSelect {
		return []string{}
	}
	var opts []string
	if len(in.Options) > 0 {
		opts = leadform.ParseOptions(strings.Join(in.Options, ","))
	} else {
		opts = leadform.ParseOptions(in.OptionsText)
	}
	if opts == nil {
		return []string{}
	}
	return opts
}

// List returns every field definition ordered by key
func (s *FieldDefinitionService) List() ([]models.FieldDefinition, error) {
	var defs []models.FieldDefinition
	if err := internal.DB.Order(byKey).Find(&defs).Error; err != nil {
		return nil, fmt.Errorf("failed to get field definitions: %w", err)
	}
	return defs, nil
}

// GetByKey returns the definition stored under a normalized key
func (s *FieldDefinitionService) GetByKey(key string) (*models.FieldDefinition, error) {
	key = leadform.NormalizeKey(key)
	if key == "" {
		return nil, ErrNotFound
	}
	var def models.FieldDefinition
	if err := internal.DB.Where(&models.FieldDefinition{Key: key}).First(&def).Error; err != nil {
		return nil, lookupErr(err)
	}
	return &def, nil
}

// Create stores a definition, replacing the one with the same key if present.
// It reports whether a new record was created.
func (s *FieldDefinitionService) Create(in FieldDefinitionInput) (*models.FieldDefinition, bool, error) {
	if err := in.Validate(); err != nil {
		return nil, false, err
	}

	var def models.FieldDefinition
	created := false
	err := internal.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where(&models.FieldDefinition{Key: in.Key}).First(&def).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			def = models.FieldDefinition{ID: uuid.New().String(), Key: in.Key}
			created = true
		}

		def.Label = in.Label
		def.Type = in.Type
		def.Required = in.Required
		def.IsSearchable = in.IsSearchable
		def.Description = strings.TrimSpace(in.Description)
		def.Options = in.options()
		def.Category = in.Category

		return tx.Save(&def).Error
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to save field definition: %w", err)
	}
	return &def, created, nil
}
