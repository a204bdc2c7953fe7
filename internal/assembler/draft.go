package assembler

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"LF-ADMIN/internal/models"
)

// Draft is the editor state kept between console invocations
type Draft struct {
	LeadType      models.LeadType                  `json:"leadType"`
	BankID        string                           `json:"bankId,omitempty"`
	FormID        string                           `json:"formId,omitempty"`
	Name          string                           `json:"name"`
	Active        bool                             `json:"active"`
	Fields        []Binding                        `json:"fields"`
	DocumentTypes []models.DocumentTypeRequirement `json:"documentTypes"`
}

// Snapshot captures the current editor state
func (a *Assembler) Snapshot() Draft {
	return Draft{
		LeadType:      a.leadType,
		BankID:        a.bankID,
		FormID:        a.formID,
		Name:          a.name,
		Active:        a.active,
		Fields:        append([]Binding(nil), a.fields...),
		DocumentTypes: a.DocumentTypes(),
	}
}

// Restore replaces the editor state with d
func (a *Assembler) Restore(d Draft) {
	a.reset(d.LeadType, d.BankID)
	a.formID = d.FormID
	a.name = d.Name
	a.active = d.Active
	a.fields = append([]Binding(nil), d.Fields...)
	a.docs = append([]models.DocumentTypeRequirement(nil), d.DocumentTypes...)
	a.state = StateEmpty
	if d.FormID != "" {
		a.state = StateLoaded
	}
}

// SaveDraft writes d as JSON to path
func SaveDraft(path string, d Draft) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create draft directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write draft: %w", err)
	}
	return nil
}

// LoadDraft reads a draft written by SaveDraft. A missing file returns
// os.ErrNotExist.
func LoadDraft(path string) (Draft, error) {
	var d Draft
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d, err
		}
		return d, fmt.Errorf("failed to read draft: %w", err)
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("failed to decode draft %s: %w", path, err)
	}
	return d, nil
}
