package models

import (
	"time"

	"gorm.io/datatypes"
)

// LeadType distinguishes per-bank lead forms from the standalone new lead form
type LeadType string

const (
	LeadTypeBank    LeadType = "bank"
	LeadTypeNewLead LeadType = "new_lead"
)

// Valid reports whether t is a known lead type
func (t LeadType) Valid() bool {
	return t == LeadTypeBank || t == LeadTypeNewLead
}

// Default lead form names per lead type
const (
	DefaultNewLeadFormName = "New Lead Form"
	DefaultBankFormName    = "Bank Lead Form"
)

// DefaultFormName is used when a form is saved without a name
func DefaultFormName(t LeadType) string {
	if t == LeadTypeNewLead {
		return DefaultNewLeadFormName
	}
	return DefaultBankFormName
}

// LeadFormField is a field definition snapshot bound into one lead form.
// Values are decoupled from the registry once attached.
type LeadFormField struct {
	Key          string    `json:"key"`
	Label        string    `json:"label"`
	Type         FieldType `json:"type"`
	Required     bool      `json:"required"`
	IsSearchable bool      `json:"isSearchable"`
	Description  string    `json:"description,omitempty"`
	Options      []string  `json:"options"`
	Order        int       `json:"order"`
}

// DocumentTypeRequirement is a document an agent has to attach to a lead
type DocumentTypeRequirement struct {
	Key      string `json:"key"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Order    int    `json:"order"`
}

// LeadForm is the configured set of agent-visible fields and required documents
// for one bank, or for the new lead flow when Bank is nil
type LeadForm struct {
	ID            string                                       `gorm:"primaryKey;size:36" json:"id"`
	LeadType      LeadType                                     `gorm:"type:varchar(20);index;not null" json:"leadType"`
	Bank          *string                                      `gorm:"column:bank_id;size:36;index" json:"bank"`
	Name          string                                       `json:"name"`
	AgentFields   datatypes.JSONSlice[LeadFormField]           `json:"agentFields"`
	Fields        []LeadFormField                              `gorm:"-" json:"fields,omitempty"` // legacy payloads only
	DocumentTypes datatypes.JSONSlice[DocumentTypeRequirement] `json:"documentTypes"`
	Active        bool                                         `gorm:"index" json:"active"`
	CreatedAt     time.Time                                    `json:"createdAt"`
	UpdatedAt     time.Time                                    `json:"updatedAt"`
}

func (LeadForm) TableName() string {
	return "lead_forms"
}

// BankID returns the referenced bank id or "" for new lead forms
func (f *LeadForm) BankID() string {
	if f.Bank == nil {
		return ""
	}
	return *f.Bank
}
