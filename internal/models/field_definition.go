package models

import (
	"time"

	"gorm.io/datatypes"
)

// FieldType is the input type a lead form field renders as
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDate     FieldType = "date"
	FieldTypeSelect   FieldType = "select"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTel      FieldType = "tel"
	FieldTypeFile     FieldType = "file"
)

// Valid reports whether t is one of the supported field types
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDate, FieldTypeSelect,
		FieldTypeTextarea, FieldTypeEmail, FieldTypeTel, FieldTypeFile:
		return true
	}
	return false
}

// FieldCategory groups definitions in the selection list
type FieldCategory string

const (
	FieldCategoryPersonal FieldCategory = "personal"
	FieldCategoryBank     FieldCategory = "bank"
	FieldCategoryOther    FieldCategory = "other"
)

// FieldDefinition is a reusable, named field that can be attached to any lead form
type FieldDefinition struct {
	ID           string                      `gorm:"primaryKey;size:36" json:"id"`
	Key          string                      `gorm:"uniqueIndex;size:191;not null" json:"key"`    // canonical identifier, [a-z0-9_]+
	Label        string                      `gorm:"not null" json:"label"`                       // display name
	Type         FieldType                   `gorm:"type:varchar(20);default:'text'" json:"type"` // input type
	Required     bool                        `json:"required"`                                    // required by default when attached
	IsSearchable bool                        `json:"isSearchable"`                                // indexed by the backend
	Description  string                      `json:"description,omitempty"`                       // free text
	Options      datatypes.JSONSlice[string] `json:"options"`                                     // select options, in order
	Category     FieldCategory               `gorm:"type:varchar(20)" json:"category,omitempty"`  // grouping only
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

func (FieldDefinition) TableName() string {
	return "field_definitions"
}
