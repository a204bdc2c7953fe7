package services

import (
	"testing"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldDefinitionCreateNormalizesKey(t *testing.T) {
	testdb.Open(t)
	svc := NewFieldDefinitionService()

	def, created, err := svc.Create(FieldDefinitionInput{Key: "Applicant Email", Label: "Applicant Email", Type: models.FieldTypeEmail})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "applicant_email", def.Key)
	assert.Empty(t, def.Options)

	found, err := svc.GetByKey("APPLICANT   email")
	require.NoError(t, err)
	assert.Equal(t, def.ID, found.ID)
}

func TestFieldDefinitionCreateUpsertsByKey(t *testing.T) {
	testdb.Open(t)
	svc := NewFieldDefinitionService()

	first, _, err := svc.Create(FieldDefinitionInput{Key: "loan_type", Label: "Loan Type", Type: models.FieldTypeSelect, OptionsText: "Home, Personal"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "Personal"}, []string(first.Options))

	second, created, err := svc.Create(FieldDefinitionInput{Key: "Loan Type", Label: "Type of Loan", Type: models.FieldTypeSelect, Options: []string{" Car ", "", "Gold"}})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Type of Loan", second.Label)
	assert.Equal(t, []string{"Car", "Gold"}, []string(second.Options))

	defs, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}

func TestFieldDefinitionOptionsOnlyForSelect(t *testing.T) {
	testdb.Open(t)
	svc := NewFieldDefinitionService()

	def, _, err := svc.Create(FieldDefinitionInput{Key: "city", Label: "City", OptionsText: "a,b"})
	require.NoError(t, err)
	assert.Equal(t, models.FieldTypeText, def.Type)
	assert.Empty(t, def.Options)
}

func TestFieldDefinitionCreateValidation(t *testing.T) {
	testdb.Open(t)
	svc := NewFieldDefinitionService()

	_, _, err := svc.Create(FieldDefinitionInput{Key: "  ", Label: ""})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	var errs apperrors.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)

	_, _, err = svc.Create(FieldDefinitionInput{Key: "pan-number", Label: "PAN"})
	assert.True(t, apperrors.IsValidation(err))

	_, _, err = svc.Create(FieldDefinitionInput{Key: "pan", Label: "PAN", Type: "checkbox"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestFieldDefinitionListSortedByKey(t *testing.T) {
	testdb.Open(t)
	svc := NewFieldDefinitionService()

	for _, key := range []string{"pincode", "address", "mobile"} {
		_, _, err := svc.Create(FieldDefinitionInput{Key: key, Label: key})
		require.NoError(t, err)
	}

	defs, err := svc.List()
	require.NoError(t, err)
	keys := make([]string, 0, len(defs))
	for _, d := range defs {
		keys = append(keys, d.Key)
	}
	assert.Equal(t, []string{"address", "mobile", "pincode"}, keys)

	_, err = svc.GetByKey("unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}
