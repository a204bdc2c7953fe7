package leadform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, "applicant_email", NormalizeKey("Applicant Email"))
	assert.Equal(t, "loan_amount_requested", NormalizeKey("  Loan   Amount\tRequested "))
	assert.Equal(t, "", NormalizeKey("   "))
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("pan_number_2"))
	assert.False(t, ValidKey("lead-name"))
	assert.False(t, ValidKey(""))
}

func TestParseOptions(t *testing.T) {
	assert.Equal(t, []string{"Salaried", "Self Employed", "Business"}, ParseOptions(" Salaried, Self Employed ,,Business, "))
	assert.Nil(t, ParseOptions("  "))
}

func TestJoinOptionsRoundTrip(t *testing.T) {
	opts := []string{"Home Loan", "Personal Loan"}
	assert.Equal(t, "Home Loan, Personal Loan", JoinOptions(opts))
	assert.Equal(t, opts, ParseOptions(JoinOptions(opts)))
}
