package services

import (
	"testing"

	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	testdb.Open(t)

	_, err := NewBankService().Create(BankInput{Name: "HDFC"})
	require.NoError(t, err)
	users := NewUserService()
	for _, role := range []string{models.RoleAgent, models.RoleAgent, models.RoleFranchise} {
		_, err := users.Create(UserInput{Name: "u", Role: role})
		require.NoError(t, err)
	}
	forms := NewLeadFormService(nil)
	_, err = forms.Create(LeadFormInput{LeadType: models.LeadTypeNewLead})
	require.NoError(t, err)
	_, err = forms.Create(LeadFormInput{LeadType: models.LeadTypeNewLead, Active: boolPtr(false)})
	require.NoError(t, err)
	_, err = NewInvoiceService().Create(InvoiceInput{AgentID: "a1", Amount: 10})
	require.NoError(t, err)
	_, err = NewBannerService().Create(BannerInput{Title: "t", ImageURL: "i", Status: "inactive"})
	require.NoError(t, err)

	stats, err := NewStatisticsService().GetDashboardStats()
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Banks)
	assert.Equal(t, int64(1), stats.ActiveLeadForms)
	assert.Equal(t, int64(0), stats.ActiveBanners)
	assert.Equal(t, map[string]int64{models.RoleAgent: 2, models.RoleFranchise: 1}, stats.UsersByRole)
	assert.Equal(t, map[string]int64{models.InvoiceDraft: 1}, stats.InvoicesByStatus)
}
