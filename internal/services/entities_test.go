package services

import (
	"testing"
	"time"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBankService(t *testing.T) {
	testdb.Open(t)
	svc := NewBankService()

	hdfc, err := svc.Create(BankInput{Name: "HDFC Bank", Code: "hdfc"})
	require.NoError(t, err)
	assert.Equal(t, "HDFC", hdfc.Code)
	assert.True(t, hdfc.IsActive)

	axis, err := svc.Create(BankInput{Name: "Axis Bank", IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.NotEmpty(t, axis.Code)

	all, err := svc.GetAll(false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Axis Bank", all[0].Name)

	active, err := svc.GetAll(true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, hdfc.ID, active[0].ID)

	updated, err := svc.Update(axis.ID, BankInput{Name: "Axis", IsActive: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, axis.Code, updated.Code)
	assert.True(t, updated.IsActive)

	_, err = svc.Create(BankInput{})
	assert.True(t, apperrors.IsValidation(err))

	require.NoError(t, svc.Delete(hdfc.ID))
	_, err = svc.Get(hdfc.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserServiceByRole(t *testing.T) {
	testdb.Open(t)
	svc := NewUserService()

	for _, u := range []UserInput{
		{Name: "Asha", Role: models.RoleAgent, Email: "ASHA@example.com"},
		{Name: "Bharat", Role: models.RoleAgent},
		{Name: "Chitra", Role: models.RoleFranchise},
	} {
		_, err := svc.Create(u)
		require.NoError(t, err)
	}

	agents, err := svc.GetAll(models.RoleAgent, 0)
	require.NoError(t, err)
	require.Len(t, agents, 2)
	assert.Equal(t, "asha@example.com", agents[0].Email)
	assert.Equal(t, "active", agents[0].Status)

	limited, err := svc.GetAll("", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = svc.Create(UserInput{Name: "Dev", Role: "superuser"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestForm16Service(t *testing.T) {
	testdb.Open(t)
	svc := NewForm16Service()

	doc, err := svc.Create(Form16Input{AgentID: "a1", AgentName: "Asha", FinancialYear: "2024-2025"})
	require.NoError(t, err)
	assert.Equal(t, models.PendingAttachment, doc.Attachment)
	assert.Equal(t, models.Form16TypeForm16, doc.DocumentType)

	updated, err := svc.Update(doc.ID, Form16Input{AgentID: "a1", FinancialYear: "2024-2025", DocumentType: "TDS", Attachment: "documents/form16/x.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "documents/form16/x.pdf", updated.Attachment)
	assert.Equal(t, models.Form16TypeTDS, updated.DocumentType)

	_, err = svc.Create(Form16Input{AgentID: "a1", FinancialYear: "2024-2026"})
	assert.True(t, apperrors.IsValidation(err))
	_, err = svc.Create(Form16Input{AgentID: "a1", FinancialYear: "2024-2025", DocumentType: "payslip"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.Create(Form16Input{AgentID: "a2", AgentName: "Bharat", FinancialYear: "2023-2024"})
	require.NoError(t, err)

	mine, err := svc.GetAll(ListFilter{}, "a1")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	searched, err := svc.GetAll(ListFilter{Search: "bhar"}, "")
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "a2", searched[0].AgentID)
}

func TestBannerService(t *testing.T) {
	testdb.Open(t)
	svc := NewBannerService()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-48 * time.Hour)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	_, err := svc.Create(BannerInput{Title: "Always", ImageURL: "a.png", SortOrder: 2})
	require.NoError(t, err)
	_, err = svc.Create(BannerInput{Title: "Current", ImageURL: "b.png", SortOrder: 1, StartDate: &yesterday, EndDate: &tomorrow})
	require.NoError(t, err)
	_, err = svc.Create(BannerInput{Title: "Expired", ImageURL: "c.png", StartDate: &past, EndDate: &yesterday})
	require.NoError(t, err)
	_, err = svc.Create(BannerInput{Title: "Hidden", ImageURL: "d.png", Status: "inactive"})
	require.NoError(t, err)

	live, err := svc.Live()
	require.NoError(t, err)
	require.Len(t, live, 2)
	assert.Equal(t, "Current", live[0].Title)
	assert.Equal(t, "Always", live[1].Title)

	inactive, err := svc.GetAll(ListFilter{Status: "inactive"})
	require.NoError(t, err)
	assert.Len(t, inactive, 1)

	_, err = svc.Create(BannerInput{Title: "Bad", ImageURL: "e.png", StartDate: &tomorrow, EndDate: &yesterday})
	assert.True(t, apperrors.IsValidation(err))
}

func TestSubAgentService(t *testing.T) {
	testdb.Open(t)
	svc := NewSubAgentService()

	a, err := svc.Create(SubAgentInput{Name: "Ravi", FranchiseID: "f1", Mobile: " 9876543210 "})
	require.NoError(t, err)
	assert.Equal(t, "9876543210", a.Mobile)
	_, err = svc.Create(SubAgentInput{Name: "Meena", FranchiseID: "f2"})
	require.NoError(t, err)

	f1, err := svc.GetAll(ListFilter{}, "f1")
	require.NoError(t, err)
	assert.Len(t, f1, 1)

	_, err = svc.Update(a.ID, SubAgentInput{Name: "Ravi K", FranchiseID: "f1", Status: "Inactive"})
	require.NoError(t, err)
	got, err := svc.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "inactive", got.Status)

	_, err = svc.Create(SubAgentInput{Name: "No franchise"})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCommissionLimitValidation(t *testing.T) {
	testdb.Open(t)
	svc := NewCommissionLimitService()

	limit, err := svc.Create(CommissionLimitInput{FranchiseID: "f1", FranchiseName: "North", LimitPercent: 2.5})
	require.NoError(t, err)

	_, err = svc.Create(CommissionLimitInput{FranchiseID: "f1", LimitPercent: 101})
	assert.True(t, apperrors.IsValidation(err))
	_, err = svc.Update(limit.ID, CommissionLimitInput{FranchiseID: "f1", LimitPercent: -1})
	assert.True(t, apperrors.IsValidation(err))

	updated, err := svc.Update(limit.ID, CommissionLimitInput{FranchiseID: "f1", FranchiseName: "North", LimitPercent: 100})
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.LimitPercent)
}

func TestInvoiceWorkflow(t *testing.T) {
	testdb.Open(t)
	svc := NewInvoiceService()

	inv, err := svc.Create(InvoiceInput{AgentID: "a1", AgentName: "Asha", Amount: 1500})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceDraft, inv.Status)
	assert.Contains(t, inv.InvoiceNumber, "INV-")

	_, err = svc.UpdateStatus(inv.ID, models.InvoicePaid)
	assert.True(t, apperrors.IsValidation(err))

	for _, status := range []string{models.InvoiceSubmitted, models.InvoiceApproved, models.InvoicePaid} {
		inv, err = svc.UpdateStatus(inv.ID, status)
		require.NoError(t, err)
	}
	assert.Equal(t, models.InvoicePaid, inv.Status)

	_, err = svc.Create(InvoiceInput{AgentID: "a1", Amount: 0})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.UpdateStatus("missing", models.InvoiceSubmitted)
	assert.ErrorIs(t, err, ErrNotFound)
}
