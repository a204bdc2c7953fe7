package console

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"LF-ADMIN/internal/api"
	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/listview"
	"LF-ADMIN/internal/models"
	"LF-ADMIN/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPage(t *testing.T) (*Page, *[]notify.Notification) {
	t.Helper()
	hub := notify.NewHub()
	t.Cleanup(hub.Close)
	var got []notify.Notification
	hub.Subscribe(func(n notify.Notification) { got = append(got, n) })
	return NewPage(hub, nil), &got
}

func TestLoadPage(t *testing.T) {
	p, got := newPage(t)

	items, err := LoadPage(context.Background(), p, "banners", func(context.Context) ([]models.Banner, error) {
		return []models.Banner{{Title: "a"}}, nil
	})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Empty(t, *got)

	_, err = LoadPage(context.Background(), p, "banners", func(context.Context) ([]models.Banner, error) {
		return nil, &apperrors.NetworkError{Op: "load banners", Status: 500}
	})
	require.Error(t, err)
	require.Len(t, *got, 1)
	assert.Equal(t, "Failed to load banners", (*got)[0].Message)
}

func TestLoadPageSkipsNotifiedPermissionErrors(t *testing.T) {
	p, got := newPage(t)
	ne := &apperrors.NetworkError{Op: "load invoices", Status: 403}
	apperrors.MarkNotified(ne)

	_, err := LoadPage(context.Background(), p, "invoices", func(context.Context) ([]models.Invoice, error) {
		return nil, ne
	})
	require.Error(t, err)
	assert.Empty(t, *got)
}

type fakeUsers struct {
	calls []string
	fail  map[string]bool
}

func (f *fakeUsers) GetAll(_ context.Context, role string, limit int) ([]models.User, error) {
	f.calls = append(f.calls, role)
	if f.fail[role] {
		return nil, &apperrors.NetworkError{Op: "load users", Status: 500}
	}
	return []models.User{{ID: role + "-1", Role: role}}, nil
}

func TestFetchUsersByRolesIsSequentialAndPartial(t *testing.T) {
	users := &fakeUsers{fail: map[string]bool{models.RoleRegionalManager: true}}
	roles := []string{models.RoleAgent, models.RoleFranchise, models.RoleRegionalManager, models.RoleAccountsManager}

	all, err := FetchUsersByRoles(context.Background(), users, roles, 1000, nil)
	assert.Equal(t, roles, users.calls)
	require.Len(t, all, 3)
	assert.Equal(t, "accounts_manager-1", all[2].ID)

	var batch *apperrors.PartialBatchFailure
	require.True(t, errors.As(err, &batch))
	require.Len(t, batch.Failures, 1)
	assert.Equal(t, models.RoleRegionalManager, batch.Failures[0].Item)
}

func TestFetchUsersByRolesAllSucceed(t *testing.T) {
	all, err := FetchUsersByRoles(context.Background(), &fakeUsers{}, []string{models.RoleAgent}, 0, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

type fakeForm16 struct {
	created   []Form16Input
	updated   map[string]Form16Input
	updateErr error
}

func (f *fakeForm16) Create(_ context.Context, payload any) (*models.Form16, error) {
	in := payload.(Form16Input)
	f.created = append(f.created, in)
	return &models.Form16{ID: "f16-1", AgentID: in.AgentID, Attachment: in.Attachment}, nil
}

func (f *fakeForm16) Update(_ context.Context, id string, payload any) (*models.Form16, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	in := payload.(Form16Input)
	if f.updated == nil {
		f.updated = map[string]Form16Input{}
	}
	f.updated[id] = in
	return &models.Form16{ID: id, AgentID: in.AgentID, Attachment: in.Attachment}, nil
}

type fakeUploader struct {
	err        error
	recordType string
	recordID   string
	body       string
}

func (f *fakeUploader) Upload(_ context.Context, filename string, r io.Reader, recordType, recordID string) (*api.Upload, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(r)
	f.body = string(data)
	f.recordType, f.recordID = recordType, recordID
	return &api.Upload{FilePath: "documents/form16/" + recordID + "/" + filename}, nil
}

var form16Input = Form16Input{AgentID: "agent-1", AgentName: "Ravi", FinancialYear: "2024-2025", DocumentType: "form16"}

func TestCreateForm16WithAttachment(t *testing.T) {
	p, got := newPage(t)
	store := &fakeForm16{}
	up := &fakeUploader{}

	doc, err := CreateForm16WithAttachment(context.Background(), p, store, up, form16Input, "cert.pdf", strings.NewReader("%PDF"))
	require.NoError(t, err)

	require.Len(t, store.created, 1)
	assert.Equal(t, models.PendingAttachment, store.created[0].Attachment)
	assert.Equal(t, "form16", up.recordType)
	assert.Equal(t, "f16-1", up.recordID)
	assert.Equal(t, "%PDF", up.body)
	assert.Equal(t, "documents/form16/f16-1/cert.pdf", doc.Attachment)
	assert.Equal(t, "documents/form16/f16-1/cert.pdf", store.updated["f16-1"].Attachment)
	require.Len(t, *got, 1)
	assert.Equal(t, notify.LevelSuccess, (*got)[0].Level)
}

func TestCreateForm16UploadFailureLeavesPlaceholder(t *testing.T) {
	p, got := newPage(t)
	store := &fakeForm16{}
	up := &fakeUploader{err: &apperrors.NetworkError{Op: "upload cert.pdf", Status: 500}}

	doc, err := CreateForm16WithAttachment(context.Background(), p, store, up, form16Input, "cert.pdf", strings.NewReader("x"))
	require.Error(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, models.PendingAttachment, doc.Attachment)
	assert.Empty(t, store.updated)
	require.Len(t, *got, 1)
	assert.Equal(t, notify.LevelError, (*got)[0].Level)
}

func TestCreateForm16ValidatesFirst(t *testing.T) {
	p, _ := newPage(t)
	store := &fakeForm16{}

	_, err := CreateForm16WithAttachment(context.Background(), p, store, &fakeUploader{}, Form16Input{}, "cert.pdf", strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, store.created)
}

func TestViewsFilterByDateAndStatus(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	items := []models.SubAgent{
		{Name: "Asha", Status: "active", CreatedAt: day1},
		{Name: "Bala", Status: "inactive", CreatedAt: day1},
		{Name: "Chitra", Status: "active", CreatedAt: day2},
	}

	res := SubAgentView().Apply(items, listview.Query{
		Equals:    map[string]string{"status": "active", "date": "2026-03-01"},
		SortKey:   "name",
		Direction: listview.Desc,
	})
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Asha", res.Items[0].Name)
}

func TestInvoiceViewSortsAmountsNumerically(t *testing.T) {
	items := []models.Invoice{{InvoiceNumber: "A", Amount: 900}, {InvoiceNumber: "B", Amount: 10000}, {InvoiceNumber: "C", Amount: 25.5}}

	res := InvoiceView().Apply(items, listview.Query{SortKey: "amount", Direction: listview.Asc})
	var got []string
	for _, inv := range res.Items {
		got = append(got, inv.InvoiceNumber)
	}
	assert.Equal(t, []string{"C", "A", "B"}, got)
}

func TestTableRender(t *testing.T) {
	tbl := Table{Headers: []string{"KEY", "LABEL"}}
	tbl.Add("pan", "PAN")
	tbl.Add("loan_amount", "Loan Amount")

	var buf bytes.Buffer
	require.NoError(t, tbl.Render(&buf))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "KEY          LABEL", lines[0])
	assert.Equal(t, "loan_amount  Loan Amount", lines[2])
}
