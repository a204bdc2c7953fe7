package services

import (
	"fmt"
	"strings"
	"time"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
)

// invoiceTransitions lists the statuses an invoice may move to from each status
var invoiceTransitions = map[string][]string{
	models.InvoiceDraft:     {models.InvoiceSubmitted, models.InvoiceRejected},
	models.InvoiceSubmitted: {models.InvoiceApproved, models.InvoiceRejected},
	models.InvoiceApproved:  {models.InvoicePaid, models.InvoiceRejected},
	models.InvoiceRejected:  {models.InvoiceDraft},
}

type InvoiceService struct {
	records[models.Invoice]
}

func NewInvoiceService() *InvoiceService {
	return &InvoiceService{records[models.Invoice]{name: "invoices"}}
}

// InvoiceInput is the create payload
type InvoiceInput struct {
	InvoiceNumber string     `json:"invoiceNumber"`
	AgentID       string     `json:"agentId"`
	AgentName     string     `json:"agentName"`
	Amount        float64    `json:"amount"`
	IssuedAt      *time.Time `json:"issuedAt"`
}

func (s *InvoiceService) GetAll(filter ListFilter) ([]models.Invoice, error) {
	return s.list("issued_at DESC", filter.scope("invoice_number", "agent_name"))
}

func (s *InvoiceService) Get(id string) (*models.Invoice, error) {
	return s.get(id)
}

func (s *InvoiceService) Create(in InvoiceInput) (*models.Invoice, error) {
	errs := requireValues("agentId", in.AgentID)
	if in.Amount <= 0 {
		errs = append(errs, apperrors.NewValidation("amount", "amount must be positive"))
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		AgentID:       in.AgentID,
		AgentName:     strings.TrimSpace(in.AgentName),
		Amount:        in.Amount,
		Status:        models.InvoiceDraft,
		IssuedAt:      time.Now(),
	}
	if in.IssuedAt != nil {
		inv.IssuedAt = *in.IssuedAt
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = fmt.Sprintf("INV-%s-%s", inv.IssuedAt.Format("20060102"), strings.ToUpper(inv.ID[:6]))
	}
	if err := s.create(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// UpdateStatus moves an invoice along its workflow
func (s *InvoiceService) UpdateStatus(id, status string) (*models.Invoice, error) {
	inv, err := s.get(id)
	if err != nil {
		return nil, err
	}
	status = strings.ToLower(strings.TrimSpace(status))
	allowed := false
	for _, next := range invoiceTransitions[inv.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.NewValidation("status", fmt.Sprintf("cannot move invoice from %s to %s", inv.Status, status))
	}
	inv.Status = status
	if err := s.save(inv); err != nil {
		return nil, err
	}
	return inv, nil
}
