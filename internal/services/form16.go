package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var financialYearPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

type Form16Service struct {
	records[models.Form16]
}

func NewForm16Service() *Form16Service {
	return &Form16Service{records[models.Form16]{name: "form16 documents"}}
}

// Form16Input is the create and update payload
type Form16Input struct {
	AgentID       string `json:"agentId"`
	AgentName     string `json:"agentName"`
	FinancialYear string `json:"financialYear"`
	DocumentType  string `json:"documentType"`
	Attachment    string `json:"attachment"`
	Status        string `json:"status"`
	Remarks       string `json:"remarks"`
}

// validFinancialYear accepts "2024-2025" style consecutive years
func validFinancialYear(fy string) bool {
	m := financialYearPattern.FindStringSubmatch(fy)
	if m == nil {
		return false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	return end == start+1
}

func (in Form16Input) apply(doc *models.Form16) error {
	errs := requireValues("agentId", in.AgentID, "financialYear", in.FinancialYear)
	if in.FinancialYear != "" && !validFinancialYear(in.FinancialYear) {
		errs = append(errs, apperrors.NewValidation("financialYear", "financial year must look like 2024-2025"))
	}
	docType := strings.ToLower(strings.TrimSpace(in.DocumentType))
	if docType == "" {
		docType = models.Form16TypeForm16
	}
	if docType != models.Form16TypeForm16 && docType != models.Form16TypeTDS {
		errs = append(errs, apperrors.NewValidation("documentType", fmt.Sprintf("unsupported document type %q", in.DocumentType)))
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	doc.AgentID = in.AgentID
	doc.AgentName = strings.TrimSpace(in.AgentName)
	doc.FinancialYear = in.FinancialYear
	doc.DocumentType = docType
	if in.Attachment != "" {
		doc.Attachment = in.Attachment
	}
	if doc.Attachment == "" {
		doc.Attachment = models.PendingAttachment
	}
	doc.Status = defaultStatus(in.Status)
	doc.Remarks = strings.TrimSpace(in.Remarks)
	return nil
}

// GetAll lists documents, newest first. agentID narrows to one agent.
func (s *Form16Service) GetAll(filter ListFilter, agentID string) ([]models.Form16, error) {
	scopes := []func(*gorm.DB) *gorm.DB{filter.scope("agent_name", "financial_year")}
	if agentID != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("agent_id = ?", agentID) })
	}
	return s.list("created_at DESC", scopes...)
}

func (s *Form16Service) Get(id string) (*models.Form16, error) {
	return s.get(id)
}

// Create stores a document. A missing attachment is stored as the pending
// placeholder so the file can be uploaded against the new id.
func (s *Form16Service) Create(in Form16Input) (*models.Form16, error) {
	doc := &models.Form16{ID: uuid.New().String()}
	if err := in.apply(doc); err != nil {
		return nil, err
	}
	if err := s.create(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Form16Service) Update(id string, in Form16Input) (*models.Form16, error) {
	doc, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(doc); err != nil {
		return nil, err
	}
	if err := s.save(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Form16Service) Delete(id string) error {
	return s.delete(id)
}
