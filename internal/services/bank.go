package services

import (
	"strings"

	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
)

type BankService struct {
	records[models.Bank]
}

func NewBankService() *BankService {
	return &BankService{records[models.Bank]{name: "banks"}}
}

// BankInput is the create and update payload
type BankInput struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	IsActive *bool  `json:"isActive"`
}

func (in BankInput) apply(b *models.Bank) error {
	if err := requireValues("name", in.Name).OrNil(); err != nil {
		return err
	}
	b.Name = strings.TrimSpace(in.Name)
	b.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	if in.IsActive != nil {
		b.IsActive = *in.IsActive
	}
	return nil
}

// GetAll returns banks by name; activeOnly hides disabled partners
func (s *BankService) GetAll(activeOnly bool) ([]models.Bank, error) {
	if activeOnly {
		return s.list("name ASC", whereActive)
	}
	return s.list("name ASC")
}

func (s *BankService) Get(id string) (*models.Bank, error) {
	return s.get(id)
}

func (s *BankService) Create(in BankInput) (*models.Bank, error) {
	bank := &models.Bank{ID: uuid.New().String(), IsActive: true}
	if err := in.apply(bank); err != nil {
		return nil, err
	}
	if bank.Code == "" {
		bank.Code = bank.ID[:8]
	}
	if err := s.create(bank); err != nil {
		return nil, err
	}
	return bank, nil
}

func (s *BankService) Update(id string, in BankInput) (*models.Bank, error) {
	bank, err := s.get(id)
	if err != nil {
		return nil, err
	}
	code := bank.Code
	if err := in.apply(bank); err != nil {
		return nil, err
	}
	if bank.Code == "" {
		bank.Code = code
	}
	if err := s.save(bank); err != nil {
		return nil, err
	}
	return bank, nil
}

func (s *BankService) Delete(id string) error {
	return s.delete(id)
}
