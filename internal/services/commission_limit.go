package services

import (
	"strings"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
)

type CommissionLimitService struct {
	records[models.FranchiseCommissionLimit]
}

func NewCommissionLimitService() *CommissionLimitService {
	return &CommissionLimitService{records[models.FranchiseCommissionLimit]{name: "commission limits"}}
}

// CommissionLimitInput is the create and update payload
type CommissionLimitInput struct {
	FranchiseID   string  `json:"franchiseId"`
	FranchiseName string  `json:"franchiseName"`
	BankID        string  `json:"bankId"`
	LimitPercent  float64 `json:"limitPercent"`
	Status        string  `json:"status"`
}

func (in CommissionLimitInput) apply(l *models.FranchiseCommissionLimit) error {
	errs := requireValues("franchiseId", in.FranchiseID)
	if in.LimitPercent < 0 || in.LimitPercent > 100 {
		errs = append(errs, apperrors.NewValidation("limitPercent", "limit must be between 0 and 100"))
	}
	if err := errs.OrNil(); err != nil {
		return err
	}
	l.FranchiseID = in.FranchiseID
	l.FranchiseName = strings.TrimSpace(in.FranchiseName)
	l.BankID = in.BankID
	l.LimitPercent = in.LimitPercent
	l.Status = defaultStatus(in.Status)
	return nil
}

func (s *CommissionLimitService) GetAll(filter ListFilter) ([]models.FranchiseCommissionLimit, error) {
	return s.list("franchise_name ASC", filter.scope("franchise_name"))
}

func (s *CommissionLimitService) Get(id string) (*models.FranchiseCommissionLimit, error) {
	return s.get(id)
}

func (s *CommissionLimitService) Create(in CommissionLimitInput) (*models.FranchiseCommissionLimit, error) {
	limit := &models.FranchiseCommissionLimit{ID: uuid.New().String()}
	if err := in.apply(limit); err != nil {
		return nil, err
	}
	if err := s.create(limit); err != nil {
		return nil, err
	}
	return limit, nil
}

func (s *CommissionLimitService) Update(id string, in CommissionLimitInput) (*models.FranchiseCommissionLimit, error) {
	limit, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(limit); err != nil {
		return nil, err
	}
	if err := s.save(limit); err != nil {
		return nil, err
	}
	return limit, nil
}

func (s *CommissionLimitService) Delete(id string) error {
	return s.delete(id)
}
