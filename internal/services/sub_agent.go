package services

import (
	"strings"

	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubAgentService struct {
	records[models.SubAgent]
}

func NewSubAgentService() *SubAgentService {
	return &SubAgentService{records[models.SubAgent]{name: "sub agents"}}
}

// SubAgentInput is the create and update payload
type SubAgentInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	FranchiseID string `json:"franchiseId"`
	Status      string `json:"status"`
}

func (in SubAgentInput) apply(a *models.SubAgent) error {
	if err := requireValues("name", in.Name, "franchiseId", in.FranchiseID).OrNil(); err != nil {
		return err
	}
	a.Name = strings.TrimSpace(in.Name)
	a.Email = strings.ToLower(strings.TrimSpace(in.Email))
	a.Mobile = strings.TrimSpace(in.Mobile)
	a.FranchiseID = in.FranchiseID
	a.Status = defaultStatus(in.Status)
	return nil
}

// GetAll lists sub agents; franchiseID narrows to one franchise
func (s *SubAgentService) GetAll(filter ListFilter, franchiseID string) ([]models.SubAgent, error) {
	scopes := []func(*gorm.DB) *gorm.DB{filter.scope("name", "email", "mobile")}
	if franchiseID != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("franchise_id = ?", franchiseID) })
	}
	return s.list("name ASC", scopes...)
}

func (s *SubAgentService) Get(id string) (*models.SubAgent, error) {
	return s.get(id)
}

func (s *SubAgentService) Create(in SubAgentInput) (*models.SubAgent, error) {
	agent := &models.SubAgent{ID: uuid.New().String()}
	if err := in.apply(agent); err != nil {
		return nil, err
	}
	if err := s.create(agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *SubAgentService) Update(id string, in SubAgentInput) (*models.SubAgent, error) {
	agent, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(agent); err != nil {
		return nil, err
	}
	if err := s.save(agent); err != nil {
		return nil, err
	}
	return agent, nil
}

func (s *SubAgentService) Delete(id string) error {
	return s.delete(id)
}
