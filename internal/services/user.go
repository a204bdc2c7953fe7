package services

import (
	"strings"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var knownRoles = map[string]bool{
	models.RoleAdmin:               true,
	models.RoleAgent:               true,
	models.RoleFranchise:           true,
	models.RoleRelationshipManager: true,
	models.RoleRegionalManager:     true,
	models.RoleAccountsManager:     true,
}

type UserService struct {
	records[models.User]
}

func NewUserService() *UserService {
	return &UserService{records[models.User]{name: "users"}}
}

// UserInput is the create payload
type UserInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile"`
	Role        string `json:"role"`
	FranchiseID string `json:"franchiseId"`
	Status      string `json:"status"`
}

// GetAll lists users, optionally for one role. limit <= 0 means no limit.
func (s *UserService) GetAll(role string, limit int) ([]models.User, error) {
	scopes := []func(*gorm.DB) *gorm.DB{ListFilter{Limit: limit}.scope()}
	if role != "" {
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB { return db.Where("role = ?", role) })
	}
	return s.list("name ASC", scopes...)
}

func (s *UserService) Get(id string) (*models.User, error) {
	return s.get(id)
}

func (s *UserService) Create(in UserInput) (*models.User, error) {
	errs := requireValues("name", in.Name, "role", in.Role)
	if in.Role != "" && !knownRoles[in.Role] {
		errs = append(errs, apperrors.NewValidation("role", "unknown role "+in.Role))
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		Mobile:      strings.TrimSpace(in.Mobile),
		Role:        in.Role,
		FranchiseID: in.FranchiseID,
		Status:      defaultStatus(in.Status),
	}
	if err := s.create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func defaultStatus(status string) string {
	if status = strings.TrimSpace(status); status == "" {
		return "active"
	}
	return strings.ToLower(status)
}

func whereActive(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}
