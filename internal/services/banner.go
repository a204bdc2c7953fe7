package services

import (
	"strings"
	"time"

	"LF-ADMIN/internal/apperrors"
	"LF-ADMIN/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BannerService struct {
	records[models.Banner]
	now func() time.Time
}

func NewBannerService() *BannerService {
	return &BannerService{records: records[models.Banner]{name: "banners"}, now: time.Now}
}

// BannerInput is the create and update payload
type BannerInput struct {
	Title     string     `json:"title"`
	ImageURL  string     `json:"imageUrl"`
	Link      string     `json:"link"`
	Status    string     `json:"status"`
	SortOrder int        `json:"sortOrder"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

func (in BannerInput) apply(b *models.Banner) error {
	errs := requireValues("title", in.Title, "imageUrl", in.ImageURL)
	if in.StartDate != nil && in.EndDate != nil && in.EndDate.Before(*in.StartDate) {
		errs = append(errs, apperrors.NewValidation("endDate", "end date is before start date"))
	}
	if err := errs.OrNil(); err != nil {
		return err
	}
	b.Title = strings.TrimSpace(in.Title)
	b.ImageURL = strings.TrimSpace(in.ImageURL)
	b.Link = strings.TrimSpace(in.Link)
	b.Status = defaultStatus(in.Status)
	b.SortOrder = in.SortOrder
	b.StartDate = in.StartDate
	b.EndDate = in.EndDate
	return nil
}

// GetAll lists banners in display order
func (s *BannerService) GetAll(filter ListFilter) ([]models.Banner, error) {
	return s.list("sort_order ASC, created_at DESC", filter.scope("title"))
}

// Live returns active banners whose schedule window contains now
func (s *BannerService) Live() ([]models.Banner, error) {
	now := s.now()
	return s.list("sort_order ASC", func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", "active").
			Where("start_date IS NULL OR start_date <= ?", now).
			Where("end_date IS NULL OR end_date >= ?", now)
	})
}

func (s *BannerService) Get(id string) (*models.Banner, error) {
	return s.get(id)
}

func (s *BannerService) Create(in BannerInput) (*models.Banner, error) {
	banner := &models.Banner{ID: uuid.New().String()}
	if err := in.apply(banner); err != nil {
		return nil, err
	}
	if err := s.create(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) Update(id string, in BannerInput) (*models.Banner, error) {
	banner, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(banner); err != nil {
		return nil, err
	}
	if err := s.save(banner); err != nil {
		return nil, err
	}
	return banner, nil
}

func (s *BannerService) Delete(id string) error {
	return s.delete(id)
}
