package services

import (
	"fmt"

	"LF-ADMIN/internal"
	"LF-ADMIN/internal/models"
)

type StatisticsService struct{}

func NewStatisticsService() *StatisticsService {
	return &StatisticsService{}
}

type groupCount struct {
	Grp   string
	Count int64
}

func countBy(model interface{}, column string) (map[string]int64, error) {
	var rows []groupCount
	err := internal.DB.Model(model).
		Select(column + " AS grp, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Grp] = r.Count
	}
	return out, nil
}

// GetDashboardStats summarises record counts for the dashboard landing page
// GET /api/v1/dashboard/stats
func (s *StatisticsService) GetDashboardStats() (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	counts := []struct {
		name  string
		model interface{}
		where map[string]interface{}
		dest  *int64
	}{
		{"banks", &models.Bank{}, nil, &stats.Banks},
		{"lead forms", &models.LeadForm{}, map[string]interface{}{"active": true}, &stats.ActiveLeadForms},
		{"field definitions", &models.FieldDefinition{}, nil, &stats.FieldDefinitions},
		{"form16 documents", &models.Form16{}, nil, &stats.Form16Documents},
		{"banners", &models.Banner{}, map[string]interface{}{"status": "active"}, &stats.ActiveBanners},
		{"sub agents", &models.SubAgent{}, nil, &stats.SubAgents},
	}
	for _, c := range counts {
		q := internal.DB.Model(c.model)
		if c.where != nil {
			q = q.Where(c.where)
		}
		if err := q.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s: %w", c.name, err)
		}
	}

	var err error
	if stats.UsersByRole, err = countBy(&models.User{}, "role"); err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}
	if stats.InvoicesByStatus, err = countBy(&models.Invoice{}, "status"); err != nil {
		return nil, fmt.Errorf("failed to count invoices by status: %w", err)
	}
	return stats, nil
}
