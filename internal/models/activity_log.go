package models

import "time"

// ActivityLog is one audited API request, surfaced as the history view
type ActivityLog struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Method       string    `gorm:"type:varchar(10);index" json:"method"`
	Path         string    `gorm:"index" json:"path"`
	Resource     string    `gorm:"type:varchar(64);index" json:"resource"`
	UserAgent    string    `json:"userAgent,omitempty"`
	IPAddress    string    `json:"ipAddress,omitempty"`
	RequestBody  string    `gorm:"type:text" json:"requestBody,omitempty"`
	QueryParams  string    `gorm:"type:text" json:"queryParams,omitempty"`
	StatusCode   int       `json:"statusCode"`
	ResponseTime int64     `json:"responseTime"` // milliseconds
	UserID       string    `gorm:"size:64" json:"userId,omitempty"`
	UserEmail    string    `json:"userEmail,omitempty"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
