package models

// DashboardStats summarises record counts for the admin dashboard
type DashboardStats struct {
	Banks            int64            `json:"banks"`
	ActiveLeadForms  int64            `json:"activeLeadForms"`
	FieldDefinitions int64            `json:"fieldDefinitions"`
	UsersByRole      map[string]int64 `json:"usersByRole"`
	Form16Documents  int64            `json:"form16Documents"`
	ActiveBanners    int64            `json:"activeBanners"`
	SubAgents        int64            `json:"subAgents"`
	InvoicesByStatus map[string]int64 `json:"invoicesByStatus"`
}
