package handlers

import (
	"LF-ADMIN/internal/services"

	"github.com/gin-gonic/gin"
)

// Services are the backends the API routes are served from
type Services struct {
	FieldDefinitions *services.FieldDefinitionService
	LeadForms        *services.LeadFormService
	Banks            *services.BankService
	Users            *services.UserService
	Form16           *services.Form16Service
	Banners          *services.BannerService
	SubAgents        *services.SubAgentService
	CommissionLimits *services.CommissionLimitService
	Invoices         *services.InvoiceService
	ActivityLogs     *services.ActivityLogService
	Statistics       *services.StatisticsService
	Documents        *services.DocumentService
}

// RegisterRoutes mounts the /api/v1 resources on v1
func RegisterRoutes(v1 *gin.RouterGroup, s Services) {
	fieldDefs := NewFieldDefinitionHandler(s.FieldDefinitions)
	leadForms := NewLeadFormHandler(s.LeadForms)
	banks := NewBankHandler(s.Banks)
	users := NewUserHandler(s.Users)
	form16 := NewForm16Handler(s.Form16)
	banners := NewBannerHandler(s.Banners)
	subAgents := NewSubAgentHandler(s.SubAgents)
	limits := NewCommissionLimitHandler(s.CommissionLimits)
	invoices := NewInvoiceHandler(s.Invoices)
	history := NewHistoryHandler(s.ActivityLogs)
	stats := NewStatisticsHandler(s.Statistics)

	// Field catalogue
	v1.GET("/field-defs", fieldDefs.List)
	v1.POST("/field-defs", fieldDefs.Create)

	// Lead forms
	v1.GET("/lead-forms", leadForms.List)
	v1.GET("/lead-forms/new-lead", leadForms.GetNewLeadForm)
	v1.GET("/lead-forms/bank/:bankId", leadForms.GetByBank)
	v1.GET("/lead-forms/:id", leadForms.Get)
	v1.POST("/lead-forms", leadForms.Create)
	v1.PUT("/lead-forms/:id", leadForms.Update)
	v1.DELETE("/lead-forms/:id", leadForms.Delete)

	v1.GET("/banks", banks.GetAll)
	v1.GET("/banks/:id", banks.Get)
	v1.POST("/banks", banks.Create)
	v1.PUT("/banks/:id", banks.Update)
	v1.DELETE("/banks/:id", banks.Delete)

	v1.GET("/users", users.GetAll)
	v1.GET("/users/:id", users.Get)
	v1.POST("/users", users.Create)

	v1.GET("/form16", form16.GetAll)
	v1.GET("/form16/:id", form16.Get)
	v1.POST("/form16", form16.Create)
	v1.PUT("/form16/:id", form16.Update)
	v1.DELETE("/form16/:id", form16.Delete)

	v1.GET("/banners", banners.GetAll)
	v1.GET("/banners/live", banners.Live)
	v1.GET("/banners/:id", banners.Get)
	v1.POST("/banners", banners.Create)
	v1.PUT("/banners/:id", banners.Update)
	v1.DELETE("/banners/:id", banners.Delete)

	v1.GET("/sub-agents", subAgents.GetAll)
	v1.GET("/sub-agents/:id", subAgents.Get)
	v1.POST("/sub-agents", subAgents.Create)
	v1.PUT("/sub-agents/:id", subAgents.Update)
	v1.DELETE("/sub-agents/:id", subAgents.Delete)

	v1.GET("/franchise-commission-limits", limits.GetAll)
	v1.GET("/franchise-commission-limits/:id", limits.Get)
	v1.POST("/franchise-commission-limits", limits.Create)
	v1.PUT("/franchise-commission-limits/:id", limits.Update)
	v1.DELETE("/franchise-commission-limits/:id", limits.Delete)

	v1.GET("/invoices", invoices.GetAll)
	v1.GET("/invoices/:id", invoices.Get)
	v1.POST("/invoices", invoices.Create)
	v1.PATCH("/invoices/:id/status", invoices.UpdateStatus)

	// Audit trail and dashboard
	v1.GET("/history", history.GetHistory)
	v1.GET("/dashboard/stats", stats.GetDashboardStats)

	// Attachments
	if s.Documents != nil {
		documents := NewDocumentHandler(s.Documents)
		v1.POST("/documents/upload", documents.Upload)
		v1.GET("/documents/url", documents.SignedURL)
	}
}
