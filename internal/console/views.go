package console

import (
	"strconv"
	"time"

	"LF-ADMIN/internal/listview"
	"LF-ADMIN/internal/models"
)

func day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func dayPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return day(*t)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Every view exposes a "date" column holding the record's creation day so
// the console's --date filter works the same on each page.

func BannerView() *listview.View[models.Banner] {
	return listview.New(map[string]listview.Accessor[models.Banner]{
		"title":     func(b models.Banner) string { return b.Title },
		"status":    func(b models.Banner) string { return b.Status },
		"sortOrder": func(b models.Banner) string { return strconv.Itoa(b.SortOrder) },
		"startDate": func(b models.Banner) string { return dayPtr(b.StartDate) },
		"endDate":   func(b models.Banner) string { return dayPtr(b.EndDate) },
		"link":      func(b models.Banner) string { return b.Link },
		"date":      func(b models.Banner) string { return day(b.CreatedAt) },
	}, "title", "link")
}

func Form16View() *listview.View[models.Form16] {
	return listview.New(map[string]listview.Accessor[models.Form16]{
		"agentName":     func(f models.Form16) string { return f.AgentName },
		"agentId":       func(f models.Form16) string { return f.AgentID },
		"financialYear": func(f models.Form16) string { return f.FinancialYear },
		"documentType":  func(f models.Form16) string { return f.DocumentType },
		"status":        func(f models.Form16) string { return f.Status },
		"date":          func(f models.Form16) string { return day(f.CreatedAt) },
	}, "agentName", "financialYear", "documentType")
}

func SubAgentView() *listview.View[models.SubAgent] {
	return listview.New(map[string]listview.Accessor[models.SubAgent]{
		"name":        func(s models.SubAgent) string { return s.Name },
		"email":       func(s models.SubAgent) string { return s.Email },
		"mobile":      func(s models.SubAgent) string { return s.Mobile },
		"franchiseId": func(s models.SubAgent) string { return s.FranchiseID },
		"status":      func(s models.SubAgent) string { return s.Status },
		"date":        func(s models.SubAgent) string { return day(s.CreatedAt) },
	}, "name", "email", "mobile")
}

func CommissionLimitView() *listview.View[models.FranchiseCommissionLimit] {
	return listview.New(map[string]listview.Accessor[models.FranchiseCommissionLimit]{
		"franchiseName": func(l models.FranchiseCommissionLimit) string { return l.FranchiseName },
		"franchiseId":   func(l models.FranchiseCommissionLimit) string { return l.FranchiseID },
		"bankId":        func(l models.FranchiseCommissionLimit) string { return l.BankID },
		"limitPercent":  func(l models.FranchiseCommissionLimit) string { return money(l.LimitPercent) },
		"status":        func(l models.FranchiseCommissionLimit) string { return l.Status },
		"date":          func(l models.FranchiseCommissionLimit) string { return day(l.CreatedAt) },
	}, "franchiseName", "bankId")
}

func InvoiceView() *listview.View[models.Invoice] {
	return listview.New(map[string]listview.Accessor[models.Invoice]{
		"invoiceNumber": func(i models.Invoice) string { return i.InvoiceNumber },
		"agentName":     func(i models.Invoice) string { return i.AgentName },
		"amount":        func(i models.Invoice) string { return money(i.Amount) },
		"status":        func(i models.Invoice) string { return i.Status },
		"issuedAt":      func(i models.Invoice) string { return day(i.IssuedAt) },
		"date":          func(i models.Invoice) string { return day(i.CreatedAt) },
	}, "invoiceNumber", "agentName")
}

// HistoryView searches and sorts within one server page of history
func HistoryView() *listview.View[models.ActivityLog] {
	return listview.New(map[string]listview.Accessor[models.ActivityLog]{
		"method":     func(l models.ActivityLog) string { return l.Method },
		"path":       func(l models.ActivityLog) string { return l.Path },
		"resource":   func(l models.ActivityLog) string { return l.Resource },
		"statusCode": func(l models.ActivityLog) string { return strconv.Itoa(l.StatusCode) },
		"userEmail":  func(l models.ActivityLog) string { return l.UserEmail },
		"createdAt":  func(l models.ActivityLog) string { return l.CreatedAt.Format(time.RFC3339) },
		"date":       func(l models.ActivityLog) string { return day(l.CreatedAt) },
	}, "path", "resource", "userEmail")
}
