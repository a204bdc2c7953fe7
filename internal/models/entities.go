package models

import (
	"time"
)

// Bank is a lending partner a lead can be routed to
type Bank struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Code      string    `gorm:"uniqueIndex;size:64" json:"code"`
	IsActive  bool      `gorm:"index" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Bank) TableName() string {
	return "banks"
}

// Role tiers of dashboard users
const (
	RoleAdmin               = "admin"
	RoleAgent               = "agent"
	RoleFranchise           = "franchise"
	RoleRelationshipManager = "relationship_manager"
	RoleRegionalManager     = "regional_manager"
	RoleAccountsManager     = "accounts_manager"
)

// User is a dashboard account
type User struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `gorm:"size:191;index" json:"email"`
	Mobile      string    `json:"mobile"`
	Role        string    `gorm:"type:varchar(40);index" json:"role"`
	FranchiseID string    `gorm:"size:36" json:"franchiseId,omitempty"`
	Status      string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

// Form16 document kinds
const (
	Form16TypeForm16 = "form16"
	Form16TypeTDS    = "tds"
)

// PendingAttachment marks a record whose file upload has not completed yet
const PendingAttachment = "pending-upload"

// Form16 is a Form16 or TDS certificate issued to an agent
type Form16 struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	AgentID       string    `gorm:"size:36;index" json:"agentId"`
	AgentName     string    `json:"agentName"`
	FinancialYear string    `gorm:"type:varchar(9)" json:"financialYear"` // e.g. 2024-2025
	DocumentType  string    `gorm:"type:varchar(20)" json:"documentType"`
	Attachment    string    `json:"attachment"`
	Status        string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	Remarks       string    `json:"remarks,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Form16) TableName() string {
	return "form16_documents"
}

// Banner is promotional content shown on agent dashboards
type Banner struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	Title     string     `gorm:"not null" json:"title"`
	ImageURL  string     `json:"imageUrl"`
	Link      string     `json:"link,omitempty"`
	Status    string     `gorm:"type:varchar(20);default:'active'" json:"status"`
	SortOrder int        `gorm:"default:0" json:"sortOrder"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (Banner) TableName() string {
	return "banners"
}

// SubAgent works under a franchise
type SubAgent struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Email       string    `json:"email"`
	Mobile      string    `json:"mobile"`
	FranchiseID string    `gorm:"size:36;index" json:"franchiseId"`
	Status      string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (SubAgent) TableName() string {
	return "sub_agents"
}

// FranchiseCommissionLimit caps the commission a franchise may pass on for a bank
type FranchiseCommissionLimit struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	FranchiseID   string    `gorm:"size:36;index" json:"franchiseId"`
	FranchiseName string    `json:"franchiseName"`
	BankID        string    `gorm:"size:36;index" json:"bankId"`
	LimitPercent  float64   `json:"limitPercent"`
	Status        string    `gorm:"type:varchar(20);default:'active'" json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (FranchiseCommissionLimit) TableName() string {
	return "franchise_commission_limits"
}

// Invoice statuses
const (
	InvoiceDraft     = "draft"
	InvoiceSubmitted = "submitted"
	InvoiceApproved  = "approved"
	InvoicePaid      = "paid"
	InvoiceRejected  = "rejected"
)

// Invoice is an agent's payout claim
type Invoice struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	InvoiceNumber string    `gorm:"uniqueIndex;size:64" json:"invoiceNumber"`
	AgentID       string    `gorm:"size:36;index" json:"agentId"`
	AgentName     string    `json:"agentName"`
	Amount        float64   `json:"amount"`
	Status        string    `gorm:"type:varchar(20);default:'draft'" json:"status"`
	IssuedAt      time.Time `json:"issuedAt"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (Invoice) TableName() string {
	return "invoices"
}
