package models

import (
	"time"

	"github.com/google/uuid"
)

// Trader statuses. Unknown values coming in through imports are stored
// as-is so new statuses can be introduced without a migration.
const (
	StatusNewLead  = "New Lead"
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	StatusCallBack = "Call-Back"
)

type Trader struct {
	ID                    uuid.UUID  `json:"id" db:"id"`
	BranchID              string     `json:"branchId" db:"branch_id"`
	Name                  string     `json:"name" db:"name"`
	Status                string     `json:"status" db:"status"`
	LastActivity          time.Time  `json:"-" db:"last_activity"`
	CallBackDate          *time.Time `json:"callBackDate" db:"call_back_date"`
	Phone                 *string    `json:"phone" db:"phone"` // stored normalized, dedup key
	Website               *string    `json:"website" db:"website"`
	Address               *string    `json:"address" db:"address"`
	OwnerName             *string    `json:"ownerName" db:"owner_name"`
	OwnerProfileLink      *string    `json:"ownerProfileLink" db:"owner_profile_link"`
	MainCategory          *string    `json:"mainCategory" db:"main_category"`
	Categories            *string    `json:"categories" db:"categories"` // comma-joined
	WorkdayTiming         *string    `json:"workdayTiming" db:"workday_timing"`
	TotalAssets           *string    `json:"totalAssets" db:"total_assets"`
	EstimatedAnnualRevenue *string   `json:"estimatedAnnualRevenue" db:"estimated_annual_revenue"`
	EstimatedCompanyValue *string    `json:"estimatedCompanyValue" db:"estimated_company_value"`
	EmployeeCount         *string    `json:"employeeCount" db:"employee_count"`
	Description           *string    `json:"description" db:"description"`
	Notes                 *string    `json:"notes" db:"notes"`
	Reviews               *string    `json:"reviews" db:"reviews"`
	Rating                *string    `json:"rating" db:"rating"`
	CreatedAt             time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt             time.Time  `json:"updatedAt" db:"updated_at"`
}

// TraderView is the external projection of a Trader: timestamps become
// RFC3339 strings and absent fields become explicit nulls so consumers can
// rely on key presence.
type TraderView struct {
	ID                    string  `json:"id"`
	BranchID              string  `json:"branchId"`
	Name                  string  `json:"name"`
	Status                string  `json:"status"`
	LastActivity          string  `json:"lastActivity"`
	CallBackDate          *string `json:"callBackDate"`
	Phone                 *string `json:"phone"`
	Website               *string `json:"website"`
	Address               *string `json:"address"`
	OwnerName             *string `json:"ownerName"`
	OwnerProfileLink      *string `json:"ownerProfileLink"`
	MainCategory          *string `json:"mainCategory"`
	Categories            *string `json:"categories"`
	WorkdayTiming         *string `json:"workdayTiming"`
	TotalAssets           *string `json:"totalAssets"`
	EstimatedAnnualRevenue *string `json:"estimatedAnnualRevenue"`
	EstimatedCompanyValue *string `json:"estimatedCompanyValue"`
	EmployeeCount         *string `json:"employeeCount"`
	Description           *string `json:"description"`
	Notes                 *string `json:"notes"`
	Reviews               *string `json:"reviews"`
	Rating                *string `json:"rating"`
	Tasks                 []*Task `json:"tasks"`
}

// TraderDraft is a trader parsed out of one import row, before dedup and
// before the store assigns an id.
type TraderDraft struct {
	Name                  string
	Status                string
	Phone                 string // already normalized
	LastActivity          time.Time
	Website               *string
	Address               *string
	OwnerName             *string
	OwnerProfileLink      *string
	MainCategory          *string
	Categories            *string
	WorkdayTiming         *string
	TotalAssets           *string
	EstimatedAnnualRevenue *string
	EstimatedCompanyValue *string
	EmployeeCount         *string
	Description           *string
	Notes                 *string
	Reviews               *string
	Rating                *string
}

// FinancialUpdate carries the four financial fields updated by the
// name-keyed bulk financial upload.
type FinancialUpdate struct {
	Name                  string
	TotalAssets           *string
	EstimatedAnnualRevenue *string
	EstimatedCompanyValue *string
	EmployeeCount         *string
}
