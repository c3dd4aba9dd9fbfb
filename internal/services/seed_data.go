package services

import (
	"time"

	"tradeportal/internal/models"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

// demoTraders is the fixed dataset seeded into a branch the first time it is
// read while empty, so a new branch never opens onto a blank table.
func demoTraders(branchID string, now time.Time) []*models.Trader {
	return []*models.Trader{
		{
			ID:           uuid.New(),
			BranchID:     branchID,
			Name:         "Ace Roofing Supplies",
			Status:       models.StatusNewLead,
			Phone:        strPtr("02086540001"),
			Website:      strPtr("https://aceroofing.example.co.uk"),
			Address:      strPtr("12 High Street"),
			OwnerName:    strPtr("D. Patel"),
			MainCategory: strPtr("Roofing"),
			Categories:   strPtr("Roofing, Building Supplies"),
			LastActivity: now,
		},
		{
			ID:           uuid.New(),
			BranchID:     branchID,
			Name:         "Brookside Timber Merchants",
			Status:       models.StatusActive,
			Phone:        strPtr("02086540002"),
			OwnerName:    strPtr("S. Laing"),
			MainCategory: strPtr("Timber"),
			Notes:        strPtr("Regular weekly order, ask for Sam."),
			LastActivity: now,
		},
		{
			ID:           uuid.New(),
			BranchID:     branchID,
			Name:         "Carlton Plumbing & Heating",
			Status:       models.StatusCallBack,
			Phone:        strPtr("02086540003"),
			CallBackDate: timePtr(now.AddDate(0, 0, 7)),
			MainCategory: strPtr("Plumbing"),
			LastActivity: now,
		},
		{
			ID:           uuid.New(),
			BranchID:     branchID,
			Name:         "Dunmore Electrical",
			Status:       models.StatusInactive,
			MainCategory: strPtr("Electrical"),
			Description:  strPtr("Lapsed account, last order over a year ago."),
			LastActivity: now,
		},
	}
}

func timePtr(t time.Time) *time.Time { return &t }
