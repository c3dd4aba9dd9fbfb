package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"tradeportal/internal/models"
)

// exportHeader is the canonical column order for CSV export. Re-importing an
// exported file round-trips through the synonym table.
var exportHeader = []string{
	"Name", "Status", "Phone", "Last Activity", "Website", "Address",
	"Owner Name", "Owner Profile Link", "Main Category", "Categories",
	"Workday Timing", "Total Assets", "Estimated Annual Revenue",
	"Estimated Company Value", "Employee Count", "Description", "Notes",
	"Reviews", "Rating",
}

type ExportService interface {
	ExportTraders(ctx context.Context, branchID string, w io.Writer) error
}

type exportService struct {
	traders TraderService
}

func NewExportService(traders TraderService) ExportService {
	return &exportService{traders: traders}
}

// ExportTraders renders the branch's current trader list back out as CSV.
// A pure projection of the read path, no special-casing.
func (s *exportService) ExportTraders(ctx context.Context, branchID string, w io.Writer) error {
	views, err := s.traders.List(ctx, branchID)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, v := range views {
		if err := cw.Write(exportRow(v)); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func exportRow(v *models.TraderView) []string {
	return []string{
		v.Name,
		v.Status,
		deref(v.Phone),
		v.LastActivity,
		deref(v.Website),
		deref(v.Address),
		deref(v.OwnerName),
		deref(v.OwnerProfileLink),
		deref(v.MainCategory),
		deref(v.Categories),
		deref(v.WorkdayTiming),
		deref(v.TotalAssets),
		deref(v.EstimatedAnnualRevenue),
		deref(v.EstimatedCompanyValue),
		deref(v.EmployeeCount),
		deref(v.Description),
		deref(v.Notes),
		deref(v.Reviews),
		deref(v.Rating),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
