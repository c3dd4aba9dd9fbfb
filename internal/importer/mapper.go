package importer

import (
	"strings"
	"time"

	"tradeportal/internal/models"
	"tradeportal/internal/normalize"
)

// headerSynonyms maps each canonical trader field to the upload header names
// accepted for it. Matching is case-insensitive and the first synonym with a
// non-blank value wins. Uploads come from several scraping tools with
// inconsistent (sometimes truncated) headers, hence entries like "Owner Nar".
var headerSynonyms = map[string][]string{
	"name":          {"Name", "Business Name", "Company", "Company Name", "Trader"},
	"status":        {"Status", "Lead Status"},
	"phone":         {"Phone", "Phone Number", "Telephone", "Mobile", "Contact Number"},
	"lastActivity":  {"Last Activity", "Last Activity Date", "Activity Date", "Last Contact"},
	"website":       {"Website", "Web Site", "URL", "Site"},
	"address":       {"Address", "Full Address", "Location"},
	"ownerName":     {"Owner Name", "Owner", "Owner Nar", "Contact Name", "Contact"},
	"ownerProfileLink": {"Owner Profile Link", "Owner Profile", "Profile Link", "LinkedIn"},
	"mainCategory":  {"Main Category", "Category", "Primary Category"},
	"categories":    {"Categories", "All Categories", "Tags"},
	"workdayTiming": {"Workday Timing", "Working Hours", "Hours", "Opening Hours"},
	"totalAssets":   {"Total Assets", "Assets"},
	"estimatedAnnualRevenue": {"Estimated Annual Revenue", "Annual Revenue", "Revenue", "Est Revenue"},
	"estimatedCompanyValue":  {"Estimated Company Value", "Company Value", "Valuation", "Est Value"},
	"employeeCount": {"Employee Count", "Employees", "Staff Count", "Headcount"},
	"description":   {"Description", "About", "Summary"},
	"notes":         {"Notes", "Note", "Comments"},
	"reviews":       {"Reviews", "Review Count"},
	"rating":        {"Rating", "Stars", "Review Rating"},
}

// pick returns the first non-blank value among a field's accepted headers.
// keys in record are already lower-cased by the parser.
func pick(record map[string]string, field string) string {
	for _, syn := range headerSynonyms[field] {
		if v, ok := record[strings.ToLower(syn)]; ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func pickPtr(record map[string]string, field string) *string {
	if v := pick(record, field); v != "" {
		return &v
	}
	return nil
}

// MapRow maps one tokenized upload row onto a TraderDraft. It returns nil
// when no usable name is found; the row is dropped, not an error.
// Unrecognized columns are ignored and missing optionals stay nil.
func MapRow(record map[string]string, now time.Time) *models.TraderDraft {
	name := pick(record, "name")
	if name == "" {
		return nil
	}

	status := pick(record, "status")
	if status == "" {
		status = models.StatusNewLead
	} else {
		status = canonicalStatus(status)
	}

	draft := &models.TraderDraft{
		Name:                   name,
		Status:                 status,
		Phone:                  normalize.Phone(pick(record, "phone")),
		Website:                pickPtr(record, "website"),
		Address:                pickPtr(record, "address"),
		OwnerName:              pickPtr(record, "ownerName"),
		OwnerProfileLink:       pickPtr(record, "ownerProfileLink"),
		MainCategory:           pickPtr(record, "mainCategory"),
		Categories:             pickPtr(record, "categories"),
		WorkdayTiming:          pickPtr(record, "workdayTiming"),
		TotalAssets:            pickPtr(record, "totalAssets"),
		EstimatedAnnualRevenue: pickPtr(record, "estimatedAnnualRevenue"),
		EstimatedCompanyValue:  pickPtr(record, "estimatedCompanyValue"),
		EmployeeCount:          pickPtr(record, "employeeCount"),
		Description:            pickPtr(record, "description"),
		Notes:                  pickPtr(record, "notes"),
		Reviews:                pickPtr(record, "reviews"),
		Rating:                 pickPtr(record, "rating"),
	}

	// Imports take the caller-supplied activity date when present, falling
	// back to now. The CRUD path refreshes lastActivity itself.
	draft.LastActivity = normalize.ActivityDateAt(pick(record, "lastActivity"), now)

	return draft
}

// MapFinancialRow maps a row from the financial bulk-update upload. Only
// the four financial estimate fields are carried; the row is keyed by exact
// Name match downstream. Returns nil when the name is blank.
func MapFinancialRow(record map[string]string) *models.FinancialUpdate {
	name := pick(record, "name")
	if name == "" {
		return nil
	}
	return &models.FinancialUpdate{
		Name:                   name,
		TotalAssets:            pickPtr(record, "totalAssets"),
		EstimatedAnnualRevenue: pickPtr(record, "estimatedAnnualRevenue"),
		EstimatedCompanyValue:  pickPtr(record, "estimatedCompanyValue"),
		EmployeeCount:          pickPtr(record, "employeeCount"),
	}
}

// canonicalStatus folds the known statuses case-insensitively and keeps
// anything else as typed, so new statuses pass through.
func canonicalStatus(raw string) string {
	for _, s := range []string{models.StatusNewLead, models.StatusActive, models.StatusInactive, models.StatusCallBack} {
		if strings.EqualFold(raw, s) {
			return s
		}
	}
	return raw
}
