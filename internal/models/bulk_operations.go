package models

// BulkWriteResult reports the outcome of a chunked bulk write. Chunks are
// committed sequentially and each chunk is all-or-nothing; chunks committed
// before a failure stay applied, so callers must read both counts rather
// than treating the operation as a single boolean.
type BulkWriteResult struct {
	SuccessCount int       `json:"successCount"`
	FailureCount int       `json:"failureCount"`
	Created      []*Trader `json:"created,omitempty"` // bulk-add only, for caller-side reconciliation
	Error        string    `json:"error,omitempty"`
}

// ImportResult reports the outcome of one CSV import request.
type ImportResult struct {
	RowsRead    int       `json:"rowsRead"`    // data rows seen in the file
	RowsDropped int       `json:"rowsDropped"` // rows without a usable name
	Skipped     int       `json:"skipped"`     // duplicate phone numbers
	Imported    int       `json:"imported"`
	Failed      int       `json:"failed"`
	Created     []*Trader `json:"created,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// FinancialUpdateResult reports the outcome of a name-keyed financial bulk
// update. Unmatched names are counted, never fatal.
type FinancialUpdateResult struct {
	Updated        int      `json:"updated"`
	Unmatched      int      `json:"unmatched"`
	UnmatchedNames []string `json:"unmatchedNames,omitempty"`
}
