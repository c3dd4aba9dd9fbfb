package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// MaxUploadRows caps the number of data rows accepted per upload. Files over
// the cap are rejected outright, never silently truncated.
const MaxUploadRows = 1000

// ErrRowLimitExceeded is returned when an upload carries more than
// MaxUploadRows data rows.
var ErrRowLimitExceeded = fmt.Errorf("upload limit exceeded: at most %d data rows per file", MaxUploadRows)

// ErrEmptyUpload is returned when the file has no header row.
var ErrEmptyUpload = errors.New("upload is empty: expected a header row")

// ParseError reports a structurally fatal CSV problem (e.g. an unterminated
// quote). It aborts the whole import, identifying the 1-based line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("corrupt CSV at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseCSV tokenizes an upload into one map per data row, keyed by the
// lower-cased header names. Framing (quoting, delimiters) is encoding/csv's
// job; this only shapes the result for MapRow.
func ParseCSV(r io.Reader) ([]map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated, synonym matching copes
	cr.LazyQuotes = false

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyUpload
	}
	if err != nil {
		return nil, wrapParseErr(err)
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = strings.ToLower(strings.TrimSpace(h))
	}

	var rows []map[string]string
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapParseErr(err)
		}
		if len(rows) == MaxUploadRows {
			return nil, ErrRowLimitExceeded
		}
		row := make(map[string]string, len(keys))
		for i, v := range record {
			if i < len(keys) && keys[i] != "" {
				row[keys[i]] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func wrapParseErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Line: 0, Err: err}
}
