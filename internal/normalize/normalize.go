// Package normalize canonicalizes raw field values from uploads into stable
// comparison keys and storage formats. Pure functions, no I/O.
package normalize

import (
	"strings"
	"time"
)

// Phone reduces a raw phone value to digits plus an optional leading '+'.
// Whitespace, parentheses and hyphens are stripped; anything else
// non-numeric is dropped too. Empty input yields an empty string, which
// never participates in deduplication. Idempotent.
func Phone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ukDateLayouts are tried day-first, four-digit year before two-digit, so
// "01/02/24" parses as 1 February 2024 rather than 2 January.
var ukDateLayouts = []string{"02/01/2006", "02/01/06"}

// genericDateLayouts are the last-resort formats before giving up.
var genericDateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"2 January 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// ActivityDate parses a raw activity date with an ordered fallback:
// RFC3339/ISO first, then UK-style DD/MM/YYYY and DD/MM/YY (two-digit years
// expand to 20YY), then a handful of generic layouts. When nothing parses,
// the current time is returned so an import never fails on a date.
func ActivityDate(raw string) time.Time {
	return ActivityDateAt(raw, time.Now().UTC())
}

// ActivityDateAt is ActivityDate with an injectable "now" for tests.
func ActivityDateAt(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse("2006-01-02T15:04:05", raw); err == nil {
		return t.UTC()
	}
	for _, layout := range ukDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			// Two-digit years always mean 20YY here, overriding the
			// time package's 1969 pivot.
			if t.Year() < 2000 {
				t = t.AddDate(100, 0, 0)
			}
			return t.UTC()
		}
	}
	for _, layout := range genericDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return now
}
