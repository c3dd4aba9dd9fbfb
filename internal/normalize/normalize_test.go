package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "02087654321", "02087654321"},
		{"spaces and hyphens", "020 8765-4321", "02087654321"},
		{"parentheses", "(020) 8765 4321", "02087654321"},
		{"international", "+44 20 8765 4321", "+442087654321"},
		{"plus not leading", "0044+2087654321", "00442087654321"},
		{"letters dropped", "020 CALL ME", "020"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.in))
		})
	}
}

func TestPhone_Idempotent(t *testing.T) {
	for _, in := range []string{"+44 (0)20 8765-4321", "02087654321", "", "abc", "+123"} {
		once := Phone(in)
		assert.Equal(t, once, Phone(once), "Phone should be idempotent for %q", in)
	}
}

func TestActivityDate_UKDayFirst(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	got := ActivityDateAt("01/02/24", now)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 1, got.Day())

	got = ActivityDateAt("01/02/2024", now)
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, time.February, got.Month())
	assert.Equal(t, 1, got.Day())
}

func TestActivityDate_ISOWinsOverUK(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := ActivityDateAt("2024-02-01T09:30:00Z", now)
	assert.Equal(t, time.Date(2024, 2, 1, 9, 30, 0, 0, time.UTC), got)
}

func TestActivityDate_TwoDigitYearIsAlwaysThisCentury(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := ActivityDateAt("15/03/99", now)
	assert.Equal(t, 2099, got.Year())
}

func TestActivityDate_FallbackToNow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, now, ActivityDateAt("not a date", now))
	assert.Equal(t, now, ActivityDateAt("", now))
	assert.Equal(t, now, ActivityDateAt("   ", now))
}

func TestActivityDate_GenericLayouts(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	got := ActivityDateAt("2023-12-25", now)
	assert.Equal(t, time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), got)
}
