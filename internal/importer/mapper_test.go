package importer

import (
	"testing"
	"time"

	"tradeportal/internal/models"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC)

func TestMapRow_NameRequired(t *testing.T) {
	assert.Nil(t, MapRow(map[string]string{"phone": "020 8765 4321"}, testNow))
	assert.Nil(t, MapRow(map[string]string{"name": ""}, testNow))
	assert.Nil(t, MapRow(map[string]string{"name": "   "}, testNow))

	d := MapRow(map[string]string{"name": "Purley Motors"}, testNow)
	if assert.NotNil(t, d) {
		assert.Equal(t, "Purley Motors", d.Name)
	}
}

func TestMapRow_HeaderSynonyms(t *testing.T) {
	// "Owner Nar" is a known truncated header from one of the scrapers.
	d := MapRow(map[string]string{
		"company name": "Croydon Tools Ltd",
		"owner nar":    "J. Smith",
		"telephone":    "(020) 1234-5678",
	}, testNow)
	if assert.NotNil(t, d) {
		assert.Equal(t, "Croydon Tools Ltd", d.Name)
		assert.Equal(t, "J. Smith", *d.OwnerName)
		assert.Equal(t, "02012345678", d.Phone)
	}
}

func TestMapRow_FirstNonBlankSynonymWins(t *testing.T) {
	d := MapRow(map[string]string{
		"name":     "A",
		"website":  "",
		"web site": "https://example.co.uk",
	}, testNow)
	if assert.NotNil(t, d) {
		assert.Equal(t, "https://example.co.uk", *d.Website)
	}
}

func TestMapRow_OptionalFieldsStayNil(t *testing.T) {
	d := MapRow(map[string]string{"name": "A", "some random column": "x"}, testNow)
	if assert.NotNil(t, d) {
		assert.Nil(t, d.Website)
		assert.Nil(t, d.Notes)
		assert.Nil(t, d.EmployeeCount)
		assert.Empty(t, d.Phone)
	}
}

func TestMapRow_StatusDefaultsAndFolds(t *testing.T) {
	d := MapRow(map[string]string{"name": "A"}, testNow)
	assert.Equal(t, models.StatusNewLead, d.Status)

	d = MapRow(map[string]string{"name": "A", "status": "active"}, testNow)
	assert.Equal(t, models.StatusActive, d.Status)

	d = MapRow(map[string]string{"name": "A", "status": "call-back"}, testNow)
	assert.Equal(t, models.StatusCallBack, d.Status)

	// Unknown statuses pass through untouched.
	d = MapRow(map[string]string{"name": "A", "status": "On Hold"}, testNow)
	assert.Equal(t, "On Hold", d.Status)
}

func TestMapRow_ActivityDate(t *testing.T) {
	d := MapRow(map[string]string{"name": "A", "last activity": "01/02/24"}, testNow)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), d.LastActivity)

	// Missing date falls back to now.
	d = MapRow(map[string]string{"name": "A"}, testNow)
	assert.Equal(t, testNow, d.LastActivity)
}
