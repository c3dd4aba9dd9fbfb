package importer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV_Basic(t *testing.T) {
	csvData := "Name,Phone,Owner Name\nPurley Motors,020 8765 4321,J. Smith\n\"Croydon, Tools\",,\n"
	rows, err := ParseCSV(strings.NewReader(csvData))
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "Purley Motors", rows[0]["name"])
		assert.Equal(t, "J. Smith", rows[0]["owner name"])
		assert.Equal(t, "Croydon, Tools", rows[1]["name"])
	}
}

func TestParseCSV_RaggedRowsTolerated(t *testing.T) {
	csvData := "Name,Phone\nShort\nLong,020,extra,columns\n"
	rows, err := ParseCSV(strings.NewReader(csvData))
	assert.NoError(t, err)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "Short", rows[0]["name"])
		assert.Equal(t, "020", rows[1]["phone"])
	}
}

func TestParseCSV_RowLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("Name\n")
	for i := 0; i <= MaxUploadRows; i++ { // 1001 data rows
		b.WriteString("row\n")
	}
	rows, err := ParseCSV(strings.NewReader(b.String()))
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrRowLimitExceeded)
}

func TestParseCSV_ExactlyAtLimit(t *testing.T) {
	var b strings.Builder
	b.WriteString("Name\n")
	for i := 0; i < MaxUploadRows; i++ {
		b.WriteString("row\n")
	}
	rows, err := ParseCSV(strings.NewReader(b.String()))
	assert.NoError(t, err)
	assert.Len(t, rows, MaxUploadRows)
}

func TestParseCSV_BareQuoteIsFatalWithLine(t *testing.T) {
	csvData := "Name,Notes\nok,fine\nbad,mis\"quoted\n"
	rows, err := ParseCSV(strings.NewReader(csvData))
	assert.Nil(t, rows)

	var pe *ParseError
	if assert.True(t, errors.As(err, &pe)) {
		assert.Equal(t, 3, pe.Line)
		assert.Contains(t, pe.Error(), "line 3")
	}
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyUpload)
}
