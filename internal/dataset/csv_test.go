package dataset

import (
	"strings"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "memberpulse/internal/errors"
)

func newTestReader(maxRows int) *Reader {
	return NewReader(slog.Default(), ReaderOptions{MaxRows: maxRows})
}

func TestReader_ReadAccounts(t *testing.T) {
	csv := `Account ID,Email,Cancel,Join Date,Renewal Date
A1,X@Y.com,,Jan 5 2025,Jan 5 2026
A2, z@y.com ,Cancel,Feb 1 2025,
`
	records, err := newTestReader(0).ReadAccounts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Values are carried verbatim; normalization belongs to the engine.
	assert.Equal(t, "A1", records[0].AccountID)
	assert.Equal(t, "X@Y.com", records[0].Email)
	assert.Equal(t, "", records[0].Cancel)
	assert.Equal(t, " z@y.com ", records[1].Email)
	assert.Equal(t, "Cancel", records[1].Cancel)
}

func TestReader_ReadFinancial(t *testing.T) {
	csv := `Date,Account ID,Discount Code
"Aug 6, 2025",A1,FREE
"Aug 7, 2025",A2,
`
	records, err := newTestReader(0).ReadFinancial(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Aug 6, 2025", records[0].Date)
	assert.Equal(t, "FREE", records[0].DiscountCode)
	assert.Equal(t, "", records[1].DiscountCode)
}

func TestReader_ReadJotform(t *testing.T) {
	csv := `Submission Date,Please enter your email to see your results.
"Aug 1, 2025",lead@example.com
"Aug 9, 2025",lead@example.com
`
	records, err := newTestReader(0).ReadJotform(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "lead@example.com", records[0].Email)
	assert.Equal(t, "Aug 9, 2025", records[1].SubmissionDate)
}

func TestReader_BOMHeader(t *testing.T) {
	csv := "\ufeffAccount ID,Email,Cancel\nA1,x@y.com,\n"

	records, err := newTestReader(0).ReadAccounts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].AccountID)
}

func TestReader_MissingRequiredColumn(t *testing.T) {
	csv := `Email,Cancel
x@y.com,
`
	_, err := newTestReader(0).ReadAccounts(strings.NewReader(csv))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
	assert.Contains(t, err.Error(), "Account ID")
}

func TestReader_RowCeiling(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Account ID,Email,Cancel\n")
	for i := 0; i < 5; i++ {
		sb.WriteString("A1,x@y.com,\n")
	}

	_, err := newTestReader(3).ReadAccounts(strings.NewReader(sb.String()))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
}

func TestReader_SkipsEmptyLines(t *testing.T) {
	csv := "Account ID,Email,Cancel\nA1,x@y.com,\n,,\n  ,  ,\nA2,z@y.com,Cancel\n"

	records, err := newTestReader(0).ReadAccounts(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestReader_ShortRows(t *testing.T) {
	// Ragged rows surface as empty cells, not errors.
	csv := "Account ID,Email,Cancel\nA1\n"

	records, err := newTestReader(0).ReadAccounts(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A1", records[0].AccountID)
	assert.Equal(t, "", records[0].Email)
}

func TestBundle_TotalRows(t *testing.T) {
	b := Bundle{
		Accounts:  make([]AccountRecord, 2),
		Financial: make([]FinancialRecord, 3),
		Jotform:   make([]JotformRecord, 4),
	}
	assert.Equal(t, 9, b.TotalRows())
}
