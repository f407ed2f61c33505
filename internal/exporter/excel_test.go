package exporter

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"memberpulse/internal/analysis"
)

func TestWriteWorkbook(t *testing.T) {
	dir := t.TempDir()
	exp := NewReportExporter(dir, slog.Default())

	path := filepath.Join(dir, "report.xlsx")
	require.NoError(t, exp.WriteWorkbook(sampleReport(), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, summarySheet)
	assert.Contains(t, sheets, monthlySheet)
	assert.NotContains(t, sheets, "Sheet1")

	metric, err := f.GetCellValue(summarySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "Total Members", metric)

	value, err := f.GetCellValue(summarySheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "10", value)

	month, err := f.GetCellValue(monthlySheet, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2025-08", month)
}

func TestWriteWorkbook_EmptyReport(t *testing.T) {
	dir := t.TempDir()
	exp := NewReportExporter(dir, slog.Default())

	path := filepath.Join(dir, "empty.xlsx")
	require.NoError(t, exp.WriteWorkbook(&analysis.Report{}, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(monthlySheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Month", header)
}
