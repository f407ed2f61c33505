package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"memberpulse/internal/analysis"
)

// ReportExporter writes a finished analysis report to disk in the formats
// the dashboard and spreadsheet consumers expect.
type ReportExporter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewReportExporter creates a report exporter rooted at baseDir.
func NewReportExporter(baseDir string, logger *slog.Logger) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportExporter{
		csv:    NewCSVWriter(baseDir),
		logger: logger.With(slog.String("component", "report_exporter")),
	}
}

// WriteJSON writes the full report as indented JSON.
func (e *ReportExporter) WriteJSON(report *analysis.Report, filePath string) error {
	fullPath := e.csv.resolvePath(filePath)

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	e.logger.Info("wrote JSON report",
		slog.String("path", fullPath),
		slog.Int("bytes", len(data)))
	return nil
}

// WriteMonthlyCSV writes the promo monthly breakdown as a CSV file.
func (e *ReportExporter) WriteMonthlyCSV(report *analysis.Report, filePath string) error {
	records := make([][]string, 0, len(report.FreePromo.MonthlyBreakdown))
	for _, month := range report.FreePromo.MonthlyBreakdown {
		records = append(records, []string{
			month.Month,
			strconv.Itoa(month.Transactions),
			strconv.Itoa(month.UniqueUsers),
		})
	}

	if err := e.csv.WriteSimpleCSV(filePath, []string{"Month", "Transactions", "Unique Users"}, records); err != nil {
		return err
	}

	e.logger.Info("wrote monthly breakdown CSV",
		slog.String("path", filePath),
		slog.Int("months", len(records)))
	return nil
}
