package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"memberpulse/internal/analysis"
)

const (
	summarySheet = "Summary"
	monthlySheet = "Monthly Breakdown"
)

// WriteWorkbook writes the report as an Excel workbook with a Summary sheet
// and a Monthly Breakdown sheet.
func (e *ReportExporter) WriteWorkbook(report *analysis.Report, filePath string) error {
	fullPath := e.csv.resolvePath(filePath)

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, report); err != nil {
		return err
	}
	if err := writeMonthlySheet(f, report); err != nil {
		return err
	}

	// Drop the default sheet excelize creates
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(fullPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.Info("wrote Excel workbook",
		slog.String("path", fullPath))
	return nil
}

func writeSummarySheet(f *excelize.File, report *analysis.Report) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Members", report.TotalMembers},
		{"Active Members", report.ActiveMembers},
		{"Canceled Members", report.CanceledMembers},
		{"Cancellation Rate (%)", report.CancellationRate},
		{},
		{"Free Promo Transactions", report.FreePromo.TotalTransactions},
		{"Free Promo Unique Users", report.FreePromo.UniqueUsers},
		{"Free Promo Usage Period (days)", report.FreePromo.UsagePeriodDays},
		{"Free Promo First Usage", report.FreePromo.FirstUsage},
		{"Free Promo Last Usage", report.FreePromo.LastUsage},
		{"Free Promo Cancellation Rate (%)", report.FreePromo.CancellationRate},
		{},
		{"Form Submissions", report.Funnel.TotalSubmissions},
		{"Form Unique Emails", report.Funnel.UniqueEmails},
		{"Form Duplicate Submissions", report.Funnel.DuplicateSubmissions},
		{"Form Conversions", report.Funnel.Converted},
		{"Form Conversion Rate (%)", report.Funnel.ConversionRate},
		{},
		{"Before Cutoff Submissions", report.Funnel.Before.Submissions},
		{"Before Cutoff Conversions", report.Funnel.Before.Converted},
		{"Before Cutoff Net Conversion Rate (%)", report.Funnel.Before.NetConversionRate},
		{"Since Cutoff Submissions", report.Funnel.Since.Submissions},
		{"Since Cutoff Conversions", report.Funnel.Since.Converted},
		{"Since Cutoff Net Conversion Rate (%)", report.Funnel.Since.NetConversionRate},
		{},
		{"Free Trial Users", report.Funnel.FreeTrial.Users},
		{"Direct Paid Users", report.Funnel.FreeTrial.PaidUsers},
		{"Free Trial Rate (%)", report.Funnel.FreeTrial.Rate},
		{},
		{"Members From Form", report.MemberSources.FromJotform},
		{"Members From Other Sources", report.MemberSources.NotFromJotform},
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 36); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}
	return f.SetColWidth(summarySheet, "B", "B", 16)
}

func writeMonthlySheet(f *excelize.File, report *analysis.Report) error {
	if _, err := f.NewSheet(monthlySheet); err != nil {
		return fmt.Errorf("failed to create monthly sheet: %w", err)
	}

	header := []interface{}{"Month", "Transactions", "Unique Users"}
	if err := f.SetSheetRow(monthlySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write monthly header: %w", err)
	}

	for i, month := range report.FreePromo.MonthlyBreakdown {
		row := []interface{}{month.Month, month.Transactions, month.UniqueUsers}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(monthlySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write monthly row %d: %w", i+1, err)
		}
	}

	return f.SetColWidth(monthlySheet, "A", "C", 14)
}
