package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"memberpulse/internal/analysis"
	"memberpulse/internal/config"
	"memberpulse/internal/dataset"
	"memberpulse/internal/exporter"
	"memberpulse/internal/infrastructure"
)

func main() {
	accountsPath := flag.String("accounts", "", "path to the membership accounts CSV (required)")
	financialPath := flag.String("financial", "", "path to the financial transactions CSV (required)")
	jotformPath := flag.String("jotform", "", "path to the lead form submissions CSV (required)")
	outputDir := flag.String("out", "", "output directory for reports (defaults to the configured reports dir)")
	formats := flag.String("formats", "json,csv,xlsx", "comma-separated output formats: json, csv, xlsx")
	flag.Parse()

	if *accountsPath == "" || *financialPath == "" || *jotformPath == "" {
		fmt.Fprintln(os.Stderr, "all three input files are required: -accounts, -financial, -jotform")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.MustInitializeLogger(cfg.Logging)
	defer infrastructure.CloseLogFile()

	if *outputDir == "" {
		*outputDir = cfg.Paths.ReportsDir
	}

	ctx := infrastructure.EnsureTraceID(context.Background())
	start := time.Now()

	bundle, err := loadBundle(ctx, cfg, logger, *accountsPath, *financialPath, *jotformPath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load datasets", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Datasets loaded",
		slog.Int("account_rows", len(bundle.Accounts)),
		slog.Int("financial_rows", len(bundle.Financial)),
		slog.Int("jotform_rows", len(bundle.Jotform)))

	analyzer, err := analysis.NewAnalyzer(cfg.Analysis, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create analyzer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	report := analyzer.Analyze(ctx, bundle)

	if err := writeReports(report, *outputDir, *formats, logger); err != nil {
		logger.ErrorContext(ctx, "Failed to write reports", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Analysis complete",
		slog.Int("total_members", report.TotalMembers),
		slog.Int("form_submissions", report.Funnel.TotalSubmissions),
		slog.Duration("elapsed", time.Since(start)))
}

// loadBundle reads the three input CSVs concurrently.
func loadBundle(ctx context.Context, cfg *config.Config, logger *slog.Logger, accounts, financial, jotform string) (dataset.Bundle, error) {
	reader := dataset.NewReader(logger, dataset.ReaderOptions{MaxRows: cfg.Analysis.MaxRows})

	var bundle dataset.Bundle
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		bundle.Accounts, err = reader.LoadAccountsFile(accounts)
		return err
	})
	g.Go(func() (err error) {
		bundle.Financial, err = reader.LoadFinancialFile(financial)
		return err
	})
	g.Go(func() (err error) {
		bundle.Jotform, err = reader.LoadJotformFile(jotform)
		return err
	})

	return bundle, g.Wait()
}

// writeReports writes the report in each requested format.
func writeReports(report *analysis.Report, dir, formats string, logger *slog.Logger) error {
	exp := exporter.NewReportExporter(dir, logger)

	for _, format := range strings.Split(formats, ",") {
		switch strings.ToLower(strings.TrimSpace(format)) {
		case "json":
			if err := exp.WriteJSON(report, "report.json"); err != nil {
				return err
			}
		case "csv":
			if err := exp.WriteMonthlyCSV(report, "monthly_breakdown.csv"); err != nil {
				return err
			}
		case "xlsx":
			if err := exp.WriteWorkbook(report, "report.xlsx"); err != nil {
				return err
			}
		case "":
			// tolerate trailing commas
		default:
			return fmt.Errorf("unknown output format %q (expected json, csv or xlsx)", format)
		}
	}

	fmt.Printf("Reports written to %s\n", filepath.Clean(dir))
	return nil
}
