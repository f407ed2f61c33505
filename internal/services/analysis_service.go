package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"memberpulse/internal/analysis"
	"memberpulse/internal/config"
	"memberpulse/internal/dataset"
	"memberpulse/internal/infrastructure"
)

// AnalysisService runs funnel analyses over request-scoped dataset bundles.
// The service itself is stateless between requests: the analyzer is a pure
// function of its inputs and every bundle is owned by a single call.
type AnalysisService struct {
	analyzer *analysis.Analyzer
	validate *validator.Validate
	metrics  *infrastructure.BusinessMetrics
	logger   *slog.Logger
	maxRows  int
}

// NewAnalysisService creates the analysis service. metrics may be nil when
// observability is disabled (CLI use).
func NewAnalysisService(cfg *config.Config, logger *slog.Logger, metrics *infrastructure.BusinessMetrics) (*AnalysisService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	analyzer, err := analysis.NewAnalyzer(cfg.Analysis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	return &AnalysisService{
		analyzer: analyzer,
		validate: validator.New(),
		metrics:  metrics,
		logger:   logger.With(slog.String("component", "analysis_service")),
		maxRows:  cfg.Analysis.MaxRows,
	}, nil
}

// Run validates the bundle and executes one analysis.
func (s *AnalysisService) Run(ctx context.Context, bundle dataset.Bundle) (report *analysis.Report, err error) {
	start := time.Now()
	defer func() {
		infrastructure.RecordAnalysisMetrics(ctx, s.metrics, int64(bundle.TotalRows()), time.Since(start), err)
	}()

	if err = s.validateBundle(bundle); err != nil {
		s.logger.WarnContext(ctx, "rejected analysis request",
			slog.String("error", err.Error()))
		return nil, err
	}

	report = s.analyzer.Analyze(ctx, bundle)

	s.logger.InfoContext(ctx, "analysis request served",
		slog.Int("input_rows", bundle.TotalRows()),
		slog.Duration("elapsed", time.Since(start)))

	return report, nil
}

// validateBundle enforces the per-request input bounds. Empty datasets are
// valid input (the engine yields a zero report); oversized ones fail fast
// before any aggregation runs.
func (s *AnalysisService) validateBundle(bundle dataset.Bundle) error {
	ceiling := fmt.Sprintf("gte=0,lte=%d", s.maxRows)

	for name, rows := range map[string]int{
		"accounts":  len(bundle.Accounts),
		"financial": len(bundle.Financial),
		"jotform":   len(bundle.Jotform),
	} {
		if err := s.validate.Var(rows, ceiling); err != nil {
			return fmt.Errorf("%w: %s dataset has %d rows (max %d)",
				ErrRowCeilingExceeded, name, rows, s.maxRows)
		}
	}

	return nil
}

// MaxRows returns the configured per-dataset row ceiling.
func (s *AnalysisService) MaxRows() int {
	return s.maxRows
}
