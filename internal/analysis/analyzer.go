package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"memberpulse/internal/config"
	"memberpulse/internal/dataset"
)

// Analyzer computes funnel and retention reports. It holds only fixed
// configuration; every Analyze call builds its working indexes from scratch,
// so one Analyzer serves concurrent requests safely.
type Analyzer struct {
	cutoff         time.Time
	promoCode      string
	cancelSentinel string
	logger         *slog.Logger
}

// NewAnalyzer creates an analyzer from the analysis configuration.
func NewAnalyzer(cfg config.AnalysisConfig, logger *slog.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cutoff, err := time.Parse(config.ISODateLayout, cfg.FreeTrialCutoff)
	if err != nil {
		return nil, fmt.Errorf("invalid free-trial cutoff %q: %w", cfg.FreeTrialCutoff, err)
	}
	if strings.TrimSpace(cfg.FreePromoCode) == "" {
		return nil, fmt.Errorf("free promo code must not be empty")
	}
	if strings.TrimSpace(cfg.CancelSentinel) == "" {
		return nil, fmt.Errorf("cancel sentinel must not be empty")
	}

	return &Analyzer{
		cutoff:         cutoff,
		promoCode:      cfg.FreePromoCode,
		cancelSentinel: cfg.CancelSentinel,
		logger:         logger,
	}, nil
}

// Analyze runs one full analysis over the three datasets and assembles the
// report. It never fails for well-typed input: malformed rows are excluded
// per-aggregate and empty datasets produce a zero-valued report.
func (a *Analyzer) Analyze(ctx context.Context, bundle dataset.Bundle) *Report {
	start := time.Now()

	a.logger.InfoContext(ctx, "starting funnel analysis",
		slog.Int("accounts", len(bundle.Accounts)),
		slog.Int("financial", len(bundle.Financial)),
		slog.Int("jotform", len(bundle.Jotform)))

	identity := BuildIdentityIndex(bundle.Accounts)
	retention := BuildRetentionIndex(bundle.Accounts, a.cancelSentinel)

	report := &Report{
		TotalMembers: len(bundle.Accounts),
	}
	for _, acc := range bundle.Accounts {
		if strings.TrimSpace(acc.Cancel) == a.cancelSentinel {
			report.CanceledMembers++
		}
	}
	report.ActiveMembers = report.TotalMembers - report.CanceledMembers
	report.CancellationRate = rate(report.CanceledMembers, report.TotalMembers)

	promo := aggregatePromo(bundle.Financial, retention, a.promoCode)
	report.FreePromo = promo.stats

	report.Funnel = analyzeFunnel(bundle.Jotform, identity, retention, promo.participants, a.cutoff)

	report.MemberSources = MemberSources{
		FromJotform:    report.Funnel.Converted,
		NotFromJotform: report.TotalMembers - report.Funnel.Converted,
	}

	a.logger.InfoContext(ctx, "funnel analysis complete",
		slog.Int("total_members", report.TotalMembers),
		slog.Int("promo_users", report.FreePromo.UniqueUsers),
		slog.Int("converted", report.Funnel.Converted),
		slog.Duration("elapsed", time.Since(start)))

	return report
}

// Cutoff returns the analyzer's free-trial cutoff date.
func (a *Analyzer) Cutoff() time.Time {
	return a.cutoff
}
