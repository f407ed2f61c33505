package services

import (
	"context"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memberpulse/internal/config"
	"memberpulse/internal/dataset"
)

func testServiceConfig(maxRows int) *config.Config {
	return &config.Config{
		Analysis: config.AnalysisConfig{
			FreePromoCode:   "free",
			CancelSentinel:  "Cancel",
			FreeTrialCutoff: "2025-08-06",
			MaxRows:         maxRows,
		},
	}
}

func TestNewAnalysisService_InvalidConfig(t *testing.T) {
	cfg := testServiceConfig(100)
	cfg.Analysis.FreeTrialCutoff = "bogus"

	_, err := NewAnalysisService(cfg, slog.Default(), nil)
	require.Error(t, err)
}

func TestAnalysisService_Run(t *testing.T) {
	svc, err := NewAnalysisService(testServiceConfig(100), slog.Default(), nil)
	require.NoError(t, err)

	bundle := dataset.Bundle{
		Accounts: []dataset.AccountRecord{
			{AccountID: "A1", Email: "x@y.com"},
			{AccountID: "A2", Email: "z@y.com", Cancel: "Cancel"},
		},
	}

	report, err := svc.Run(context.Background(), bundle)
	require.NoError(t, err)

	assert.Equal(t, 2, report.TotalMembers)
	assert.Equal(t, 50.0, report.CancellationRate)
}

func TestAnalysisService_Run_EmptyBundle(t *testing.T) {
	svc, err := NewAnalysisService(testServiceConfig(100), slog.Default(), nil)
	require.NoError(t, err)

	report, err := svc.Run(context.Background(), dataset.Bundle{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.TotalMembers)
}

func TestAnalysisService_Run_RowCeiling(t *testing.T) {
	svc, err := NewAnalysisService(testServiceConfig(2), slog.Default(), nil)
	require.NoError(t, err)

	bundle := dataset.Bundle{
		Jotform: make([]dataset.JotformRecord, 3),
	}

	_, err = svc.Run(context.Background(), bundle)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRowCeilingExceeded)
	assert.Contains(t, err.Error(), "jotform")
}
