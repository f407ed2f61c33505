package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"memberpulse/internal/dataset"
)

var testCutoff = time.Date(2025, 8, 6, 0, 0, 0, 0, time.UTC)

func TestAnalyzeFunnel_AllBeforeCutoff(t *testing.T) {
	jotform := []dataset.JotformRecord{
		{SubmissionDate: "Jul 1, 2025", Email: "x@y.com"},
		{SubmissionDate: "Jul 15, 2025", Email: "nobody@y.com"},
	}
	identity := IdentityIndex{"x@y.com": "A1"}
	retention := RetentionIndex{"A1": false}

	stats := analyzeFunnel(jotform, identity, retention, nil, testCutoff)

	assert.Equal(t, 2, stats.Before.Submissions)
	assert.Equal(t, 2, stats.Before.UniqueEmails)
	assert.Equal(t, 1, stats.Before.Converted)
	assert.Equal(t, 50.0, stats.Before.ConversionRate)

	// Since-cutoff cohort is entirely zero, free-trial fields included.
	assert.Equal(t, CohortStats{}, stats.Since)
	assert.Equal(t, FreeTrialStats{}, stats.FreeTrial)
}

func TestAnalyzeFunnel_CutoffDayIsSince(t *testing.T) {
	jotform := []dataset.JotformRecord{
		{SubmissionDate: "Aug 5, 2025", Email: "a@y.com"},
		{SubmissionDate: "Aug 6, 2025", Email: "b@y.com"},
	}

	stats := analyzeFunnel(jotform, IdentityIndex{}, RetentionIndex{}, nil, testCutoff)

	assert.Equal(t, 1, stats.Before.Submissions)
	assert.Equal(t, 1, stats.Since.Submissions)
}

func TestAnalyzeFunnel_SameEmailBothCohorts(t *testing.T) {
	jotform := []dataset.JotformRecord{
		{SubmissionDate: "Jul 1, 2025", Email: "x@y.com"},
		{SubmissionDate: "Aug 10, 2025", Email: "X@Y.COM"},
	}

	stats := analyzeFunnel(jotform, IdentityIndex{}, RetentionIndex{}, nil, testCutoff)

	// Overall dedup counts once; each cohort deduplicates independently.
	assert.Equal(t, 2, stats.TotalSubmissions)
	assert.Equal(t, 1, stats.UniqueEmails)
	assert.Equal(t, 1, stats.DuplicateSubmissions)
	assert.Equal(t, 1, stats.Before.UniqueEmails)
	assert.Equal(t, 1, stats.Since.UniqueEmails)
}

func TestAnalyzeFunnel_UnparseableDateInNeitherCohort(t *testing.T) {
	jotform := []dataset.JotformRecord{
		{SubmissionDate: "yesterday", Email: "x@y.com"},
		{SubmissionDate: "Aug 10, 2025", Email: "z@y.com"},
	}

	stats := analyzeFunnel(jotform, IdentityIndex{}, RetentionIndex{}, nil, testCutoff)

	// Still counted in raw totals and the overall unique-email set.
	assert.Equal(t, 2, stats.TotalSubmissions)
	assert.Equal(t, 2, stats.UniqueEmails)
	assert.Equal(t, 0, stats.Before.Submissions)
	assert.Equal(t, 1, stats.Since.Submissions)
}

func TestAnalyzeFunnel_GrossAndNetConversion(t *testing.T) {
	jotform := []dataset.JotformRecord{
		{SubmissionDate: "Aug 10, 2025", Email: "a@y.com"},
		{SubmissionDate: "Aug 11, 2025", Email: "b@y.com"},
		{SubmissionDate: "Aug 12, 2025", Email: "c@y.com"},
		{SubmissionDate: "Aug 13, 2025", Email: "lost@y.com"},
	}
	identity := IdentityIndex{
		"a@y.com": "A1",
		"b@y.com": "A2",
		"c@y.com": "A3",
	}
	retention := RetentionIndex{"A1": false, "A2": true, "A3": false}

	stats := analyzeFunnel(jotform, identity, retention, nil, testCutoff)

	since := stats.Since
	assert.Equal(t, 4, since.UniqueEmails)
	assert.Equal(t, 3, since.Converted)
	assert.Equal(t, 75.0, since.ConversionRate)
	assert.Equal(t, 1, since.Canceled)
	assert.Equal(t, 2, since.Active)
	assert.Equal(t, since.Converted, since.Canceled+since.Active)
	assert.InDelta(t, 100.0/3, since.CancellationRate, 1e-9)
	assert.Equal(t, 50.0, since.NetConversionRate)
}

func TestAnalyzeFunnel_FreeTrialSplit(t *testing.T) {
	jotform := []dataset.JotformRecord{
		{SubmissionDate: "Aug 10, 2025", Email: "trial@y.com"},
		{SubmissionDate: "Aug 11, 2025", Email: "payer@y.com"},
	}
	identity := IdentityIndex{
		"trial@y.com": "A1",
		"payer@y.com": "A2",
	}
	retention := RetentionIndex{"A1": true, "A2": false}
	promoParticipants := map[string]struct{}{"A1": {}}

	stats := analyzeFunnel(jotform, identity, retention, promoParticipants, testCutoff)

	trial := stats.FreeTrial
	assert.Equal(t, 1, trial.Users)
	assert.Equal(t, 1, trial.PaidUsers)
	assert.Equal(t, trial.Users+trial.PaidUsers, stats.Since.Converted)
	assert.Equal(t, 50.0, trial.Rate)
	assert.Equal(t, 1, trial.Canceled)
	assert.Equal(t, 0, trial.Active)
	assert.Equal(t, 100.0, trial.CancellationRate)
}

func TestAnalyzeFunnel_BlankEmailsExcluded(t *testing.T) {
	jotform := []dataset.JotformRecord{
		{SubmissionDate: "Aug 10, 2025", Email: ""},
		{SubmissionDate: "Aug 11, 2025", Email: "   "},
		{SubmissionDate: "Aug 12, 2025", Email: "x@y.com"},
	}

	stats := analyzeFunnel(jotform, IdentityIndex{}, RetentionIndex{}, nil, testCutoff)

	assert.Equal(t, 3, stats.TotalSubmissions)
	assert.Equal(t, 1, stats.UniqueEmails)
	assert.Equal(t, 2, stats.DuplicateSubmissions)
	// Blank-email rows with parseable dates still count as cohort submissions.
	assert.Equal(t, 3, stats.Since.Submissions)
	assert.Equal(t, 1, stats.Since.UniqueEmails)
}

func TestAnalyzeFunnel_Empty(t *testing.T) {
	stats := analyzeFunnel(nil, IdentityIndex{}, RetentionIndex{}, nil, testCutoff)

	assert.Equal(t, 0, stats.TotalSubmissions)
	assert.Equal(t, 0, stats.UniqueEmails)
	assert.Equal(t, 0, stats.DuplicateSubmissions)
	assert.Equal(t, 0.0, stats.ConversionRate)
	assert.Equal(t, CohortStats{}, stats.Before)
	assert.Equal(t, CohortStats{}, stats.Since)
}
