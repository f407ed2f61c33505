package analysis

import (
	"time"

	"memberpulse/internal/dataset"
)

// analyzeFunnel computes the lead-form pipeline statistics. Submissions are
// partitioned into before- and since-cutoff cohorts by parsed submission date
// (date-only comparison, cutoff inclusive on the "since" side); rows with
// unparseable dates stay in the raw totals but join neither cohort. Each
// cohort deduplicates emails independently, so a respondent active in both
// periods counts once per cohort.
func analyzeFunnel(
	jotform []dataset.JotformRecord,
	identity IdentityIndex,
	retention RetentionIndex,
	promoParticipants map[string]struct{},
	cutoff time.Time,
) FunnelStats {
	stats := FunnelStats{
		TotalSubmissions: len(jotform),
	}

	allEmails := make(map[string]struct{})
	beforeEmails := make(map[string]struct{})
	sinceEmails := make(map[string]struct{})

	for _, rec := range jotform {
		email := NormalizeEmail(rec.Email)
		if email != "" {
			allEmails[email] = struct{}{}
		}

		date, ok := parseReportDate(rec.SubmissionDate)
		if !ok {
			continue
		}
		if date.Before(cutoff) {
			stats.Before.Submissions++
			if email != "" {
				beforeEmails[email] = struct{}{}
			}
		} else {
			stats.Since.Submissions++
			if email != "" {
				sinceEmails[email] = struct{}{}
			}
		}
	}

	stats.UniqueEmails = len(allEmails)
	stats.DuplicateSubmissions = stats.TotalSubmissions - stats.UniqueEmails
	stats.Before.UniqueEmails = len(beforeEmails)
	stats.Since.UniqueEmails = len(sinceEmails)

	converted := identity.Resolve(allEmails)
	stats.Converted = len(converted)
	stats.ConversionRate = rate(stats.Converted, stats.UniqueEmails)

	fillCohort(&stats.Before, identity.Resolve(beforeEmails), retention)
	sinceConverted := identity.Resolve(sinceEmails)
	fillCohort(&stats.Since, sinceConverted, retention)

	stats.FreeTrial = classifyFreeTrial(sinceConverted, promoParticipants, retention)

	return stats
}

// fillCohort completes a cohort's conversion and retention fields from its
// converted-account set.
func fillCohort(cohort *CohortStats, converted map[string]struct{}, retention RetentionIndex) {
	cohort.Converted = len(converted)
	cohort.ConversionRate = rate(cohort.Converted, cohort.UniqueEmails)
	cohort.Canceled, cohort.Active = retention.Split(converted)
	cohort.CancellationRate = rate(cohort.Canceled, cohort.Converted)
	cohort.NetConversionRate = rate(cohort.Active, cohort.UniqueEmails)
}

// classifyFreeTrial intersects the since-cutoff conversions with the
// promotion participants. Gross conversions outside the intersection are
// direct payers.
func classifyFreeTrial(sinceConverted, promoParticipants map[string]struct{}, retention RetentionIndex) FreeTrialStats {
	trialUsers := make(map[string]struct{})
	for id := range sinceConverted {
		if _, ok := promoParticipants[id]; ok {
			trialUsers[id] = struct{}{}
		}
	}

	stats := FreeTrialStats{
		Users:     len(trialUsers),
		PaidUsers: len(sinceConverted) - len(trialUsers),
		Rate:      rate(len(trialUsers), len(sinceConverted)),
	}
	stats.Canceled, stats.Active = retention.Split(trialUsers)
	stats.CancellationRate = rate(stats.Canceled, stats.Users)

	return stats
}
