package analysis

import (
	"strings"
	"time"

	"memberpulse/internal/config"
)

// reportDateLayouts are the accepted textual date forms of the source exports.
// The canonical layout is "Aug 6, 2025"; some rows omit the space after the
// comma ("Aug 6,2025") and both are treated as valid.
var reportDateLayouts = []string{
	config.ReportDateLayout, // "Jan 2, 2006"
	"Jan 2,2006",
}

// parseReportDate parses a transaction or submission date. The boolean is
// false for dates outside the accepted forms; callers exclude those rows from
// date-dependent aggregates without failing the analysis.
func parseReportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// monthKey formats a date as its "YYYY-MM" cohort key. Lexicographic order on
// these keys is chronological order.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
