package analysis

import (
	"strings"

	"memberpulse/internal/dataset"
)

// RetentionIndex records, per trimmed account identifier, whether the account
// is canceled. Retention splits are computed repeatedly (overall, per cohort,
// free-trial subset), so lookups go through this index rather than rescanning
// the accounts dataset.
type RetentionIndex map[string]bool

// BuildRetentionIndex indexes the accounts dataset by identifier. An account
// is canceled when its cancellation flag equals the sentinel exactly after
// trimming. Accounts with a blank identifier are excluded.
func BuildRetentionIndex(accounts []dataset.AccountRecord, cancelSentinel string) RetentionIndex {
	index := make(RetentionIndex, len(accounts))
	for _, acc := range accounts {
		id := strings.TrimSpace(acc.AccountID)
		if id == "" {
			continue
		}
		index[id] = strings.TrimSpace(acc.Cancel) == cancelSentinel
	}
	return index
}

// Split returns the canceled and active counts for a set of account
// identifiers. Identifiers absent from the index count as active; active is
// always len(ids) - canceled.
func (ix RetentionIndex) Split(ids map[string]struct{}) (canceled, active int) {
	for id := range ids {
		if ix[id] {
			canceled++
		}
	}
	return canceled, len(ids) - canceled
}
