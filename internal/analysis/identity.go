package analysis

import (
	"strings"

	"memberpulse/internal/dataset"
)

// IdentityIndex maps normalized emails to trimmed account identifiers. It is
// rebuilt from the accounts dataset on every analysis call.
type IdentityIndex map[string]string

// NormalizeEmail lowercases and trims an email for cross-dataset joins.
// Free-text entry makes raw comparison unreliable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// BuildIdentityIndex builds the email-to-account mapping. Accounts with a
// blank email or identifier are excluded. When two accounts share a
// normalized email the later row wins (last-write-wins).
func BuildIdentityIndex(accounts []dataset.AccountRecord) IdentityIndex {
	index := make(IdentityIndex, len(accounts))
	for _, acc := range accounts {
		email := NormalizeEmail(acc.Email)
		id := strings.TrimSpace(acc.AccountID)
		if email == "" || id == "" {
			continue
		}
		index[email] = id
	}
	return index
}

// Resolve joins a set of normalized emails against the index, returning the
// set of matched account identifiers.
func (ix IdentityIndex) Resolve(emails map[string]struct{}) map[string]struct{} {
	ids := make(map[string]struct{})
	for email := range emails {
		if id, ok := ix[email]; ok {
			ids[id] = struct{}{}
		}
	}
	return ids
}
