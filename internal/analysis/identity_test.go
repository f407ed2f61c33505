package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"memberpulse/internal/dataset"
)

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "User@Example.COM", "user@example.com"},
		{"trims whitespace", "  x@y.com  ", "x@y.com"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeEmail(tt.input))
		})
	}
}

func TestBuildIdentityIndex(t *testing.T) {
	accounts := []dataset.AccountRecord{
		{AccountID: " A1 ", Email: "X@Y.com"},
		{AccountID: "A2", Email: ""},
		{AccountID: "", Email: "orphan@y.com"},
		{AccountID: "A3", Email: "  Z@Y.COM "},
	}

	index := BuildIdentityIndex(accounts)

	assert.Len(t, index, 2)
	assert.Equal(t, "A1", index["x@y.com"])
	assert.Equal(t, "A3", index["z@y.com"])
}

func TestBuildIdentityIndex_LastWriteWins(t *testing.T) {
	// Two accounts sharing an email: the later row owns the mapping.
	accounts := []dataset.AccountRecord{
		{AccountID: "A1", Email: "shared@y.com"},
		{AccountID: "A2", Email: "SHARED@y.com"},
	}

	index := BuildIdentityIndex(accounts)

	assert.Equal(t, "A2", index["shared@y.com"])
}

func TestIdentityIndex_Resolve(t *testing.T) {
	index := IdentityIndex{
		"x@y.com": "A1",
		"z@y.com": "A2",
	}

	emails := map[string]struct{}{
		"x@y.com":      {},
		"nobody@y.com": {},
		"z@y.com":      {},
	}

	ids := index.Resolve(emails)

	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "A1")
	assert.Contains(t, ids, "A2")
}
