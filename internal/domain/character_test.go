package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCatalog() *CharacterCatalog {
	return NewCharacterCatalog([]CharacterProfile{
		{Key: "andy", Name: "Andy", Description: "29 years old, blonde, blue eyes"},
		{Key: "Cony", Name: "Cony", Description: "21 years old, black hair, green eyes"},
	})
}

func TestCharacterCatalog_Context(t *testing.T) {
	catalog := testCatalog()

	tests := []struct {
		name     string
		keys     []string
		contains []string
		excludes []string
		exact    string
	}{
		{
			name:     "single character",
			keys:     []string{"andy"},
			contains: []string{"Andy: 29 years old, blonde, blue eyes"},
			excludes: []string{"Cony"},
		},
		{
			name:  "request order is kept",
			keys:  []string{"cony", "andy"},
			exact: "Cony: 21 years old, black hair, green eyes\nAndy: 29 years old, blonde, blue eyes",
		},
		{
			name:  "empty list",
			keys:  nil,
			exact: NoCharactersContext,
		},
		{
			name:  "explicit none",
			keys:  []string{"ninguno"},
			exact: NoCharactersContext,
		},
		{
			name:  "all characters",
			keys:  []string{"ambos"},
			exact: "Andy: 29 years old, blonde, blue eyes\nCony: 21 years old, black hair, green eyes",
		},
		{
			name:  "unknown keys are skipped",
			keys:  []string{"zed", "ANDY"},
			exact: "Andy: 29 years old, blonde, blue eyes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Context(tt.keys)
			if tt.exact != "" {
				assert.Equal(t, tt.exact, got)
			}
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, got, e)
			}
		})
	}
}

func TestCharacterCatalog_Keys(t *testing.T) {
	assert.Equal(t, []string{"andy", "cony"}, testCatalog().Keys())
}
