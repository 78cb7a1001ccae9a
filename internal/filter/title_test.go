package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesTitle(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		filter   string
		expected bool
	}{
		{"empty filter matches anything", "Senior Data Engineer", "", true},
		{"single word present", "Data Analyst, Remote", "analyst", true},
		{"all words present, any order", "Senior Data Analyst", "analyst data", true},
		{"one word missing", "Senior Data Engineer", "data analyst", false},
		{"case insensitive", "DATA ANALYST, REMOTE", "data analyst", true},
		{"word as substring counts", "Data Analystics Hub", "analyst", true},
		{"empty title fails non-empty filter", "", "data", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MatchesTitle(tt.title, tt.filter))
		})
	}
}
