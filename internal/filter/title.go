package filter

import "strings"

// MatchesTitle checks a job title against a keyword filter. Every
// whitespace-separated filter word must appear in the title, case-insensitive
// and in any order. An empty filter matches everything.
func MatchesTitle(title, titleFilter string) bool {
	if titleFilter == "" {
		return true
	}

	lower := strings.ToLower(title)
	for _, word := range strings.Fields(strings.ToLower(titleFilter)) {
		if !strings.Contains(lower, word) {
			return false
		}
	}
	return true
}
