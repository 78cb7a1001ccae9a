package filter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Matches a leading integer followed by a unit code: m(inutes), h(ours), d(ays)
var relativeTimeRegex = regexp.MustCompile(`^(\d+)\s*([mhd])`)

// AgeInDays converts a relative posting time like "Posted 3h ago" into a
// day-equivalent age. Anything unparseable yields +Inf, so jobs with an
// unknown posting time never satisfy a finite recency cutoff.
func AgeInDays(postingTime string) float64 {
	if postingTime == "" || strings.Contains(postingTime, "not found") {
		return math.Inf(1)
	}

	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ToLower(postingTime), "posted", ""))

	match := relativeTimeRegex.FindStringSubmatch(cleaned)
	if match == nil {
		return math.Inf(1)
	}

	value, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return math.Inf(1)
	}

	switch match[2] {
	case "m":
		return value / (24 * 60)
	case "h":
		return value / 24
	default: // "d"
		return value
	}
}

// WithinLimit reports whether a posting time falls inside the recency window.
// The boundary is inclusive: a job posted exactly limit-ago still passes.
func WithinLimit(postingTime, timeLimit string) bool {
	if timeLimit == "" {
		return true
	}
	return AgeInDays(postingTime) <= AgeInDays(timeLimit)
}
