package filter

import "strings"

type categoryRule struct {
	keyword string
	label   string
}

// Ordered rule table: the first rule whose keyword appears in the lower-cased
// title wins. Order is part of the contract — "data engineer" must sit above
// the broader "engineer" rule or it would be shadowed.
var categoryRules = []categoryRule{
	{"data analyst", "Data Analyst"},
	{"data engineer", "Data Engineer"},
	{"engineer", "Data Engineer"},
	{"business analyst", "Business Analyst"},
	{"analytics analyst", "Analytics Engineer"},
	{"data scientist", "Data Scientist"},
	{"report developer", "Report Developer"},
	{"solutions architect", "Solutions Architect"},
}

// Classify maps a free-text job title to a category label. Total function,
// defaults to "unknown".
func Classify(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range categoryRules {
		if strings.Contains(lower, rule.keyword) {
			return rule.label
		}
	}
	return "unknown"
}
