package records

import "strings"

// tagVocabulary maps diagnosis keywords to their display tags. Scan order is
// the vocabulary's declared order, and the output preserves it; each keyword
// contributes at most one tag.
var tagVocabulary = []struct {
	keyword string
	tag     string
}{
	{"diabetes", "Diabetes"},
	{"hypertension", "Hypertension"},
	{"asthma", "Asthma"},
	{"cancer", "Cancer"},
}

// Tags scans diagnosis free text, case-insensitively, for the fixed
// condition vocabulary and returns the matched tags in vocabulary order.
func Tags(diagnosis string) []string {
	lower := strings.ToLower(diagnosis)
	var tags []string
	for _, entry := range tagVocabulary {
		if strings.Contains(lower, entry.keyword) {
			tags = append(tags, entry.tag)
		}
	}
	return tags
}

// SeverityLevel is the badge shown for a classified record.
type SeverityLevel struct {
	Label       string `json:"label"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// severityPriority is the explicit match priority: when a diagnosis mentions
// several levels the first listed here wins. Mild outranking severe looks
// backwards but matches the upstream product behavior; changing it is a
// business decision, not a code fix.
var severityPriority = []struct {
	keyword string
	level   SeverityLevel
}{
	{"mild", SeverityLevel{Label: "Mild", Color: "success", Description: "Low concern, routine checkup recommended"}},
	{"moderate", SeverityLevel{Label: "Moderate", Color: "warning", Description: "Needs observation and possible medication"}},
	{"severe", SeverityLevel{Label: "Severe", Color: "danger", Description: "Urgent attention required"}},
}

// Severity classifies diagnosis text by case-insensitive substring match in
// priority order. No match reports false; that is the normal case for most
// records, not an error.
func Severity(diagnosis string) (SeverityLevel, bool) {
	lower := strings.ToLower(diagnosis)
	for _, entry := range severityPriority {
		if strings.Contains(lower, entry.keyword) {
			return entry.level, true
		}
	}
	return SeverityLevel{}, false
}
