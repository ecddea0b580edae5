package extractor

import "regexp"

// titleSelectors are probed in order; the first selector whose text is
// non-empty wins
var titleSelectors = []string{
	"h1",
	".event-title",
	".title",
	`[class*="title"]`,
	`[class*="event"]`,
}

// patternFamily is an ordered group of regular expressions for one
// field. Families are tried in order and the first family with any
// match wins; later families are not consulted.
type patternFamily struct {
	name     string
	patterns []*regexp.Regexp
}

var dateFamilies = []patternFamily{
	{
		name: "numeric",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`),
		},
	},
	{
		name: "month_name",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`),
		},
	},
	{
		name: "month_abbrev",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}\b`),
		},
	},
}

var timeFamilies = []patternFamily{
	{
		name: "meridiem",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:AM|PM)\b`),
		},
	},
	{
		name: "bare",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}:\d{2}\b`),
		},
	},
}

var addressFamilies = []patternFamily{
	{
		name: "street",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Boulevard|Blvd|Drive|Dr|Lane|Ln|Way|Court|Ct)\b`),
		},
	},
	{
		name: "city_state_zip",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b[A-Za-z\s]+,\s*[A-Z]{2}\s+\d{5}\b`),
		},
	},
}

// firstFamilyMatches returns every match from the first family that
// matches at all, deduplicated in order of appearance
func firstFamilyMatches(text string, families []patternFamily) []string {
	for _, family := range families {
		var matches []string
		seen := map[string]bool{}
		for _, pattern := range family.patterns {
			for _, m := range pattern.FindAllString(text, -1) {
				if !seen[m] {
					seen[m] = true
					matches = append(matches, m)
				}
			}
		}
		if len(matches) > 0 {
			return matches
		}
	}
	return nil
}
