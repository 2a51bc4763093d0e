package intel

import "strings"

// genericTitles are scraped page titles that carry no identity signal.
var genericTitles = []string{"Unknown", "Home", "Index", "Default", "Welcome"}

// isGenericTitle reports whether a scraped title is useless as a display
// name: too short, or containing one of the generic placeholders.
func isGenericTitle(title string) bool {
	if len(title) < 3 {
		return true
	}
	lower := strings.ToLower(title)
	for _, g := range genericTitles {
		if strings.Contains(lower, strings.ToLower(g)) {
			return true
		}
	}
	return false
}

// ResolveDisplayName picks the final reported name for a lead. Priority:
// the model's official name, then a non-generic scraped title, then the
// capitalized first domain label.
func ResolveDisplayName(modelName, scrapedTitle, domain string) string {
	if modelName != "" && modelName != "Unknown" {
		return modelName
	}
	if !isGenericTitle(scrapedTitle) {
		return scrapedTitle
	}
	return FallbackName(domain)
}
