package intel

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultBlocklist names enterprises the product never targets. Matching is
// exact or by subdomain suffix, so aws.amazon.com is covered by amazon.com.
var DefaultBlocklist = []string{
	"google.com",
	"amazon.com",
	"microsoft.com",
	"apple.com",
	"meta.com",
	"facebook.com",
	"netflix.com",
	"oracle.com",
	"ibm.com",
	"salesforce.com",
	"sap.com",
	"adobe.com",
	"intel.com",
	"cisco.com",
	"walmart.com",
	"jpmorganchase.com",
	"accenture.com",
	"infosys.com",
	"tcs.com",
}

// enterpriseSignal pairs a reason code with a text pattern indicating a
// large enterprise. Scanned in order; first match wins.
type enterpriseSignal struct {
	reason  string
	pattern *regexp.Regexp
}

var enterpriseSignals = []enterpriseSignal{
	{"stock_ticker", regexp.MustCompile(`\b(?:NYSE|NASDAQ|LSE|TSX|ASX)\s*:\s*[A-Z]{1,5}\b`)},
	{"employee_count", regexp.MustCompile(`(?i)\b(?:\d{3}(?:,\d{3})+|\d{6,})\s*\+?\s*employees\b`)},
	{"fortune_500", regexp.MustCompile(`(?i)\bfortune\s*(?:50|100|500)\b`)},
	{"publicly_traded", regexp.MustCompile(`(?i)\bpublicly\s+traded\b`)},
	{"global_headquarters", regexp.MustCompile(`(?i)\bglobal\s+headquarters\b`)},
	{"customer_scale", regexp.MustCompile(`(?i)\b\d+\s*(?:million|billion)\+?\s*(?:customers|users|subscribers)\b`)},
}

// PreScreener is the deterministic gate that keeps obviously-large
// companies away from the model. Pure: no network, no state mutation.
type PreScreener struct {
	blocklist []string
}

// NewPreScreener creates a gate over the given blocklist. An empty list
// falls back to DefaultBlocklist.
func NewPreScreener(blocklist []string) *PreScreener {
	if len(blocklist) == 0 {
		blocklist = DefaultBlocklist
	}
	return &PreScreener{blocklist: blocklist}
}

// Screen checks a domain plus its combined recon/size-signal text against
// the blocklist and the enterprise signal table. Returns true and a
// human-readable reason when the target is an enterprise we should not
// spend a model call on.
func (p *PreScreener) Screen(domain, signals string) (bool, string) {
	if MatchesBlocklist(domain, p.blocklist) {
		return true, fmt.Sprintf("domain %s is a known large enterprise (blocklist)", domain)
	}

	for _, sig := range enterpriseSignals {
		if sig.pattern.MatchString(signals) {
			return true, fmt.Sprintf("enterprise signal detected: %s", sig.reason)
		}
	}

	return false, ""
}

// MatchesBlocklist reports whether domain equals a blocklist entry or is a
// subdomain of one.
func MatchesBlocklist(domain string, blocklist []string) bool {
	for _, blocked := range blocklist {
		if domain == blocked || strings.HasSuffix(domain, "."+blocked) {
			return true
		}
	}
	return false
}
