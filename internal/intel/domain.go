package intel

import (
	"regexp"
	"strings"
)

// hostnameChars is the coarse character filter for domains. Intentionally
// permissive (accepts some invalid hostnames) and intentionally strict
// (rejects localhost-style names without a dot) — a filter, not RFC 1035.
var hostnameChars = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)

// NormalizeDomain canonicalizes free-form input into a bare lowercase
// domain: no scheme, no leading www., no path/query/fragment/port.
// Total — never fails, garbage in yields garbage out for IsValidDomain
// to reject.
func NormalizeDomain(raw string) string {
	d := strings.ToLower(strings.TrimSpace(raw))
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimPrefix(d, "www.")
	if idx := strings.IndexAny(d, "/?#"); idx >= 0 {
		d = d[:idx]
	}
	if idx := strings.Index(d, ":"); idx >= 0 {
		d = d[:idx]
	}
	return d
}

// IsValidDomain reports whether a normalized domain is worth analyzing:
// at least one dot, length >= 4, hostname-ish characters only.
func IsValidDomain(domain string) bool {
	if !strings.Contains(domain, ".") || len(domain) < 4 {
		return false
	}
	return hostnameChars.MatchString(domain)
}

// DomainLabel returns the first label of a domain ("acme" for "acme.io").
func DomainLabel(domain string) string {
	if idx := strings.Index(domain, "."); idx >= 0 {
		return domain[:idx]
	}
	return domain
}

// FallbackName derives a display name from a domain by capitalizing its
// first label.
func FallbackName(domain string) string {
	label := DomainLabel(domain)
	if label == "" {
		return domain
	}
	return strings.ToUpper(label[:1]) + strings.ToLower(label[1:])
}
