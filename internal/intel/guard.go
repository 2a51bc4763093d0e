package intel

import (
	"strings"

	"github.com/datavex/leadforge/internal/model"
)

// hallucinationTokens are the justification keywords that, combined with an
// unreachable host and a mismatched name, mark a free-associated report.
var hallucinationTokens = []string{"unreachable", "dead", "invalid"}

// nameEchoesDomain reports whether the domain's first label appears inside
// the model's official name, case-insensitively. A grounded report on
// acme.io should mention "acme" somewhere in the name.
func nameEchoesDomain(officialName, domain string) bool {
	label := strings.ToLower(DomainLabel(domain))
	if label == "" {
		return false
	}
	return strings.Contains(strings.ToLower(officialName), label)
}

// justificationClaimsDeadDomain reports whether the model's own
// justification admits the domain may not exist.
func justificationClaimsDeadDomain(justification string) bool {
	lower := strings.ToLower(justification)
	for _, tok := range hallucinationTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// IsHallucinated detects a report the model invented from search noise
// rather than real signals. All three must hold: the host never resolved,
// the deduced name shares nothing with the domain, and the model itself
// hedged about the domain being dead. This is a heuristic with known false
// positives and negatives; do not strengthen or weaken it without product
// guidance.
func IsHallucinated(recon *model.ReconResult, intel *model.Intelligence, domain string) bool {
	if recon.WasReachable {
		return false
	}
	if nameEchoesDomain(intel.Dossier.OfficialName, domain) {
		return false
	}
	return justificationClaimsDeadDomain(intel.Verdict.Justification)
}
