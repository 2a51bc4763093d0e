// Package model defines the request-scoped data types flowing through the
// intelligence pipeline. Every value here is created and discarded within a
// single analysis; nothing is persisted.
package model

import "time"

// ReconResult holds what the Scout learned from the target's home page.
// Created once per analysis by the recon collector; immutable afterward.
type ReconResult struct {
	Text       string `json:"text"`
	Title      string `json:"title"`
	HTTPStatus int    `json:"http_status"`
	// WasReachable is false only on DNS/host-resolution failure. Timeouts,
	// TLS errors, and blocked access report true: the site exists but
	// scraping was denied. The hallucination guard depends on this split.
	WasReachable bool `json:"was_reachable"`
}

// SignalType names a category of search-engine query.
type SignalType string

const (
	SignalFiscal SignalType = "fiscal"
	SignalTech   SignalType = "tech"
	SignalSize   SignalType = "size"
)

// SignalBundle maps signal types to newline-joined search snippets.
// A missing or empty entry means the search failed or returned nothing.
type SignalBundle map[SignalType]string

// SizeFlag is the model's size classification of the target company.
type SizeFlag string

const (
	SizeSmall           SizeFlag = "SMALL"
	SizeMidMarket       SizeFlag = "MID_MARKET"
	SizeLargeEnterprise SizeFlag = "LARGE_ENTERPRISE"
	SizeUnknown         SizeFlag = "UNKNOWN"
)

// ValidSizeFlag reports whether s is one of the declared size flags.
func ValidSizeFlag(s SizeFlag) bool {
	switch s {
	case SizeSmall, SizeMidMarket, SizeLargeEnterprise, SizeUnknown:
		return true
	}
	return false
}

// Dossier is the model-produced company profile, after deterministic repair.
type Dossier struct {
	OfficialName       string   `json:"official_name"`
	Summary            string   `json:"summary"`
	Industry           string   `json:"industry"`
	EstimatedTechStack []string `json:"estimated_tech_stack"`
	CompanySize        string   `json:"company_size"`
	CompanyStage       string   `json:"company_stage"`
}

// Analysis holds the strategic read on the target.
type Analysis struct {
	PainPoints     []string `json:"pain_points"`
	StrategicPivot string   `json:"strategic_pivot"`
	WhyNow         string   `json:"why_now"`
}

// Verdict is the qualification decision.
type Verdict struct {
	Score          int      `json:"score"`
	Recommendation string   `json:"recommendation"` // "YES" or "NO"
	Justification  string   `json:"justification"`
	SizeFlag       SizeFlag `json:"size_flag"`
}

// Outreach is the suggested first-touch strategy.
type Outreach struct {
	TargetRole  string `json:"target_role"`
	CustomPitch string `json:"custom_pitch"`
	SubjectLine string `json:"subject_line"`
}

// Intelligence is the synthesis stage's output before final assembly.
type Intelligence struct {
	Dossier  Dossier  `json:"dossier"`
	Analysis Analysis `json:"analysis"`
	Verdict  Verdict  `json:"verdict"`
	Outreach Outreach `json:"outreach"`
}

// CompanyDossier is the dossier enriched with identity and timing metadata.
type CompanyDossier struct {
	Dossier
	Domain            string    `json:"domain"`
	Title             string    `json:"title"`
	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
}

// AnalysisReport is the top-level aggregate returned to the caller.
type AnalysisReport struct {
	AnalysisID        string         `json:"analysis_id"`
	CompanyDossier    CompanyDossier `json:"company_dossier"`
	StrategicAnalysis Analysis       `json:"strategic_analysis"`
	Verdict           Verdict        `json:"verdict"`
	OutreachStrategy  Outreach       `json:"outreach_strategy"`
	AgentTrace        []string       `json:"agent_trace"`
}

// Lead is a discovery-flow candidate qualified by the model.
type Lead struct {
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	WhyWeHelp string `json:"why_we_help"`
}

// DiscoveryResult is what the discovery orchestrator returns.
type DiscoveryResult struct {
	Leads      []Lead   `json:"leads"`
	AgentTrace []string `json:"agent_trace"`
}
