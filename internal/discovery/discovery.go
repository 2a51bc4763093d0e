// Package discovery finds new category-relevant leads from broad web
// search instead of analyzing a single known domain.
package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/catalog"
	"github.com/datavex/leadforge/internal/intel"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/anthropic"
	"github.com/datavex/leadforge/pkg/serpapi"
)

const (
	// maxSearchResults is how many raw results we request per discovery run.
	maxSearchResults = 20
	// maxCandidates caps how many deduplicated domains reach the model.
	maxCandidates = 5
)

// excludedDomainTokens mark job boards and hiring platforms that must never
// surface as leads, even if the model preserves one.
var excludedDomainTokens = []string{"indeed", "linkedin", "greenhouse"}

// categoryQueries holds hand-tuned discovery queries per service category,
// biased toward startup and small-team language and away from job boards.
var categoryQueries = map[string]string{
	"cloud_cost_optimization": `startup "our AWS bill" OR "cloud costs are growing" OR "reduce cloud spend" -site:indeed.com -site:linkedin.com -site:greenhouse.io`,
	"devops_automation":       `"small engineering team" "deployment is manual" OR "we need CI/CD" OR "devops bottleneck" -site:indeed.com -site:linkedin.com -site:greenhouse.io`,
	"platform_modernization":  `startup "legacy monolith" OR "migrating off" OR "technical debt slowing us" -site:indeed.com -site:linkedin.com -site:greenhouse.io`,
	"data_engineering":        `"early stage" startup "data pipeline" OR "analytics stack" struggling OR scaling -site:indeed.com -site:linkedin.com -site:greenhouse.io`,
	"sre_reliability":         `startup "outage postmortem" OR "reliability issues" OR "on-call is painful" -site:indeed.com -site:linkedin.com -site:greenhouse.io`,
}

const qualifySystemPrompt = `You are a lead researcher at DataVex AI. You qualify candidate companies as prospective clients. Always respond with a single valid JSON object and nothing else.`

const qualifyPrompt = `We offer this service: %s — %s

Candidate companies found by web search:
%s

TASK:
- Name each company properly (from its domain, title, and snippet).
- DROP any candidate that is clearly a job board, news aggregator, or directory rather than an operating company.
- For each surviving lead, write one to two sentences on why DataVex can help them with this service.

Respond with a JSON object of exactly this shape:
{"leads": [{"name": string, "domain": string, "why_we_help": string}]}`

// candidate is one deduplicated search hit headed for qualification.
type candidate struct {
	domain  string
	title   string
	snippet string
}

// Orchestrator runs the discovery flow: search, filter, qualify.
type Orchestrator struct {
	serp      serpapi.Client
	ai        anthropic.Client
	modelName string
	blocklist []string
	catalog   catalog.Catalog
}

// NewOrchestrator wires the discovery collaborators. An empty blocklist
// falls back to the shared enterprise blocklist.
func NewOrchestrator(serp serpapi.Client, ai anthropic.Client, modelName string, blocklist []string, cat catalog.Catalog) *Orchestrator {
	if len(blocklist) == 0 {
		blocklist = intel.DefaultBlocklist
	}
	return &Orchestrator{
		serp:      serp,
		ai:        ai,
		modelName: modelName,
		blocklist: blocklist,
		catalog:   cat,
	}
}

// Discover searches broadly for category-relevant candidates, deduplicates
// and blocklist-filters them, then asks the model to qualify each.
func (o *Orchestrator) Discover(ctx context.Context, category string) *model.DiscoveryResult {
	trace := intel.NewTrace()
	category = o.catalog.Resolve(category)
	log := zap.L().With(zap.String("category", category))

	trace.Addf("System: Starting lead discovery for category %s", category)

	query, ok := categoryQueries[category]
	if !ok {
		query = fmt.Sprintf(`%s startup OR "small team" -site:indeed.com -site:linkedin.com -site:greenhouse.io`, strings.ReplaceAll(category, "_", " "))
	}

	trace.Addf("Prospector Agent: Scanning the market for candidate companies")
	results, err := o.serp.Search(ctx, query, maxSearchResults)
	if err != nil {
		log.Warn("discover: search failed", zap.Error(err))
		trace.Addf("Prospector Agent: Market scan unavailable. No candidates collected.")
		return &model.DiscoveryResult{Leads: []model.Lead{}, AgentTrace: trace.Lines()}
	}

	candidates := o.collectCandidates(results)
	trace.Addf("Prospector Agent: Collected %d candidate domains", len(candidates))

	if len(candidates) == 0 {
		return &model.DiscoveryResult{Leads: []model.Lead{}, AgentTrace: trace.Lines()}
	}

	leads := o.qualify(ctx, category, candidates, trace)

	// Defense in depth: the model occasionally preserves excluded sources.
	kept := make([]model.Lead, 0, len(leads))
	for _, lead := range leads {
		lead.Domain = intel.NormalizeDomain(lead.Domain)
		if lead.Name == "" || lead.Domain == "" || isExcludedDomain(lead.Domain) {
			continue
		}
		kept = append(kept, lead)
	}

	trace.Addf("System: Lead discovery complete (%d leads)", len(kept))
	log.Info("discover: complete", zap.Int("leads", len(kept)))
	return &model.DiscoveryResult{Leads: kept, AgentTrace: trace.Lines()}
}

// collectCandidates normalizes, deduplicates, and blocklist-filters raw
// search results, capping accumulation at maxCandidates.
func (o *Orchestrator) collectCandidates(results []serpapi.Result) []candidate {
	seen := make(map[string]bool)
	var out []candidate
	for _, r := range results {
		if len(out) >= maxCandidates {
			break
		}
		domain := intel.NormalizeDomain(r.Link)
		if !intel.IsValidDomain(domain) || seen[domain] {
			continue
		}
		if intel.MatchesBlocklist(domain, o.blocklist) || isExcludedDomain(domain) {
			continue
		}
		seen[domain] = true
		out = append(out, candidate{domain: domain, title: r.Title, snippet: r.Snippet})
	}
	return out
}

// qualify asks the model to name and justify each candidate.
func (o *Orchestrator) qualify(ctx context.Context, category string, candidates []candidate, trace *intel.Trace) []model.Lead {
	var block strings.Builder
	for i, c := range candidates {
		fmt.Fprintf(&block, "%d. domain: %s\n   title: %s\n   snippet: %s\n", i+1, c.domain, c.title, c.snippet)
	}

	prompt := fmt.Sprintf(qualifyPrompt, category, o.catalog[category], block.String())

	resp, err := o.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     o.modelName,
		MaxTokens: 1024,
		System:    qualifySystemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("discover: model call failed", zap.Error(err))
		trace.Addf("Prospector Agent: Lead qualification halted. Returning no leads.")
		return nil
	}

	leads, err := parseLeads(resp.Text())
	if err != nil {
		zap.L().Warn("discover: parse failed", zap.Error(err))
		trace.Addf("Prospector Agent: Lead qualification output unreadable. Returning no leads.")
		return nil
	}

	trace.Addf("Prospector Agent: Model qualified %d leads", len(leads))
	return leads
}

// parseLeads coerces the model response into leads. Tolerates the response
// arriving as a JSON-encoded string of JSON by unwrapping and re-parsing
// before giving up.
func parseLeads(text string) ([]model.Lead, error) {
	var wrapper struct {
		Leads []model.Lead `json:"leads"`
	}

	cleaned := intel.CleanJSON(text)
	if err := json.Unmarshal([]byte(cleaned), &wrapper); err == nil {
		return wrapper.Leads, nil
	}

	// The model sometimes returns a quoted JSON string.
	var nested string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &nested); err == nil {
		if err := json.Unmarshal([]byte(intel.CleanJSON(nested)), &wrapper); err == nil {
			return wrapper.Leads, nil
		}
	}

	return nil, eris.Errorf("discover: unparseable lead payload: %.80s", text)
}

// isExcludedDomain reports whether the domain contains a banned source
// token (job boards, hiring platforms).
func isExcludedDomain(domain string) bool {
	for _, tok := range excludedDomainTokens {
		if strings.Contains(domain, tok) {
			return true
		}
	}
	return false
}
