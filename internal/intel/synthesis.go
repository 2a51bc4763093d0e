package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/catalog"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/anthropic"
)

// maxReconChars caps how much recon text goes into the prompt.
const maxReconChars = 5000

const synthesisSystemPrompt = `You are the Lead Strategist at DataVex AI. Your goal is to analyze a potential client and determine if they are a high-value lead for our services. Always respond with a single valid JSON object and nothing else.`

const synthesisPrompt = `DATA SOURCES:
1. Target Domain: %s
2. Website Recon: %s
3. Fiscal/News Signals: %s
4. Tech/Market Signals: %s
5. Size/Market Signals: %s

CRITICAL INSTRUCTIONS:
- DISTINGUISH BETWEEN NEWS AND TUTORIALS: if the search signals contain educational content like "System Design Interview", "How to build...", or "Tutorial", IGNORE it as a lead signal. It is educational content, NOT news about the company.
- If "Website Recon" is empty AND the search signals appear to be about a different company whose name merely resembles the target domain, you MUST conclude the domain is DEAD or INVALID.
- DO NOT make up information about a different company just because the names are similar.
- If the signals are purely educational or the domain is dead, set score to 0 and recommendation to "NO".

OUR SERVICES (DataVex), target category "%s":
%s

TASK:
- Identify the company's pain point (tech debt, high cloud costs, scalability issues, etc.).
- Find a strategic pivot or "why now" signal (new funding, rapid hiring, expansion, layoffs needing automation).
- Map at least one DataVex service to their needs.
- Estimate company size and stage, and classify size_flag as SMALL, MID_MARKET, LARGE_ENTERPRISE, or UNKNOWN.
- Score the lead 0-100 using this rubric (each band includes its lower bound): 0-10 large corporation, 11-35 mid-market with weak signals, 36-60 mid-market with a clear pain point, 61-100 small business with a clear pain point.
- Give a recommendation of "YES" or "NO" with a justification.
- Draft a hyper-personalized outreach strategy aimed at a CTO or Head of Engineering.

Respond with a JSON object of exactly this shape:
{
  "dossier": {"official_name": string, "summary": string, "industry": string, "estimated_tech_stack": [string], "company_size": string, "company_stage": string},
  "analysis": {"pain_points": [string], "strategic_pivot": string, "why_now": string},
  "verdict": {"score": number, "recommendation": "YES"|"NO", "justification": string, "size_flag": string},
  "outreach": {"target_role": string, "custom_pitch": string, "subject_line": string}
}`

// Synthesizer builds the model prompt from collected signals, invokes the
// model, and repairs its output.
type Synthesizer struct {
	ai        anthropic.Client
	modelName string
	maxTokens int64
	catalog   catalog.Catalog
}

// NewSynthesizer creates a Synthesizer bound to one model and catalog.
func NewSynthesizer(ai anthropic.Client, modelName string, maxTokens int64, cat catalog.Catalog) *Synthesizer {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &Synthesizer{ai: ai, modelName: modelName, maxTokens: maxTokens, catalog: cat}
}

// Synthesize runs the model over the collected signals and returns repaired
// intelligence. Any invocation or parsing failure degrades to a fixed
// low-confidence result — never an error.
func (s *Synthesizer) Synthesize(ctx context.Context, domain string, recon *model.ReconResult, signals model.SignalBundle, category string, trace *Trace) *model.Intelligence {
	trace.Addf("Synthesis Agent: Orchestrating multi-agent intelligence")

	reconText := recon.Text
	if len(reconText) > maxReconChars {
		reconText = reconText[:maxReconChars]
	}

	prompt := fmt.Sprintf(synthesisPrompt,
		domain,
		reconText,
		signals[model.SignalFiscal],
		signals[model.SignalTech],
		signals[model.SignalSize],
		category,
		s.catalog.Describe(),
	)

	resp, err := s.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     s.modelName,
		MaxTokens: s.maxTokens,
		System:    synthesisSystemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("synthesis: model call failed", zap.String("domain", domain), zap.Error(err))
		trace.Addf("Lead Analyst: Intelligence synthesis halted. Unreliable input signals detected.")
		return degradedIntelligence()
	}

	intel, err := parseIntelligence(resp.Text())
	if err != nil {
		zap.L().Warn("synthesis: parse failed", zap.String("domain", domain), zap.Error(err))
		trace.Addf("Lead Analyst: Intelligence synthesis halted. Unreliable input signals detected.")
		return degradedIntelligence()
	}

	// Self-identification guard: the model sees "Lead Strategist at DataVex"
	// in its prompt and occasionally names the target after us.
	if LeaksVendorBrand(intel.Dossier.OfficialName) {
		trace.Addf("Lead Analyst: Correcting internal platform name leak.")
		intel.Dossier.OfficialName = FallbackName(domain)
	}

	if intel.Dossier.OfficialName == "" || intel.Dossier.OfficialName == "Unknown" {
		intel.Dossier.OfficialName = FallbackName(domain)
	}

	trace.Addf("Lead Analyst: Strategic profile generated for %s (Score: %d)",
		intel.Dossier.OfficialName, intel.Verdict.Score)
	return intel
}

// LeaksVendorBrand reports whether the model named the target company after
// the vendor: both "data" and "vex" appear in the name, case-insensitively.
func LeaksVendorBrand(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "data") && strings.Contains(lower, "vex")
}

// degradedIntelligence is the fixed response when synthesis fails entirely.
func degradedIntelligence() *model.Intelligence {
	return &model.Intelligence{
		Dossier: model.Dossier{
			OfficialName:       "Invalid Target",
			Summary:            "Analysis failed: the provided input does not appear to be a valid or reachable business domain.",
			Industry:           "N/A",
			EstimatedTechStack: []string{},
		},
		Analysis: model.Analysis{
			PainPoints:     []string{},
			StrategicPivot: "N/A",
			WhyNow:         "N/A",
		},
		Verdict: model.Verdict{
			Score:          0,
			Recommendation: "NO",
			Justification:  "Our agents were unable to synthesize a high-confidence report for this target. It may be non-existent or providing conflicting signals.",
			SizeFlag:       model.SizeUnknown,
		},
		Outreach: model.Outreach{
			TargetRole:  "N/A",
			CustomPitch: "N/A",
			SubjectLine: "N/A",
		},
	}
}

// parseIntelligence coerces untrusted model output into an Intelligence
// with explicit defaults for every field.
func parseIntelligence(text string) (*model.Intelligence, error) {
	cleaned := CleanJSON(text)

	var raw map[string]any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, err
	}

	dossier := asMap(raw["dossier"])
	analysis := asMap(raw["analysis"])
	verdict := asMap(raw["verdict"])
	outreach := asMap(raw["outreach"])

	sizeFlag := model.SizeFlag(strings.ToUpper(asString(verdict["size_flag"], "")))
	if !model.ValidSizeFlag(sizeFlag) {
		sizeFlag = model.SizeUnknown
	}

	recommendation := strings.ToUpper(asString(verdict["recommendation"], "NO"))
	if recommendation != "YES" {
		recommendation = "NO"
	}

	return &model.Intelligence{
		Dossier: model.Dossier{
			OfficialName:       asString(dossier["official_name"], "Unknown"),
			Summary:            asString(dossier["summary"], ""),
			Industry:           asString(dossier["industry"], "Unknown"),
			EstimatedTechStack: asStringSlice(dossier["estimated_tech_stack"]),
			CompanySize:        asString(dossier["company_size"], "Unknown"),
			CompanyStage:       asString(dossier["company_stage"], "Unknown"),
		},
		Analysis: model.Analysis{
			PainPoints:     asStringSlice(analysis["pain_points"]),
			StrategicPivot: asString(analysis["strategic_pivot"], "N/A"),
			WhyNow:         asString(analysis["why_now"], "N/A"),
		},
		Verdict: model.Verdict{
			Score:          clampScore(asInt(verdict["score"], 0)),
			Recommendation: recommendation,
			Justification:  asString(verdict["justification"], ""),
			SizeFlag:       sizeFlag,
		},
		Outreach: model.Outreach{
			TargetRole:  asString(outreach["target_role"], "N/A"),
			CustomPitch: asString(outreach["custom_pitch"], "N/A"),
			SubjectLine: asString(outreach["subject_line"], "N/A"),
		},
	}, nil
}

// CleanJSON extracts a JSON object from text that may contain markdown code
// fences or surrounding prose.
func CleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asString(v any, def string) string {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return def
}

func asStringSlice(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

func asInt(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		var parsed float64
		if _, err := fmt.Sscanf(strings.TrimSpace(n), "%f", &parsed); err == nil {
			return int(parsed)
		}
	}
	return def
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
