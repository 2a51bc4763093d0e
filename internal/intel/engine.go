// Package intel implements the lead-qualification pipeline: deterministic
// guard logic layered around a single model call per analysis.
package intel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/catalog"
	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/internal/recon"
)

// SignalSearcher issues one category-specific search and returns bundled
// snippet text (empty on failure).
type SignalSearcher interface {
	Signals(ctx context.Context, domain string, qt model.SignalType) string
}

// Engine sequences one analysis: normalize, recon, cheap size search,
// pre-screen, full search, synthesis, hallucination guard, identity
// resolution. One request, one sequential pass, no shared mutable state.
type Engine struct {
	recon    recon.Collector
	search   SignalSearcher
	screener *PreScreener
	synth    *Synthesizer
	catalog  catalog.Catalog
}

// NewEngine wires the pipeline's collaborators.
func NewEngine(rc recon.Collector, sc SignalSearcher, screener *PreScreener, synth *Synthesizer, cat catalog.Catalog) *Engine {
	return &Engine{
		recon:    rc,
		search:   sc,
		screener: screener,
		synth:    synth,
		catalog:  cat,
	}
}

// Analyze runs the full pipeline for one domain and returns a well-formed
// report. The error return is the single "synthesis failed entirely"
// sentinel of the error contract; collaborator failures degrade instead.
func (e *Engine) Analyze(ctx context.Context, rawDomain, category string) (*model.AnalysisReport, error) {
	trace := NewTrace()
	domain := NormalizeDomain(rawDomain)
	category = e.catalog.Resolve(category)

	log := zap.L().With(zap.String("domain", domain), zap.String("category", category))
	trace.Addf("System: Starting autonomous journey for %s", domain)

	if !IsValidDomain(domain) {
		trace.Addf("System: Invalid domain format detected ('%s'). Aborting research.", rawDomain)
		log.Info("analyze: invalid domain input")
		return invalidInputReport(domain, trace), nil
	}

	// Recon.
	trace.Addf("Scout Agent: Initiating reconnaissance for %s", domain)
	rec := e.recon.Collect(ctx, domain)
	switch {
	case !rec.WasReachable:
		trace.Addf("Scout Agent: Target host resolution failed. Pivoting to external intelligence.")
	case rec.Text == "":
		trace.Addf("Scout Agent: Direct access restricted. Utilizing search-based data extraction.")
	default:
		trace.Addf("Scout Agent: Successfully scraped %d chars from home page", len(rec.Text))
	}

	// Cheap size signal, then the enterprise gate — before any model spend.
	trace.Addf("Researcher Agent: Researching size indicators for %s", domain)
	signals := model.SignalBundle{}
	signals[model.SignalSize] = e.search.Signals(ctx, domain, model.SignalSize)
	trace.Addf("Researcher Agent: Aggregated %d relevant market signals", snippetCount(signals[model.SignalSize]))

	if isEnterprise, reason := e.screener.Screen(domain, rec.Text+"\n"+signals[model.SignalSize]); isEnterprise {
		trace.Addf("Gatekeeper: Enterprise pre-screen rejected %s (%s).", domain, reason)
		log.Info("analyze: pre-screen rejected", zap.String("reason", reason))
		return enterpriseReport(domain, reason, rec, trace), nil
	}

	// Full research.
	for _, qt := range []model.SignalType{model.SignalFiscal, model.SignalTech} {
		trace.Addf("Researcher Agent: Researching %s indicators for %s", qt, domain)
		signals[qt] = e.search.Signals(ctx, domain, qt)
		trace.Addf("Researcher Agent: Aggregated %d relevant market signals", snippetCount(signals[qt]))
	}

	// Synthesis.
	intel := e.synth.Synthesize(ctx, domain, rec, signals, category, trace)
	if intel == nil {
		return nil, fmt.Errorf("analyze: intelligence synthesis failed for %s", domain)
	}

	// Hallucination guard.
	if IsHallucinated(rec, intel, domain) {
		trace.Addf("System: Hallucination Guard triggered. Domain %s appears to be dead/invalid.", domain)
		log.Info("analyze: hallucination guard triggered")
		return invalidDomainReport(domain, trace), nil
	}

	title := ResolveDisplayName(intel.Dossier.OfficialName, rec.Title, domain)
	log.Info("analyze: report complete",
		zap.String("title", title),
		zap.Int("score", intel.Verdict.Score),
		zap.String("recommendation", intel.Verdict.Recommendation),
	)

	return &model.AnalysisReport{
		AnalysisID: uuid.NewString(),
		CompanyDossier: model.CompanyDossier{
			Dossier:           intel.Dossier,
			Domain:            domain,
			Title:             title,
			AnalysisTimestamp: time.Now().UTC(),
		},
		StrategicAnalysis: intel.Analysis,
		Verdict:           intel.Verdict,
		OutreachStrategy:  intel.Outreach,
		AgentTrace:        trace.Lines(),
	}, nil
}

// snippetCount counts the snippets in a newline-joined bundle entry.
func snippetCount(joined string) int {
	if joined == "" {
		return 0
	}
	return strings.Count(joined, "\n") + 1
}

func emptyAnalysis() model.Analysis {
	return model.Analysis{PainPoints: []string{}, StrategicPivot: "N/A", WhyNow: "N/A"}
}

func emptyOutreach() model.Outreach {
	return model.Outreach{TargetRole: "N/A", CustomPitch: "N/A", SubjectLine: "N/A"}
}

// invalidInputReport is the fixed response for malformed domains. No
// collaborator is ever called on this path.
func invalidInputReport(domain string, trace *Trace) *model.AnalysisReport {
	return &model.AnalysisReport{
		AnalysisID: uuid.NewString(),
		CompanyDossier: model.CompanyDossier{
			Dossier: model.Dossier{
				OfficialName:       "N/A",
				Summary:            "The input provided is not a valid domain name (e.g., example.com). Please check for typos.",
				Industry:           "N/A",
				EstimatedTechStack: []string{},
			},
			Domain:            domain,
			Title:             "Invalid Input",
			AnalysisTimestamp: time.Now().UTC(),
		},
		StrategicAnalysis: emptyAnalysis(),
		Verdict: model.Verdict{
			Score:          0,
			Recommendation: "NO",
			Justification:  "The input format is invalid or too short to be a valid business website.",
			SizeFlag:       model.SizeUnknown,
		},
		OutreachStrategy: emptyOutreach(),
		AgentTrace:       trace.Lines(),
	}
}

// enterpriseReport is the fixed response when the pre-screen gate fires.
func enterpriseReport(domain, reason string, rec *model.ReconResult, trace *Trace) *model.AnalysisReport {
	return &model.AnalysisReport{
		AnalysisID: uuid.NewString(),
		CompanyDossier: model.CompanyDossier{
			Dossier: model.Dossier{
				OfficialName:       FallbackName(domain),
				Summary:            fmt.Sprintf("%s is a known or evident large enterprise, outside the DataVex ideal customer profile.", domain),
				Industry:           "Enterprise",
				EstimatedTechStack: []string{},
				CompanySize:        "Large",
				CompanyStage:       "Established",
			},
			Domain:            domain,
			Title:             ResolveDisplayName("", rec.Title, domain),
			AnalysisTimestamp: time.Now().UTC(),
		},
		StrategicAnalysis: emptyAnalysis(),
		Verdict: model.Verdict{
			Score:          0,
			Recommendation: "NO",
			Justification:  reason,
			SizeFlag:       model.SizeLargeEnterprise,
		},
		OutreachStrategy: emptyOutreach(),
		AgentTrace:       trace.Lines(),
	}
}

// invalidDomainReport replaces a hallucinated report wholesale.
func invalidDomainReport(domain string, trace *Trace) *model.AnalysisReport {
	return &model.AnalysisReport{
		AnalysisID: uuid.NewString(),
		CompanyDossier: model.CompanyDossier{
			Dossier: model.Dossier{
				OfficialName:       "Invalid Domain",
				Summary:            fmt.Sprintf("The domain %s could not be resolved and no relevant search data was found for this specific entity.", domain),
				Industry:           "N/A",
				EstimatedTechStack: []string{},
			},
			Domain:            domain,
			Title:             FallbackName(domain),
			AnalysisTimestamp: time.Now().UTC(),
		},
		StrategicAnalysis: emptyAnalysis(),
		Verdict: model.Verdict{
			Score:          0,
			Recommendation: "NO",
			Justification:  "Domain is unreachable and search results are likely search hallucinations for similar names.",
			SizeFlag:       model.SizeUnknown,
		},
		OutreachStrategy: emptyOutreach(),
		AgentTrace:       trace.Lines(),
	}
}
