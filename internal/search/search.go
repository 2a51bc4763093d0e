// Package search issues category-specific search-engine queries and bundles
// the resulting snippets for the synthesis stage.
package search

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/serpapi"
)

// maxSnippets caps how many result snippets feed one signal bundle entry.
const maxSnippets = 5

// queryTemplates holds the hand-tuned query per signal type.
var queryTemplates = map[model.SignalType]string{
	model.SignalFiscal: "%s funding OR layoffs OR revenue OR acquisition",
	model.SignalTech:   "%s tech stack OR engineering blog OR architecture",
	model.SignalSize:   `"%s" number of employees OR company size OR annual revenue`,
}

// Collector runs signal searches against a search client.
type Collector struct {
	serp    serpapi.Client
	limiter *rate.Limiter
}

// NewCollector creates a Collector. queriesPerSecond <= 0 defaults to 5.
func NewCollector(serp serpapi.Client, queriesPerSecond float64) *Collector {
	if queriesPerSecond <= 0 {
		queriesPerSecond = 5
	}
	return &Collector{
		serp:    serp,
		limiter: rate.NewLimiter(rate.Limit(queriesPerSecond), 1),
	}
}

// Signals runs the query for one signal type and returns up to five result
// snippets joined by newlines. Search failures degrade to an empty string,
// never an error: a missing signal is itself a signal.
func (c *Collector) Signals(ctx context.Context, domain string, qt model.SignalType) string {
	template, ok := queryTemplates[qt]
	if !ok {
		template = "%s company news"
	}
	query := fmt.Sprintf(template, domain)

	if err := c.limiter.Wait(ctx); err != nil {
		return ""
	}

	results, err := c.serp.Search(ctx, query, maxSnippets)
	if err != nil {
		zap.L().Warn("search: query failed",
			zap.String("domain", domain),
			zap.String("signal", string(qt)),
			zap.Error(err),
		)
		return ""
	}

	snippets := make([]string, 0, len(results))
	for _, r := range results {
		if len(snippets) >= maxSnippets {
			break
		}
		if r.Snippet != "" {
			snippets = append(snippets, r.Snippet)
		}
	}
	return strings.Join(snippets, "\n")
}
