// Package catalog loads the DataVex service catalog: an immutable mapping
// of service category to pitchable description, read once at startup.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// DefaultCategory is used when a caller does not name a service category.
const DefaultCategory = "cloud_cost_optimization"

// Catalog maps service category names to descriptions. Treated as read-only
// after Load.
type Catalog map[string]string

// Load reads the catalog JSON file. A missing or unparsable file yields an
// empty catalog — the pipeline still runs, the model just gets no service
// context.
func Load(path string) Catalog {
	data, err := os.ReadFile(path)
	if err != nil {
		zap.L().Warn("catalog: file unavailable, using empty catalog",
			zap.String("path", path),
			zap.Error(err),
		)
		return Catalog{}
	}

	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		zap.L().Warn("catalog: parse failed, using empty catalog",
			zap.String("path", path),
			zap.Error(err),
		)
		return Catalog{}
	}
	return c
}

// Describe renders the catalog as a prompt block, one service per line in
// stable order.
func (c Catalog) Describe() string {
	if len(c) == 0 {
		return "(no service catalog loaded)"
	}
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		fmt.Fprintf(&b, "- %s: %s\n", name, c[name])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Resolve returns the category to use for a request: the caller's choice if
// it names a known service, otherwise the default.
func (c Catalog) Resolve(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return DefaultCategory
	}
	return category
}
