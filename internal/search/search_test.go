package search

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"

	"github.com/datavex/leadforge/internal/model"
	"github.com/datavex/leadforge/pkg/serpapi"
)

type mockSerp struct {
	results []serpapi.Result
	err     error
	lastQ   string
	lastNum int
}

func (m *mockSerp) Search(_ context.Context, query string, num int) ([]serpapi.Result, error) {
	m.lastQ = query
	m.lastNum = num
	return m.results, m.err
}

func TestSignals_JoinsSnippets(t *testing.T) {
	serp := &mockSerp{results: []serpapi.Result{
		{Snippet: "raised $12M"},
		{Snippet: ""},
		{Snippet: "hiring 10 engineers"},
	}}
	c := NewCollector(serp, 100)

	got := c.Signals(context.Background(), "acme.io", model.SignalFiscal)

	assert.Equal(t, "raised $12M\nhiring 10 engineers", got)
	assert.Equal(t, maxSnippets, serp.lastNum)
	assert.Contains(t, serp.lastQ, "acme.io")
	assert.Contains(t, serp.lastQ, "funding")
}

func TestSignals_QueryPerType(t *testing.T) {
	serp := &mockSerp{}
	c := NewCollector(serp, 100)

	c.Signals(context.Background(), "acme.io", model.SignalTech)
	assert.Contains(t, serp.lastQ, "tech stack")

	c.Signals(context.Background(), "acme.io", model.SignalSize)
	assert.Contains(t, serp.lastQ, `"acme.io"`)
	assert.Contains(t, serp.lastQ, "number of employees")

	c.Signals(context.Background(), "acme.io", model.SignalType("exotic"))
	assert.Contains(t, serp.lastQ, "company news")
}

func TestSignals_SearchErrorYieldsEmpty(t *testing.T) {
	serp := &mockSerp{err: eris.New("quota exceeded")}
	c := NewCollector(serp, 100)

	assert.Empty(t, c.Signals(context.Background(), "acme.io", model.SignalFiscal))
}

func TestSignals_CapsSnippets(t *testing.T) {
	results := make([]serpapi.Result, 9)
	for i := range results {
		results[i] = serpapi.Result{Snippet: "s"}
	}
	c := NewCollector(&mockSerp{results: results}, 100)

	got := c.Signals(context.Background(), "acme.io", model.SignalFiscal)
	assert.Equal(t, "s\ns\ns\ns\ns", got)
}

func TestSignals_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewCollector(&mockSerp{results: []serpapi.Result{{Snippet: "x"}}}, 100)
	assert.Empty(t, c.Signals(ctx, "acme.io", model.SignalFiscal))
}
