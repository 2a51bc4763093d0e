package discovery

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datavex/leadforge/internal/catalog"
	"github.com/datavex/leadforge/pkg/anthropic"
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

type mockAI struct {
	response string
	err      error
	calls    int
	lastReq  anthropic.MessageRequest
}

func (m *mockAI) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return &anthropic.MessageResponse{
		Content: []anthropic.ContentBlock{{Type: "text", Text: m.response}},
	}, nil
}

func testCatalog() catalog.Catalog {
	return catalog.Catalog{"cloud_cost_optimization": "cut cloud spend"}
}

func newTestOrchestrator(serp *mockSerp, ai *mockAI) *Orchestrator {
	return NewOrchestrator(serp, ai, "test-model", nil, testCatalog())
}

func TestDiscover_HappyPath(t *testing.T) {
	serp := &mockSerp{results: []serpapi.Result{
		{Title: "Acme | Robots", Link: "https://acme.io/blog/aws-bill", Snippet: "our AWS bill doubled"},
		{Title: "Widget Co", Link: "https://widget.co", Snippet: "small team, manual deploys"},
	}}
	ai := &mockAI{response: `{"leads": [
		{"name": "Acme Robotics", "domain": "acme.io", "why_we_help": "cloud spend is hurting them"},
		{"name": "Widget Co", "domain": "widget.co", "why_we_help": "no CI/CD"}
	]}`}
	o := newTestOrchestrator(serp, ai)

	result := o.Discover(context.Background(), "cloud_cost_optimization")

	require.Len(t, result.Leads, 2)
	assert.Equal(t, "Acme Robotics", result.Leads[0].Name)
	assert.Equal(t, "acme.io", result.Leads[0].Domain)
	assert.Equal(t, maxSearchResults, serp.lastNum)
	assert.Equal(t, 1, ai.calls)

	// The hand-tuned query for the category excludes job boards.
	assert.Contains(t, serp.lastQ, "-site:indeed.com")
}

func TestDiscover_SearchFailureReturnsEmpty(t *testing.T) {
	serp := &mockSerp{err: eris.New("quota exceeded")}
	ai := &mockAI{}
	o := newTestOrchestrator(serp, ai)

	result := o.Discover(context.Background(), "cloud_cost_optimization")

	assert.Empty(t, result.Leads)
	assert.NotEmpty(t, result.AgentTrace)
	assert.Equal(t, 0, ai.calls)
}

func TestDiscover_UnknownCategoryUsesTemplateQuery(t *testing.T) {
	serp := &mockSerp{}
	ai := &mockAI{}
	o := newTestOrchestrator(serp, ai)

	o.Discover(context.Background(), "edge_computing")

	assert.Contains(t, serp.lastQ, "edge computing")
	assert.Contains(t, serp.lastQ, "-site:linkedin.com")
}

func TestCollectCandidates_DedupesAndCaps(t *testing.T) {
	o := newTestOrchestrator(&mockSerp{}, &mockAI{})

	results := []serpapi.Result{
		{Link: "https://acme.io/page1"},
		{Link: "https://www.acme.io/page2"}, // duplicate after normalization
		{Link: "https://one.io"},
		{Link: "https://two.io"},
		{Link: "https://three.io"},
		{Link: "https://four.io"},
		{Link: "https://five.io"}, // over the cap
	}

	candidates := o.collectCandidates(results)

	require.Len(t, candidates, maxCandidates)
	assert.Equal(t, "acme.io", candidates[0].domain)
	assert.Equal(t, "four.io", candidates[4].domain)
}

func TestCollectCandidates_FiltersBlocklistAndJobBoards(t *testing.T) {
	o := newTestOrchestrator(&mockSerp{}, &mockAI{})

	results := []serpapi.Result{
		{Link: "https://aws.amazon.com/case-study"},
		{Link: "https://www.linkedin.com/company/acme"},
		{Link: "https://jobs.greenhouse.io/acme"},
		{Link: "https://indeed.com/viewjob"},
		{Link: "not a url at all"},
		{Link: "https://acme.io"},
	}

	candidates := o.collectCandidates(results)

	require.Len(t, candidates, 1)
	assert.Equal(t, "acme.io", candidates[0].domain)
}

func TestDiscover_PostFiltersModelLeaks(t *testing.T) {
	serp := &mockSerp{results: []serpapi.Result{
		{Title: "Acme", Link: "https://acme.io", Snippet: "startup"},
	}}
	// The model smuggles a job board and a nameless lead back in.
	ai := &mockAI{response: `{"leads": [
		{"name": "Acme Robotics", "domain": "acme.io", "why_we_help": "x"},
		{"name": "LinkedIn", "domain": "linkedin.com", "why_we_help": "y"},
		{"name": "", "domain": "ghost.io", "why_we_help": "z"}
	]}`}
	o := newTestOrchestrator(serp, ai)

	result := o.Discover(context.Background(), "cloud_cost_optimization")

	require.Len(t, result.Leads, 1)
	assert.Equal(t, "acme.io", result.Leads[0].Domain)
}

func TestDiscover_ModelErrorReturnsNoLeads(t *testing.T) {
	serp := &mockSerp{results: []serpapi.Result{{Title: "Acme", Link: "https://acme.io", Snippet: "s"}}}
	ai := &mockAI{err: eris.New("overloaded")}
	o := newTestOrchestrator(serp, ai)

	result := o.Discover(context.Background(), "cloud_cost_optimization")
	assert.Empty(t, result.Leads)
}

func TestParseLeads_PlainObject(t *testing.T) {
	leads, err := parseLeads(`{"leads": [{"name": "Acme", "domain": "acme.io", "why_we_help": "x"}]}`)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Acme", leads[0].Name)
}

func TestParseLeads_FencedOutput(t *testing.T) {
	leads, err := parseLeads("```json\n{\"leads\": [{\"name\": \"Acme\", \"domain\": \"acme.io\", \"why_we_help\": \"x\"}]}\n```")
	require.NoError(t, err)
	require.Len(t, leads, 1)
}

func TestParseLeads_QuotedJSONString(t *testing.T) {
	// The whole payload arrives as a JSON-encoded string of JSON.
	leads, err := parseLeads(`"{\"leads\": [{\"name\": \"Acme\", \"domain\": \"acme.io\", \"why_we_help\": \"x\"}]}"`)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "acme.io", leads[0].Domain)
}

func TestParseLeads_Garbage(t *testing.T) {
	_, err := parseLeads("sorry, no leads today")
	assert.Error(t, err)
}
