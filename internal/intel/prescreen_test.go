package intel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesBlocklist(t *testing.T) {
	blocklist := []string{"google.com", "amazon.com"}

	assert.True(t, MatchesBlocklist("google.com", blocklist))
	assert.True(t, MatchesBlocklist("aws.amazon.com", blocklist))
	assert.True(t, MatchesBlocklist("deep.sub.amazon.com", blocklist))

	// Substring without the dot boundary must not match.
	assert.False(t, MatchesBlocklist("notgoogle.com", blocklist))
	assert.False(t, MatchesBlocklist("google.common.io", blocklist))
	assert.False(t, MatchesBlocklist("acme.io", blocklist))
}

func TestScreen_Blocklist(t *testing.T) {
	p := NewPreScreener(nil)

	hit, reason := p.Screen("microsoft.com", "")
	require.True(t, hit)
	assert.Contains(t, reason, "microsoft.com")
	assert.Contains(t, reason, "blocklist")

	hit, reason = p.Screen("azure.microsoft.com", "")
	require.True(t, hit)
	assert.Contains(t, reason, "blocklist")
}

func TestScreen_EnterpriseSignals(t *testing.T) {
	p := NewPreScreener(nil)

	cases := []struct {
		name    string
		signals string
		reason  string
	}{
		{"stock ticker", "Acme Corp (NASDAQ: ACME) reported strong earnings", "stock_ticker"},
		{"stock ticker with space", "listed on NYSE : IBM since 1915", "stock_ticker"},
		{"comma employee count", "Acme employs over 120,000 employees worldwide", "employee_count"},
		{"plain employee count", "the firm has 250000 employees across 40 countries", "employee_count"},
		{"fortune 500", "a proud Fortune 500 company", "fortune_500"},
		{"fortune 100", "ranked in the fortune 100 list", "fortune_500"},
		{"publicly traded", "Acme is a publicly traded software vendor", "publicly_traded"},
		{"global hq", "visit our global headquarters in Dublin", "global_headquarters"},
		{"customer scale", "serving 300 million customers every day", "customer_scale"},
		{"user scale with plus", "over 2 billion+ users trust the platform", "customer_scale"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, reason := p.Screen("acme.io", tc.signals)
			require.True(t, hit)
			assert.Contains(t, reason, tc.reason)
		})
	}
}

func TestScreen_SmallCompanyPasses(t *testing.T) {
	p := NewPreScreener(nil)

	hit, reason := p.Screen("acme.io", "Acme is a 12-person startup building developer tools. 50 employees planned by next year.")
	assert.False(t, hit)
	assert.Empty(t, reason)
}

func TestScreen_SignalOrderFirstMatchWins(t *testing.T) {
	p := NewPreScreener(nil)

	// Text matches both ticker and fortune_500; ticker is scanned first.
	hit, reason := p.Screen("acme.io", "NYSE: ACM and a Fortune 500 staple")
	require.True(t, hit)
	assert.Contains(t, reason, "stock_ticker")
}

func TestScreen_NoFalsePositives(t *testing.T) {
	p := NewPreScreener(nil)

	cases := []struct {
		name    string
		signals string
	}{
		{"lowercase ticker text", "nasdaq: acme is not a real listing"},
		{"small employee count", "we have 45 employees"},
		{"four digit no comma grouping", "12,34 employees"},
		{"millions without audience noun", "raised 5 million dollars"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit, _ := p.Screen("acme.io", tc.signals)
			assert.False(t, hit)
		})
	}
}

func TestNewPreScreener_CustomBlocklist(t *testing.T) {
	p := NewPreScreener([]string{"rival.io"})

	hit, _ := p.Screen("rival.io", "")
	assert.True(t, hit)

	// Default list entries are not in force when a custom list is given.
	hit, _ = p.Screen("google.com", "")
	assert.False(t, hit)
}
