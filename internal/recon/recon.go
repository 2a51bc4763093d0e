// Package recon fetches a target company's home page and reduces it to the
// plaintext signal the synthesis stage consumes.
package recon

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/datavex/leadforge/internal/model"
)

// maxTextChars caps extracted page text before it reaches the model.
const maxTextChars = 10000

// defaultUserAgent is browser-like so plain corporate sites don't reject us.
const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

// Collector fetches home-page intelligence for a normalized domain.
// Implementations never return an error: fetch failures degrade into the
// ReconResult's reachability fields.
type Collector interface {
	Collect(ctx context.Context, domain string) *model.ReconResult
}

// HTTPCollector fetches https://{domain} with a single bounded GET.
type HTTPCollector struct {
	client    *http.Client
	userAgent string
}

// Option configures the collector.
type Option func(*HTTPCollector)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPCollector) {
		c.client = hc
	}
}

// WithUserAgent overrides the default user agent.
func WithUserAgent(ua string) Option {
	return func(c *HTTPCollector) {
		c.userAgent = ua
	}
}

// NewHTTPCollector creates a collector with a 15-second overall timeout.
func NewHTTPCollector(opts ...Option) *HTTPCollector {
	c := &HTTPCollector{
		client: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: defaultUserAgent,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Collect fetches the home page and extracts title and visible text.
//
// Failure policy: a DNS/host-resolution failure reports WasReachable=false
// (the domain is likely dead). Every other failure — timeout, TLS error,
// refused connection — reports WasReachable=true with empty text: the host
// exists but denied us.
func (c *HTTPCollector) Collect(ctx context.Context, domain string) *model.ReconResult {
	targetURL := "https://" + domain

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		zap.L().Warn("recon: create request failed", zap.String("domain", domain), zap.Error(err))
		return &model.ReconResult{WasReachable: true}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		if isDNSFailure(err) {
			zap.L().Info("recon: host resolution failed", zap.String("domain", domain))
			return &model.ReconResult{WasReachable: false}
		}
		zap.L().Info("recon: fetch failed", zap.String("domain", domain), zap.Error(err))
		return &model.ReconResult{WasReachable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		zap.L().Info("recon: read body failed", zap.String("domain", domain), zap.Error(err))
		return &model.ReconResult{WasReachable: true, HTTPStatus: resp.StatusCode}
	}

	text := stripHTML(string(body))
	if len(text) > maxTextChars {
		text = text[:maxTextChars]
	}

	return &model.ReconResult{
		Text:         text,
		Title:        extractTitle(body),
		HTTPStatus:   resp.StatusCode,
		WasReachable: true,
	}
}

// isDNSFailure reports whether err stems from host resolution.
func isDNSFailure(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// Some resolvers surface lookup failures as opaque strings.
	return strings.Contains(err.Error(), "no such host")
}

var titleRe = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// extractTitle pulls the <title> from HTML.
func extractTitle(body []byte) string {
	m := titleRe.FindSubmatch(body)
	if len(m) > 1 {
		return strings.TrimSpace(string(m[1]))
	}
	return ""
}

// stripHTML removes script/style blocks, strips tags, decodes entities,
// and collapses whitespace into plaintext suitable for the model.
func stripHTML(html string) string {
	for _, tag := range []string{"script", "style"} {
		re := regexp.MustCompile(`(?is)<` + tag + `[^>]*>.*?</` + tag + `>`)
		html = re.ReplaceAllString(html, "")
	}

	tagRe := regexp.MustCompile(`<[^>]+>`)
	html = tagRe.ReplaceAllString(html, " ")

	r := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
		"&nbsp;", " ",
	)
	html = r.Replace(html)

	spaceRe := regexp.MustCompile(`\s+`)
	html = spaceRe.ReplaceAllString(html, " ")

	return strings.TrimSpace(html)
}
