package intel

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/datavex/leadforge/pkg/anthropic"
)

// OutreachUnavailable is returned verbatim when the model call fails; the
// drafter never raises.
const OutreachUnavailable = "ERROR: outreach draft unavailable. Please retry later."

const outreachSystemPrompt = `You are a sales engineer at DataVex AI writing first-touch cold emails. You write plainly and never oversell.`

const outreachPrompt = `Draft a cold outreach email to %s (%s).

Why we believe we can help them: %s
The DataVex service to pitch: %s

RULES:
- Plain text only, under 150 words.
- Do NOT invent personal names; open with a generic greeting such as "Hi there" or "Hello %s team".
- Do NOT leave unresolved placeholders like [Name] or {company}.
- Sign off exactly with:
Best,
The DataVex Team

Return only the email text.`

// Drafter turns a qualified lead into an email draft with a single
// stateless model call.
type Drafter struct {
	ai        anthropic.Client
	modelName string
}

// NewDrafter creates a Drafter bound to one model.
func NewDrafter(ai anthropic.Client, modelName string) *Drafter {
	return &Drafter{ai: ai, modelName: modelName}
}

// Draft returns the raw email text, or OutreachUnavailable on any failure.
func (d *Drafter) Draft(ctx context.Context, companyName, domain, justification, category string) string {
	prompt := fmt.Sprintf(outreachPrompt, companyName, domain, justification, category, companyName)

	resp, err := d.ai.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     d.modelName,
		MaxTokens: 512,
		System:    outreachSystemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		zap.L().Warn("outreach: model call failed",
			zap.String("company", companyName),
			zap.String("domain", domain),
			zap.Error(err),
		)
		return OutreachUnavailable
	}

	text := resp.Text()
	if text == "" {
		return OutreachUnavailable
	}
	return text
}
