package intel

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestDraft_ReturnsModelText(t *testing.T) {
	ai := &mockAI{response: "Hi there,\n\nNoticed your AWS bill...\n\nBest,\nThe DataVex Team"}
	d := NewDrafter(ai, "test-model")

	draft := d.Draft(context.Background(), "Acme Robotics", "acme.io", "clear cloud cost pain", "cloud_cost_optimization")

	assert.Contains(t, draft, "The DataVex Team")
	assert.Equal(t, 1, ai.calls)
	assert.Contains(t, ai.lastReq.Messages[0].Content, "Acme Robotics")
	assert.Contains(t, ai.lastReq.Messages[0].Content, "clear cloud cost pain")
}

func TestDraft_ModelErrorDegrades(t *testing.T) {
	ai := &mockAI{err: eris.New("overloaded")}
	d := NewDrafter(ai, "test-model")

	draft := d.Draft(context.Background(), "Acme Robotics", "acme.io", "", "")
	assert.Equal(t, OutreachUnavailable, draft)
}

func TestDraft_EmptyResponseDegrades(t *testing.T) {
	ai := &mockAI{response: ""}
	d := NewDrafter(ai, "test-model")

	draft := d.Draft(context.Background(), "Acme Robotics", "acme.io", "", "")
	assert.Equal(t, OutreachUnavailable, draft)
}
