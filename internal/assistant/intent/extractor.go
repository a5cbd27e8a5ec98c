// Package intent turns a prompt into the model's proposed plan.
package intent

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-assistant-service/internal/catalog"
	"github.com/fekuna/omnipos-assistant-service/internal/llm"
)

type Extractor struct {
	llm       llm.Completer
	hintLimit int
}

func NewExtractor(completer llm.Completer, hintLimit int) *Extractor {
	return &Extractor{llm: completer, hintLimit: hintLimit}
}

func (e *Extractor) Model() string {
	return e.llm.Model()
}

// Extract makes exactly one completion call.
func (e *Extractor) Extract(ctx context.Context, prompt string, snap *catalog.Snapshot) (*Plan, error) {
	text, err := e.llm.Complete(ctx, SystemPrompt(snap, e.hintLimit), prompt)
	if err != nil {
		return nil, fmt.Errorf("complete: %w", err)
	}
	plan, err := ParsePlan(text)
	if err != nil {
		return nil, err
	}
	return plan, nil
}
