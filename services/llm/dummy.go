package llmsvc

import (
	"context"
	"fmt"

	"github.com/trezcool/prepclass/core/material"
)

// DummyGenerator returns canned content; for tests and local development
// without an API key.
type DummyGenerator struct {
	// Err, when set, is returned by every call.
	Err error

	Calls []string // prompts received, in order
}

var _ material.Generator = (*DummyGenerator)(nil)

func NewDummyGenerator() *DummyGenerator { return &DummyGenerator{} }

func (gen *DummyGenerator) Generate(_ context.Context, prompt string) (string, error) {
	gen.Calls = append(gen.Calls, prompt)
	if gen.Err != nil {
		return "", gen.Err
	}
	return fmt.Sprintf("Generated document #%d:\n%s", len(gen.Calls), prompt), nil
}
