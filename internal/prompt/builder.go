// Package prompt assembles generative model prompts from retrieved context
// and a use-case instruction template.
package prompt

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"docgen/internal/models"
)

// DefaultContextBudgetChars bounds the retrieved context included in one
// prompt so the assembled request stays inside the model's context window.
const DefaultContextBudgetChars = 24000

const checksheetTemplate = `You are preparing a quality checksheet from the reference material below.

Reference material:
%s

Produce the checksheet fields, one per line, each formatted exactly as
"Field: Value". Do not add headings, numbering, or commentary.
%s`

const workInstructionTemplate = `You are writing a work instruction from the reference material below.

Reference material:
%s

Produce the instruction steps, one step per line, in execution order.
Do not add headings or commentary.
%s`

// Builder performs deterministic prompt assembly: no randomness, no external
// calls.
type Builder struct {
	budgetChars int
}

// Option configures a Builder.
type Option func(*Builder)

// WithContextBudget sets the retrieved-context character budget.
func WithContextBudget(chars int) Option {
	return func(b *Builder) {
		if chars > 0 {
			b.budgetChars = chars
		}
	}
}

func New(opts ...Option) *Builder {
	b := &Builder{budgetChars: DefaultContextBudgetChars}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build concatenates retrieved context, in the order provided, with the
// use-case template and an optional extra instruction. When the context
// budget would be exceeded, later (lower-ranked) contexts are dropped whole;
// context is never truncated mid-string and never dropped silently.
func (b *Builder) Build(useCase models.UseCase, contexts []string, instruction string) (string, error) {
	var template string
	switch useCase {
	case models.UseCaseChecksheet:
		template = checksheetTemplate
	case models.UseCaseWorkInstruction:
		template = workInstructionTemplate
	default:
		return "", fmt.Errorf("unknown use case: %q", useCase)
	}

	kept, dropped := b.fitBudget(contexts)
	if dropped > 0 {
		log.Warn().Int("dropped", dropped).Int("budget_chars", b.budgetChars).Msg("context exceeds prompt budget, dropping lowest-ranked entries")
	}

	extra := ""
	if strings.TrimSpace(instruction) != "" {
		extra = "\nAdditional instruction: " + strings.TrimSpace(instruction)
	}
	return fmt.Sprintf(template, strings.Join(kept, "\n\n"), extra), nil
}

func (b *Builder) fitBudget(contexts []string) (kept []string, dropped int) {
	total := 0
	for i, c := range contexts {
		total += len(c)
		if total > b.budgetChars && i > 0 {
			return contexts[:i], len(contexts) - i
		}
	}
	return contexts, 0
}
