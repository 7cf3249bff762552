// Package rules converts free-text business rules into a canonical ordered
// list of rule sentences via the LLM.
package rules

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/prompts"
)

// DefaultRules is the built-in rule set applied before the user provides any
var DefaultRules = []string{
	"Start with foundational certifications before advanced options.",
	"Align recommendations to the candidate's current or target role.",
	"Avoid overlapping certifications unless the user explicitly asks.",
}

// InvalidRuleFormatError indicates the model response could not be parsed as
// a JSON array of strings. Unlike CV extraction this is fatal: rules gate
// recommendation correctness, and a silent empty-rules fallback would change
// behavior the user did not ask for.
type InvalidRuleFormatError struct {
	Raw   string
	Cause error
}

func (e *InvalidRuleFormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid rule format: %v", e.Cause)
	}
	return "invalid rule format: response is not a JSON array of strings"
}

func (e *InvalidRuleFormatError) Unwrap() error {
	return e.Cause
}

// Normalize parses a free-text rules block into a list of normalized rule
// sentences. An empty input is a valid, meaningful request for "no
// constraints": it returns an empty list without calling the LLM.
func Normalize(ctx context.Context, client llm.Client, rulesText string) ([]string, error) {
	if strings.TrimSpace(rulesText) == "" {
		return []string{}, nil
	}

	template := prompts.MustGet("rules.json", "normalize-rules")
	prompt := prompts.Format(template, map[string]string{
		"RulesText": rulesText,
	})

	response, err := client.Generate(ctx, prompt, nil, llm.TierLite)
	if err != nil {
		return nil, fmt.Errorf("rule normalization failed: %w", err)
	}

	cleaned := llm.CleanJSONBlock(response)

	var parsed []string
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &InvalidRuleFormatError{Raw: response, Cause: err}
	}
	if parsed == nil {
		parsed = []string{}
	}

	return parsed, nil
}
