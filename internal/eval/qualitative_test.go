package eval

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/pavelanni/codegrader/internal/model"
)

// stubGenerator is a deterministic Generator for tests. The reply function
// receives the prompt and decides the outcome; every prompt is recorded.
type stubGenerator struct {
	reply func(prompt string) (string, error)

	mu    sync.Mutex
	calls []string
}

func (s *stubGenerator) GenerateStructured(_ context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.calls = append(s.calls, prompt)
	s.mu.Unlock()
	return s.reply(prompt)
}

func (s *stubGenerator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

const validCritiqueJSON = `{
	"technical_analysis": {
		"efficiency_score": 8,
		"style_score": 7,
		"time_complexity": "O(n)",
		"space_complexity": "O(1)",
		"critique": "Clean two-pointer solution."
	},
	"feedback_for_candidate": {
		"what_went_well": "Correct and idiomatic.",
		"what_to_improve": "Add input validation."
	}
}`

func TestAnalyzeParsesReply(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare JSON", validCritiqueJSON},
		{"fenced JSON", "```json\n" + validCritiqueJSON + "\n```"},
		{"fenced without tag", "```\n" + validCritiqueJSON + "\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{reply: func(string) (string, error) { return tt.raw, nil }}
			a := NewAnalyzer(gen)

			sub := model.Submission{Question: "Reverse a string.", Language: "Go", Code: "func r(s string) string { return s }"}
			critique := a.Analyze(context.Background(), sub, Evaluate(sub))

			if critique.Technical.EfficiencyScore != 8 {
				t.Errorf("efficiency = %d, want 8", critique.Technical.EfficiencyScore)
			}
			if critique.Technical.StyleScore != 7 {
				t.Errorf("style = %d, want 7", critique.Technical.StyleScore)
			}
			if critique.Technical.TimeComplexity != "O(n)" {
				t.Errorf("time complexity = %q, want O(n)", critique.Technical.TimeComplexity)
			}
			if gen.callCount() != 1 {
				t.Errorf("generator called %d times, want 1", gen.callCount())
			}
		})
	}
}

func TestAnalyzeSyntaxErrorShortCircuits(t *testing.T) {
	gen := &stubGenerator{reply: func(string) (string, error) {
		t.Fatal("generator must not be called for syntax errors")
		return "", nil
	}}
	a := NewAnalyzer(gen)

	sub := model.Submission{Question: "Q", SyntaxError: true}
	critique := a.Analyze(context.Background(), sub, Evaluate(sub))

	if critique.Technical.EfficiencyScore != 5 || critique.Technical.StyleScore != 5 {
		t.Errorf("fallback scores = %d/%d, want 5/5",
			critique.Technical.EfficiencyScore, critique.Technical.StyleScore)
	}
	if critique.Technical.Critique != "AI Error" {
		t.Errorf("critique = %q, want AI Error", critique.Technical.Critique)
	}
	if gen.callCount() != 0 {
		t.Errorf("generator called %d times, want 0", gen.callCount())
	}
}

func TestAnalyzeFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		reply func(string) (string, error)
	}{
		{"call failure", func(string) (string, error) { return "", errors.New("connection refused") }},
		{"malformed JSON", func(string) (string, error) { return "not json at all", nil }},
		{"wrong schema type", func(string) (string, error) {
			return `{"technical_analysis": "oops"}`, nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &stubGenerator{reply: tt.reply}
			a := NewAnalyzer(gen)

			sub := model.Submission{Question: "Q", Code: "x", TestCaseResults: results(true)}
			critique := a.Analyze(context.Background(), sub, Evaluate(sub))

			if critique.Technical.EfficiencyScore != 5 || critique.Technical.StyleScore != 5 {
				t.Errorf("fallback scores = %d/%d, want 5/5",
					critique.Technical.EfficiencyScore, critique.Technical.StyleScore)
			}
			if critique.Feedback.WhatWentWell != "N/A" {
				t.Errorf("what_went_well = %q, want N/A", critique.Feedback.WhatWentWell)
			}
			if !strings.HasPrefix(critique.Feedback.WhatToImprove, "Error: ") {
				t.Errorf("what_to_improve = %q, want Error: prefix", critique.Feedback.WhatToImprove)
			}
		})
	}
}

func TestAnalyzePromptContents(t *testing.T) {
	gen := &stubGenerator{reply: func(string) (string, error) { return validCritiqueJSON, nil }}
	a := NewAnalyzer(gen)

	sub := model.Submission{
		Question:        "Find the factorial of a number.",
		Language:        "Java",
		Code:            "class Solution {}",
		TestCaseResults: results(true, false),
	}
	a.Analyze(context.Background(), sub, Evaluate(sub))

	if gen.callCount() != 1 {
		t.Fatalf("generator called %d times, want 1", gen.callCount())
	}
	prompt := gen.calls[0]
	for _, want := range []string{sub.Question, sub.Language, sub.Code, "50.00%", "(1/2 tests passed)"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
