package eval

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pavelanni/codegrader/internal/llm/prompts"
	"github.com/pavelanni/codegrader/internal/model"
)

// Generator is the single capability the pipeline needs from the external
// text-generation service: send a prompt, get back a reply that should be
// parseable as the requested JSON schema. Failures surface as errors, never
// panics. Tests substitute a deterministic stub.
type Generator interface {
	GenerateStructured(ctx context.Context, prompt string) (string, error)
}

// Analyzer obtains a qualitative critique for a submission from the
// text-generation service.
type Analyzer struct {
	gen Generator
}

// NewAnalyzer creates an Analyzer backed by the given generator.
func NewAnalyzer(gen Generator) *Analyzer {
	return &Analyzer{gen: gen}
}

// Analyze returns a critique for the submission. It never fails: any
// upstream problem (call error, malformed or off-schema reply) is logged
// and replaced with the fallback critique. Submissions with a syntax error
// are not sent to the model at all.
func (a *Analyzer) Analyze(ctx context.Context, sub model.Submission, outcome model.TestOutcome) model.Critique {
	if sub.SyntaxError || outcome.Status == model.StatusSyntaxError {
		return FallbackCritique("Syntax Error - Code did not compile.")
	}

	prompt, err := prompts.BuildAnalysis(prompts.AnalysisData{
		Question:    sub.Question,
		Language:    sub.Language,
		Code:        sub.Code,
		PassRate:    outcome.PassRate,
		PassedTests: outcome.PassedTests,
		TotalTests:  outcome.TotalTests,
	})
	if err != nil {
		slog.Error("build analysis prompt", "error", err)
		return FallbackCritique(err.Error())
	}

	raw, err := a.gen.GenerateStructured(ctx, prompt)
	if err != nil {
		slog.Error("qualitative analysis call failed", "question", sub.Question, "error", err)
		return FallbackCritique(err.Error())
	}

	var critique model.Critique
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &critique); err != nil {
		slog.Error("parse analysis reply", "error", err, "raw", raw)
		return FallbackCritique(err.Error())
	}

	return critique
}

// FallbackCritique is the degraded critique used when analysis is
// unavailable or inapplicable. The middle-of-scale scores keep the weighted
// score well-defined without rewarding or punishing the candidate for an
// upstream failure.
func FallbackCritique(detail string) model.Critique {
	return model.Critique{
		Technical: model.TechnicalAnalysis{
			EfficiencyScore: 5,
			StyleScore:      5,
			Critique:        "AI Error",
		},
		Feedback: model.CandidateFeedback{
			WhatWentWell:  "N/A",
			WhatToImprove: "Error: " + detail,
		},
	}
}
