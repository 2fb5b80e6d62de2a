package eval

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pavelanni/codegrader/internal/llm/prompts"
	"github.com/pavelanni/codegrader/internal/model"
)

// Reporter runs the full evaluation pipeline over a batch of submissions
// and assembles the final report.
type Reporter struct {
	gen      Generator
	analyzer *Analyzer
	composer *Composer
	cfg      model.ScoringConfig
}

// NewReporter creates a Reporter using the given generator and scoring
// configuration.
func NewReporter(gen Generator, cfg model.ScoringConfig) *Reporter {
	return &Reporter{
		gen:      gen,
		analyzer: NewAnalyzer(gen),
		composer: NewComposer(cfg.Weights),
		cfg:      cfg,
	}
}

// synthesisReply is the JSON schema requested from the model for the
// batch-level synthesis.
type synthesisReply struct {
	Summary    model.ExecutiveSummary `json:"recruiter_executive_summary"`
	GrowthPlan model.GrowthPlan       `json:"candidate_holistic_feedback"`
}

// Generate evaluates every submission in order and produces the final
// report. It never fails: upstream model failures degrade individual
// fields, never the report itself. Question order in the output always
// matches submission order, regardless of the configured concurrency.
func (r *Reporter) Generate(ctx context.Context, subs []model.Submission) model.FinalReport {
	reports := make([]model.QuestionReport, len(subs))

	if r.cfg.Concurrency > 1 && len(subs) > 1 {
		var g errgroup.Group
		g.SetLimit(r.cfg.Concurrency)
		for i, sub := range subs {
			i, sub := i, sub
			g.Go(func() error {
				reports[i] = r.evaluateOne(ctx, sub)
				return nil
			})
		}
		// Workers never return errors; Wait is just a barrier.
		_ = g.Wait()
	} else {
		for i, sub := range subs {
			reports[i] = r.evaluateOne(ctx, sub)
		}
	}

	overall := 0.0
	if len(reports) > 0 {
		sum := 0.0
		for _, rep := range reports {
			sum += rep.FinalScore
		}
		overall = round2(sum / float64(len(reports)))
	}

	status := model.VerdictFailed
	if overall >= r.cfg.PassThreshold {
		status = model.VerdictPassed
	}

	report := model.FinalReport{
		Questions: reports,
		Conclusion: model.Conclusion{
			OverallScore: overall,
			Status:       status,
		},
	}

	if len(reports) > 0 {
		summary, plan := r.synthesize(ctx, reports, overall)
		report.Conclusion.Summary = summary
		report.Conclusion.GrowthPlan = plan
	}

	return report
}

// evaluateOne runs the quantitative, qualitative, and composition stages
// for a single submission.
func (r *Reporter) evaluateOne(ctx context.Context, sub model.Submission) model.QuestionReport {
	outcome := Evaluate(sub)
	critique := r.analyzer.Analyze(ctx, sub, outcome)
	score := r.composer.Compose(outcome, critique, sub.SyntaxError)

	return model.QuestionReport{
		Question:   sub.Question,
		Language:   sub.Language,
		FinalScore: score,
		Metrics:    outcome,
		Analysis:   critique,
	}
}

// synthesize asks the model for the batch-level hiring verdict. On any
// failure it returns zero-valued structures: a missing synthesis must never
// prevent returning the per-question detail.
func (r *Reporter) synthesize(ctx context.Context, reports []model.QuestionReport, overall float64) (model.ExecutiveSummary, model.GrowthPlan) {
	data := prompts.SynthesisData{OverallScore: overall}
	for i, rep := range reports {
		data.Questions = append(data.Questions, prompts.QuestionSummary{
			Number:          i + 1,
			Question:        rep.Question,
			Language:        rep.Language,
			FinalScore:      rep.FinalScore,
			PassRate:        rep.Metrics.PassRate,
			EfficiencyScore: rep.Analysis.Technical.EfficiencyScore,
			Critique:        rep.Analysis.Technical.Critique,
		})
	}

	prompt, err := prompts.BuildSynthesis(data)
	if err != nil {
		slog.Error("build synthesis prompt", "error", err)
		return model.ExecutiveSummary{}, model.GrowthPlan{}
	}

	raw, err := r.gen.GenerateStructured(ctx, prompt)
	if err != nil {
		slog.Error("synthesis call failed", "error", err)
		return model.ExecutiveSummary{}, model.GrowthPlan{}
	}

	var reply synthesisReply
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &reply); err != nil {
		slog.Error("parse synthesis reply", "error", err, "raw", raw)
		return model.ExecutiveSummary{}, model.GrowthPlan{}
	}

	return reply.Summary, reply.GrowthPlan
}
