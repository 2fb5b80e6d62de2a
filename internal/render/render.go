// Package render formats a final report as human-readable text for
// terminal output. JSON output bypasses this package entirely.
package render

import (
	"context"
	"fmt"
	"strings"

	appI18n "github.com/pavelanni/codegrader/internal/i18n"
	"github.com/pavelanni/codegrader/internal/model"
)

// Text renders the report as a localized plain-text summary. The localizer
// is taken from the context (see i18n.WithLocalizer).
func Text(ctx context.Context, report model.FinalReport) string {
	var b strings.Builder

	b.WriteString(appI18n.T(ctx, "report.title") + "\n\n")

	status := appI18n.T(ctx, "report.status.failed")
	if report.Conclusion.Status == model.VerdictPassed {
		status = appI18n.T(ctx, "report.status.passed")
	}
	b.WriteString(appI18n.Td(ctx, "report.overall", map[string]any{
		"Score":  fmt.Sprintf("%.2f", report.Conclusion.OverallScore),
		"Status": status,
	}) + "\n\n")

	for i, q := range report.Questions {
		b.WriteString(appI18n.Td(ctx, "report.question", map[string]any{
			"Number":   i + 1,
			"Question": q.Question,
			"Language": q.Language,
		}) + "\n")
		b.WriteString("  " + appI18n.Td(ctx, "report.score", map[string]any{
			"Score": fmt.Sprintf("%.2f", q.FinalScore),
		}) + "\n")
		b.WriteString("  " + appI18n.Td(ctx, "report.passrate", map[string]any{
			"Rate":   fmt.Sprintf("%.2f", q.Metrics.PassRate),
			"Passed": q.Metrics.PassedTests,
			"Total":  q.Metrics.TotalTests,
		}) + "\n")
		b.WriteString("  " + appI18n.Td(ctx, "report.execstatus", map[string]any{
			"Status": string(q.Metrics.Status),
		}) + "\n")
		if q.Analysis.Technical.Critique != "" {
			b.WriteString("  " + appI18n.Td(ctx, "report.critique", map[string]any{
				"Text": q.Analysis.Technical.Critique,
			}) + "\n")
		}
		b.WriteString("\n")
	}

	summary := report.Conclusion.Summary
	if summary == (model.ExecutiveSummary{}) {
		b.WriteString(appI18n.T(ctx, "report.no_summary") + "\n")
		return b.String()
	}

	b.WriteString(appI18n.Td(ctx, "report.decision", map[string]any{"Decision": summary.HiringDecision}) + "\n")
	b.WriteString(appI18n.Td(ctx, "report.level", map[string]any{"Level": summary.LevelAssessment}) + "\n")
	b.WriteString(appI18n.Td(ctx, "report.conclusion", map[string]any{"Text": summary.Conclusion}) + "\n\n")

	plan := report.Conclusion.GrowthPlan
	b.WriteString(appI18n.Td(ctx, "report.strength", map[string]any{"Text": plan.MajorStrength}) + "\n")
	b.WriteString(appI18n.Td(ctx, "report.weakness", map[string]any{"Text": plan.MajorWeakness}) + "\n")
	b.WriteString(appI18n.Td(ctx, "report.recommendation", map[string]any{"Text": plan.Recommendation}) + "\n")

	return b.String()
}
