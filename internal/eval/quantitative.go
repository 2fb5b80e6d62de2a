package eval

import (
	"math"

	"github.com/pavelanni/codegrader/internal/model"
)

// Evaluate derives the deterministic test metrics for a submission.
//
// A syntax error takes precedence over everything else: the code never
// compiled, so no test credit is possible. Otherwise a runtime-error flag
// wins over the pass-rate statuses.
func Evaluate(sub model.Submission) model.TestOutcome {
	total := len(sub.TestCaseResults)

	if sub.SyntaxError {
		return model.TestOutcome{
			Status:      model.StatusSyntaxError,
			PassRate:    0.0,
			PassedTests: 0,
			TotalTests:  total,
		}
	}

	passed := 0
	for _, r := range sub.TestCaseResults {
		if r.Pass {
			passed++
		}
	}

	passRate := 0.0
	if total > 0 {
		passRate = round2(float64(passed) / float64(total) * 100)
	}

	status := model.StatusCompleted
	switch {
	case sub.RuntimeError:
		status = model.StatusRuntimeError
	case passRate < 100:
		status = model.StatusPartialPass
	}

	return model.TestOutcome{
		Status:      status,
		PassRate:    passRate,
		PassedTests: passed,
		TotalTests:  total,
	}
}

// round2 rounds to two decimal places.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
