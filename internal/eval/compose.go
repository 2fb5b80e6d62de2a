package eval

import (
	"github.com/pavelanni/codegrader/internal/model"
)

// Composer combines quantitative and qualitative signals into one final
// score per submission, according to an injected weight table.
type Composer struct {
	weights model.Weights
}

// NewComposer creates a Composer with the given rubric.
func NewComposer(w model.Weights) *Composer {
	return &Composer{weights: w}
}

// Compose returns the weighted score (0-100, two decimals) for one
// submission. A syntax error zeroes the score unconditionally. Otherwise
// the syntax weight is awarded flat for compiling, logic scales with the
// pass rate, efficiency with the efficiency score, and the combined
// quality+style weight with the style score. Zero-valued critique scores
// simply contribute nothing.
func (c *Composer) Compose(outcome model.TestOutcome, critique model.Critique, hadSyntaxError bool) float64 {
	if hadSyntaxError {
		return 0.0
	}

	w := c.weights
	total := w.Syntax
	total += outcome.PassRate / 100 * w.Logic
	total += float64(critique.Technical.EfficiencyScore) / 10 * w.Efficiency
	total += float64(critique.Technical.StyleScore) / 10 * (w.Quality + w.Style)

	return round2(total)
}
