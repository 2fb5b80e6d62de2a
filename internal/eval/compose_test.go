package eval

import (
	"testing"

	"github.com/pavelanni/codegrader/internal/model"
)

func critiqueWith(efficiency, style int) model.Critique {
	return model.Critique{
		Technical: model.TechnicalAnalysis{
			EfficiencyScore: efficiency,
			StyleScore:      style,
		},
	}
}

func TestCompose(t *testing.T) {
	c := NewComposer(model.DefaultWeights())

	tests := []struct {
		name        string
		passRate    float64
		efficiency  int
		style       int
		syntaxError bool
		want        float64
	}{
		{"perfect submission", 100, 10, 10, false, 100.00},
		{"syntax error zeroes score", 100, 10, 10, true, 0.00},
		{"compiling code with nothing else", 0, 0, 0, false, 15.00},
		{"missing critique scores lose full weight", 100, 0, 0, false, 55.00},
		{"half of everything", 50, 5, 5, false, 57.50},
		{"fallback critique scores", 100, 5, 5, false, 77.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := model.TestOutcome{PassRate: tt.passRate}
			got := c.Compose(outcome, critiqueWith(tt.efficiency, tt.style), tt.syntaxError)
			if got != tt.want {
				t.Errorf("Compose() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComposeMonotonicity(t *testing.T) {
	c := NewComposer(model.DefaultWeights())
	base := c.Compose(model.TestOutcome{PassRate: 50}, critiqueWith(5, 5), false)

	if got := c.Compose(model.TestOutcome{PassRate: 75}, critiqueWith(5, 5), false); got < base {
		t.Errorf("raising pass rate lowered score: %v < %v", got, base)
	}
	if got := c.Compose(model.TestOutcome{PassRate: 50}, critiqueWith(8, 5), false); got < base {
		t.Errorf("raising efficiency lowered score: %v < %v", got, base)
	}
	if got := c.Compose(model.TestOutcome{PassRate: 50}, critiqueWith(5, 8), false); got < base {
		t.Errorf("raising style lowered score: %v < %v", got, base)
	}
}

func TestComposeCustomWeights(t *testing.T) {
	// A retuned rubric flows through without touching composer logic.
	w := model.Weights{Syntax: 10, Logic: 50, Efficiency: 20, Quality: 10, Style: 10}
	c := NewComposer(w)

	got := c.Compose(model.TestOutcome{PassRate: 100}, critiqueWith(10, 10), false)
	if got != 100.00 {
		t.Errorf("Compose() = %v, want 100", got)
	}

	got = c.Compose(model.TestOutcome{PassRate: 40}, critiqueWith(0, 0), false)
	if got != 30.00 {
		t.Errorf("Compose() = %v, want 30", got)
	}
}

func TestWeightsTotal(t *testing.T) {
	if got := model.DefaultWeights().Total(); got != 100 {
		t.Errorf("default weights total = %v, want 100", got)
	}
}
