package model

// Weights is the scoring rubric: how many of the 100 available points each
// dimension contributes. Syntax points are awarded flat for code that
// compiles; the rest are scaled by the corresponding signal.
type Weights struct {
	Syntax     float64
	Logic      float64
	Efficiency float64
	Quality    float64
	Style      float64
}

// DefaultWeights returns the standard rubric (sums to 100).
func DefaultWeights() Weights {
	return Weights{
		Syntax:     15,
		Logic:      40,
		Efficiency: 20,
		Quality:    15,
		Style:      10,
	}
}

// Total returns the sum of all weights.
func (w Weights) Total() float64 {
	return w.Syntax + w.Logic + w.Efficiency + w.Quality + w.Style
}

// DefaultPassThreshold is the overall average (inclusive) at or above which
// a batch is marked Passed.
const DefaultPassThreshold = 70.0

// ScoringConfig holds the tunable pipeline parameters set via CLI flags.
type ScoringConfig struct {
	Weights       Weights
	PassThreshold float64
	Concurrency   int // submissions analyzed in parallel; <=1 means sequential
}

// DefaultScoringConfig returns the standard configuration.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Weights:       DefaultWeights(),
		PassThreshold: DefaultPassThreshold,
		Concurrency:   1,
	}
}
