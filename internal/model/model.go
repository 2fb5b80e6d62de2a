package model

// Status classifies the execution result of a single submission.
type Status string

const (
	// StatusSyntaxError means the submitted code did not compile.
	StatusSyntaxError Status = "Syntax Error"
	// StatusRuntimeError means the code compiled but crashed during execution.
	StatusRuntimeError Status = "Runtime Error"
	// StatusPartialPass means some but not all test cases passed.
	StatusPartialPass Status = "Partial Pass"
	// StatusCompleted means every test case passed.
	StatusCompleted Status = "Completed"
)

// TestCaseResult is one executed test case as reported by the test harness.
type TestCaseResult struct {
	Input    any  `json:"input"`
	Expected any  `json:"expected"`
	Pass     bool `json:"pass"`
}

// Submission is one candidate's answer to one interview question, together
// with its executed test results. It is produced by the external test
// harness and is read-only to the scoring pipeline. The JSON tags are the
// harness wire format.
type Submission struct {
	Question        string           `json:"ai_generated_coding_question"`
	Language        string           `json:"language"`
	Code            string           `json:"User_code"`
	TestCaseResults []TestCaseResult `json:"test_case_results"`
	SyntaxError     bool             `json:"syntax_error"`
	RuntimeError    bool             `json:"runtime_error"`
}

// TestOutcome holds the deterministic metrics derived from test execution.
type TestOutcome struct {
	Status      Status  `json:"status"`
	PassRate    float64 `json:"pass_rate"`
	PassedTests int     `json:"passed_tests"`
	TotalTests  int     `json:"total_tests"`
}

// TechnicalAnalysis is the model's assessment of code efficiency and style.
// Scores are on a 1-10 scale.
type TechnicalAnalysis struct {
	EfficiencyScore int    `json:"efficiency_score"`
	StyleScore      int    `json:"style_score"`
	TimeComplexity  string `json:"time_complexity"`
	SpaceComplexity string `json:"space_complexity"`
	Critique        string `json:"critique"`
}

// CandidateFeedback holds the candidate-facing part of a critique.
type CandidateFeedback struct {
	WhatWentWell  string `json:"what_went_well"`
	WhatToImprove string `json:"what_to_improve"`
}

// Critique is the structured qualitative assessment of one submission.
// It may be a fallback value when the analysis call fails or the code
// never compiled.
type Critique struct {
	Technical TechnicalAnalysis `json:"technical_analysis"`
	Feedback  CandidateFeedback `json:"feedback_for_candidate"`
}

// QuestionReport is the complete evaluation of one submission.
type QuestionReport struct {
	Question   string      `json:"question"`
	Language   string      `json:"language"`
	FinalScore float64     `json:"final_score"`
	Metrics    TestOutcome `json:"metrics"`
	Analysis   Critique    `json:"ai_analysis"`
}

// ExecutiveSummary is the recruiter-facing hiring verdict synthesized
// across all questions.
type ExecutiveSummary struct {
	HiringDecision  string `json:"hiring_decision"`
	LevelAssessment string `json:"candidate_level_assessment"`
	Conclusion      string `json:"final_conclusion"`
}

// GrowthPlan is the candidate-facing holistic feedback.
type GrowthPlan struct {
	MajorStrength  string `json:"major_strength"`
	MajorWeakness  string `json:"major_weakness"`
	Recommendation string `json:"final_recommendation"`
}

// Conclusion is the batch-level verdict.
type Conclusion struct {
	OverallScore float64          `json:"overall_score"`
	Status       string           `json:"status"`
	Summary      ExecutiveSummary `json:"recruiter_summary"`
	GrowthPlan   GrowthPlan       `json:"candidate_growth_plan"`
}

// FinalReport is the complete output of the pipeline for one batch of
// submissions. Question order matches submission order.
type FinalReport struct {
	Questions  []QuestionReport `json:"detailed_question_analysis"`
	Conclusion Conclusion       `json:"final_conclusive_report"`
}

// Batch verdict strings.
const (
	VerdictPassed = "Passed"
	VerdictFailed = "Failed"
)
