package prompts

import (
	"bytes"
	"embed"
	"strings"
	"text/template"
	"unicode/utf8"
)

//go:embed templates/*.txt
var templateFS embed.FS

var (
	analysisTmpl  = template.Must(template.New("analyze.txt").ParseFS(templateFS, "templates/analyze.txt"))
	synthesisTmpl = template.Must(template.New("synthesize.txt").ParseFS(templateFS, "templates/synthesize.txt"))
)

// maxCodeRunes bounds the candidate code included in a prompt.
const maxCodeRunes = 20000

// AnalysisData holds template data for the per-submission analysis prompt.
type AnalysisData struct {
	Question    string
	Language    string
	Code        string
	PassRate    float64
	PassedTests int
	TotalTests  int
}

// QuestionSummary is one question's digest for the synthesis prompt.
type QuestionSummary struct {
	Number          int
	Question        string
	Language        string
	FinalScore      float64
	PassRate        float64
	EfficiencyScore int
	Critique        string
}

// SynthesisData holds template data for the batch-level synthesis prompt.
type SynthesisData struct {
	OverallScore float64
	Questions    []QuestionSummary
}

// BuildAnalysis renders the technical-review prompt for one submission.
func BuildAnalysis(d AnalysisData) (string, error) {
	d.Code = SanitizeCode(d.Code)

	var buf bytes.Buffer
	if err := analysisTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// BuildSynthesis renders the hiring-decision prompt for a whole batch.
func BuildSynthesis(d SynthesisData) (string, error) {
	var buf bytes.Buffer
	if err := synthesisTmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SanitizeCode prepares candidate code for embedding in a prompt: fence
// markers are removed so the code cannot break out of its delimited block,
// and oversized code is truncated.
func SanitizeCode(code string) string {
	code = strings.ReplaceAll(code, "```", "")
	code = strings.TrimSpace(code)

	if code == "" {
		return "[No code provided]"
	}

	if utf8.RuneCountInString(code) > maxCodeRunes {
		runes := []rune(code)
		code = string(runes[:maxCodeRunes]) + "\n\n[Code truncated due to length]"
	}

	return code
}
