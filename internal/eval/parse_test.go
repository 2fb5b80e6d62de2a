package eval

import "testing"

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"bare JSON", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace", "\n  {\"a\": 1}  \n", `{"a": 1}`},
		{"fenced without tag", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with json tag", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"fenced with prose around", "Here you go:\n```json\n{\"a\": 1}\n```\nHope that helps.", `{"a": 1}`},
		{"multiline payload", "```json\n{\n  \"a\": 1,\n  \"b\": 2\n}\n```", "{\n  \"a\": 1,\n  \"b\": 2\n}"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractJSON(tt.raw)
			if got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
