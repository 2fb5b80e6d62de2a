package eval

import (
	"regexp"
	"strings"
)

// Models often wrap JSON replies in a fenced code block, with or without a
// language tag. fencedBlockRegex captures the payload inside such a block.
var fencedBlockRegex = regexp.MustCompile("(?s)```(?:[a-zA-Z0-9_-]+)?\\s*(.*?)\\s*```")

// ExtractJSON normalizes a model reply into a parseable payload: it strips
// an optional fenced code block and surrounding whitespace. Replies that
// are already bare JSON pass through unchanged.
func ExtractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := fencedBlockRegex.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}
	return raw
}
