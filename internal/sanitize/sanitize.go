// Package sanitize normalizes raw model output into a bounded, plain-text
// string that is safe to hand to the widget for display.
//
// The pipeline is a fixed contract: trim, strip everything outside printable
// ASCII plus newline, collapse newline runs, collapse whitespace runs, and
// optionally insert a line break after sentence-terminal punctuation. If the
// raw text arrives as a JSON object with a single "response" string field it
// is unwrapped first; anything that fails to unwrap is treated as plain text.
// Clean never fails on malformed input, the worst case is an empty string.
package sanitize

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Options controls the mode-dependent parts of the pipeline.
type Options struct {
	// SentenceBreaks inserts a newline after sentence-terminal punctuation
	// followed by whitespace, which reads better in plain-text rendering.
	SentenceBreaks bool
}

var (
	nonPrintableRE = regexp.MustCompile(`[^\x20-\x7E\n]`)
	newlineRunRE   = regexp.MustCompile(`\n{3,}`)
	spaceRunRE     = regexp.MustCompile(`[^\S\n]{2,}`)
	sentenceEndRE  = regexp.MustCompile(`([.!?])\s+`)
)

// Clean runs the full pipeline with sentence breaks enabled, which is the
// behavior the production chat endpoint ships.
func Clean(raw string) string {
	return CleanWithOptions(raw, Options{SentenceBreaks: true})
}

// CleanWithOptions runs the deterministic sanitization pipeline.
func CleanWithOptions(raw string, opts Options) string {
	text := strings.TrimSpace(raw)
	if unwrapped, ok := unwrapResponse(text); ok {
		text = strings.TrimSpace(unwrapped)
	}

	text = nonPrintableRE.ReplaceAllString(text, "")
	text = newlineRunRE.ReplaceAllString(text, "\n\n")
	text = spaceRunRE.ReplaceAllString(text, " ")
	if opts.SentenceBreaks {
		text = sentenceEndRE.ReplaceAllString(text, "$1\n")
	}

	return strings.TrimSpace(text)
}

// unwrapResponse unwraps a top-level {"response": "..."} object. The object
// must contain exactly that one field with a string value; anything else is
// passed through untouched so plain text is never misread as JSON.
func unwrapResponse(text string) (string, bool) {
	if !strings.HasPrefix(text, "{") {
		return "", false
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return "", false
	}
	if len(fields) != 1 {
		return "", false
	}

	raw, ok := fields["response"]
	if !ok {
		return "", false
	}

	var inner string
	if err := json.Unmarshal(raw, &inner); err != nil {
		return "", false
	}
	return inner, true
}
