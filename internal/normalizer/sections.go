// internal/normalizer/sections.go
package normalizer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Sections are the labeled fields recoverable from free text. Each one is
// extracted on its own, so a missing label never hides the others.
type Sections struct {
	Answer      string
	Explanation string
	Reflection  string
}

var (
	answerPatterns      = labelPatterns("الإجابة", "إجابة", "answer")
	explanationPatterns = labelPatterns("شرح", "تفسير", "معنى")
	reflectionPatterns  = labelPatterns("تدبر", "تأمل", "تفكر")
)

// Minimum rune counts a capture must exceed to count as recovered.
const (
	minAnswerRunes  = 0
	minSectionRunes = 10
)

func labelPatterns(labels ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(labels))
	for _, label := range labels {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(label)+`["']?[:\s]*([^.]+)`))
	}
	return patterns
}

// ExtractLabeled runs every section extractor over text.
func ExtractLabeled(text string) Sections {
	return Sections{
		Answer:      firstCapture(text, answerPatterns, minAnswerRunes),
		Explanation: firstCapture(text, explanationPatterns, minSectionRunes),
		Reflection:  firstCapture(text, reflectionPatterns, minSectionRunes),
	}
}

// firstCapture returns the first capture, in pattern order, that is longer
// than minRunes once cut at the first blank line.
func firstCapture(text string, patterns []*regexp.Regexp, minRunes int) string {
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		capture := match[1]
		if idx := strings.Index(capture, "\n\n"); idx >= 0 {
			capture = capture[:idx]
		}
		capture = strings.Trim(strings.TrimSpace(capture), `"',`)
		if utf8.RuneCountInString(capture) > minRunes {
			return strings.TrimSpace(capture)
		}
	}
	return ""
}
