// internal/normalizer/dream.go
package normalizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DreamGoodTidings = "بشارات"
	DreamWarnings    = "تحذيرات"
	DreamGuidance    = "هداية"
	DreamSymbols     = "رموز"
)

var dreamCategories = []struct {
	category string
	markers  []string
}{
	{DreamGoodTidings, []string{"بشارة", "خير", "رزق"}},
	{DreamWarnings, []string{"تحذير", "احذر", "خطر"}},
	{DreamGuidance, []string{"هداية", "إرشاد", "دعوة"}},
	{DreamSymbols, []string{"رمز", "يدل على", "معنى"}},
}

var commonSymbols = []string{"الماء", "النار", "الطير", "الشجر", "البيت", "الطريق", "النور", "الكتاب"}

// ExtractSection returns the paragraph that follows name in text. The
// paragraph ends at a blank line, at a line starting with a digit or a
// period, or at the end of text. It returns "" when name is absent.
func ExtractSection(text, name string) string {
	idx := strings.Index(text, name)
	if idx < 0 {
		return ""
	}
	rest := strings.TrimLeftFunc(text[idx+len(name):], func(r rune) bool {
		return r == ':' || unicode.IsSpace(r)
	})
	if rest == "" {
		return ""
	}

	lines := strings.Split(rest, "\n")
	kept := []string{lines[0]}
	for _, line := range lines[1:] {
		if line == "" || startsNewItem(line) {
			break
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func startsNewItem(line string) bool {
	r, _ := utf8.DecodeRuneInString(line)
	return r == '.' || unicode.IsDigit(r)
}

// CategorizeDream buckets an interpretation by its first matching marker
// group, or عام when none match.
func CategorizeDream(text string) string {
	for _, group := range dreamCategories {
		for _, marker := range group.markers {
			if strings.Contains(text, marker) {
				return group.category
			}
		}
	}
	return CategoryGeneral
}

// ExtractSymbols lists the common dream symbols mentioned in text, in a
// fixed order.
func ExtractSymbols(text string) []string {
	symbols := []string{}
	for _, symbol := range commonSymbols {
		if strings.Contains(text, symbol) {
			symbols = append(symbols, symbol)
		}
	}
	return symbols
}
