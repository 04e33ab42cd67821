// internal/knowledge/dreams.go
package knowledge

import "strings"

// CommonDream is a frequently asked dream with a short curated reading.
type CommonDream struct {
	Dream    string   `json:"dream"`
	Category string   `json:"category"`
	Brief    string   `json:"brief"`
	Symbols  []string `json:"symbols"`
	markers  []string
}

var commonDreams = []CommonDream{
	{
		Dream:    "رأيت في المنام أنني أصلي في المسجد الحرام",
		Category: "بشارات",
		Brief:    "رؤية إيجابية تدل على قبول الأعمال والتوفيق",
		Symbols:  []string{"المسجد", "الصلاة"},
		markers:  []string{"مسجد", "الحرام", "الكعبة"},
	},
	{
		Dream:    "حلمت أنني أقرأ القرآن الكريم",
		Category: "هداية",
		Brief:    "دلالة على الهداية والنور في الحياة",
		Symbols:  []string{"الكتاب", "النور"},
		markers:  []string{"القرآن", "قرآن", "أقرأ", "مصحف"},
	},
	{
		Dream:    "رأيت الماء الصافي في المنام",
		Category: "رموز",
		Brief:    "يرمز للطهارة والرزق الحلال",
		Symbols:  []string{"الماء"},
		markers:  []string{"الماء", "ماء"},
	},
}

// CommonDreams returns a copy of the curated dream list.
func CommonDreams() []CommonDream {
	out := make([]CommonDream, len(commonDreams))
	copy(out, commonDreams)
	return out
}

// MatchDream returns the first curated dream whose markers appear in the
// text. Matching is substring based like the rest of the package.
func MatchDream(text string) (CommonDream, bool) {
	lower := strings.ToLower(strings.TrimSpace(text))
	if lower == "" {
		return CommonDream{}, false
	}
	for _, dream := range commonDreams {
		for _, marker := range dream.markers {
			if strings.Contains(lower, marker) {
				return dream, true
			}
		}
	}
	return CommonDream{}, false
}
