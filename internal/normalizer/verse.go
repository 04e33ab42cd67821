// internal/normalizer/verse.go
package normalizer

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"mafatih/internal/models"
)

// VerseShape records which of the accepted layouts a verse payload had.
type VerseShape string

const (
	ShapeCanonical   VerseShape = "canonical"
	ShapeAlternative VerseShape = "alternative"
	ShapeText        VerseShape = "text"
)

const (
	DefaultExplanation     = "هذه آية كريمة من القرآن الكريم تناسب حالتك النفسية"
	DefaultReflection      = "تأمل في عظمة هذه الآية واجعلها نوراً في قلبك"
	DefaultPracticalAdvice = "اقرأ هذه الآية بتدبر واستشعر معانيها العميقة"

	quranName       = "القرآن الكريم"
	altTranslation  = "ترجمة الآية الكريمة"
	textTranslation = "ترجمة مبسطة للآية الكريمة"
	minVerseRunes   = 20
)

// DefaultVerse is recommended when nothing better is available.
var DefaultVerse = models.Verse{
	Arabic:      "وَمَن يَتَّقِ اللَّهَ يَجْعَل لَّهُ مَخْرَجًا ۝ وَيَرْزُقْهُ مِنْ حَيْثُ لَا يَحْتَسِبُ",
	Translation: "ومن يتق الله يجعل له مخرجاً ويرزقه من حيث لا يحتسب",
	Surah:       "الطلاق",
	Ayah:        2,
	Reference:   "الطلاق: 2-3",
}

func defaultRelatedTopics() []string {
	return []string{"تدبر القرآن", "السكينة", "الإيمان"}
}

func defaultSpiritualGuidance() []string {
	return []string{
		"اقرأ القرآن يومياً بتدبر",
		"أكثر من ذكر الله في جميع الأوقات",
		"ادع الله بصدق وانكسار",
	}
}

// ParsedVerse is a verse recommendation recovered from a gateway payload.
// Found is false when the payload carried no usable verse text and
// DefaultVerse was substituted.
type ParsedVerse struct {
	Verse             models.Verse
	Explanation       string
	Reflection        string
	PracticalAdvice   string
	RelatedTopics     []string
	SpiritualGuidance []string
	Shape             VerseShape
	Found             bool
}

var versePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)آية[:\s]*([^.]+)`),
	regexp.MustCompile(`(?i)القرآن[:\s]*([^.]+)`),
	regexp.MustCompile(`﴿([^﴾]+)﴾`),
	regexp.MustCompile(`"([^"]*وَ[^"]*)"`),
	regexp.MustCompile(`'([^']*وَ[^']*)'`),
	regexp.MustCompile(`(?i)([^.]*وَ[^.]*الله[^.]*)`),
}

var surahPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)سورة\s+([^\s\d]+)`),
	regexp.MustCompile(`([^\s]+):\s*\d+`),
	regexp.MustCompile(`(` + strings.Join(surahNames, "|") + `)`),
}

// ParseVerse accepts the canonical {verse:{arabic,...}} document, a flat
// alternative layout, or free text. It always returns a complete verse.
func ParseVerse(raw string) ParsedVerse {
	trimmed := strings.TrimSpace(raw)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		var doc map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &doc); err == nil {
			if verse, ok := doc["verse"].(map[string]interface{}); ok && firstString(verse, "arabic") != "" {
				return fromCanonical(doc, verse)
			}
			if firstString(doc, "arabic", "ayah", "verse_text", "surah") != "" {
				return fromAlternative(doc)
			}
		}
	}
	return fromVerseText(raw)
}

func fromCanonical(doc, verse map[string]interface{}) ParsedVerse {
	parsed := ParsedVerse{
		Verse: models.Verse{
			Arabic:      firstString(verse, "arabic"),
			Translation: firstString(verse, "translation"),
			Surah:       firstString(verse, "surah"),
			Ayah:        firstInt(verse, "ayah"),
			Reference:   firstString(verse, "reference"),
		},
		Explanation:       orDefault(firstString(doc, "explanation"), DefaultExplanation),
		Reflection:        orDefault(firstString(doc, "reflection"), DefaultReflection),
		PracticalAdvice:   orDefault(firstString(doc, "practicalAdvice"), DefaultPracticalAdvice),
		RelatedTopics:     firstStrings(doc, defaultRelatedTopics(), "relatedTopics"),
		SpiritualGuidance: firstStrings(doc, defaultSpiritualGuidance(), "spiritualGuidance"),
		Shape:             ShapeCanonical,
		Found:             true,
	}
	completeVerse(&parsed.Verse, altTranslation)
	return parsed
}

func fromAlternative(doc map[string]interface{}) ParsedVerse {
	ayah := firstInt(doc, "ayah_number", "verse_number")
	surah := orDefault(firstString(doc, "surah", "surah_name"), quranName)

	parsed := ParsedVerse{
		Verse: models.Verse{
			Arabic:      firstString(doc, "arabic", "ayah", "verse_text"),
			Translation: orDefault(firstString(doc, "translation", "meaning"), altTranslation),
			Surah:       surah,
			Ayah:        ayah,
		},
		Explanation:       orDefault(firstString(doc, "explanation", "tafsir", "meaning"), DefaultExplanation),
		Reflection:        orDefault(firstString(doc, "reflection", "tadabbur", "contemplation"), DefaultReflection),
		PracticalAdvice:   orDefault(firstString(doc, "practicalAdvice", "advice", "guidance"), DefaultPracticalAdvice),
		RelatedTopics:     firstStrings(doc, defaultRelatedTopics(), "relatedTopics", "topics"),
		SpiritualGuidance: firstStrings(doc, defaultSpiritualGuidance(), "spiritualGuidance", "guidance"),
		Shape:             ShapeAlternative,
		Found:             true,
	}
	if parsed.Verse.Arabic == "" {
		parsed.Verse = DefaultVerse
		parsed.Found = false
	}
	completeVerse(&parsed.Verse, altTranslation)
	return parsed
}

func fromVerseText(raw string) ParsedVerse {
	parsed := ParsedVerse{
		Explanation:       DefaultExplanation,
		Reflection:        DefaultReflection,
		PracticalAdvice:   DefaultPracticalAdvice,
		RelatedTopics:     defaultRelatedTopics(),
		SpiritualGuidance: defaultSpiritualGuidance(),
		Shape:             ShapeText,
	}

	sections := ExtractLabeled(raw)
	if sections.Explanation != "" {
		parsed.Explanation = sections.Explanation
	}
	if sections.Reflection != "" {
		parsed.Reflection = sections.Reflection
	}

	arabic := ""
	for _, pattern := range versePatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil && utf8.RuneCountInString(match[1]) > minVerseRunes {
			arabic = strings.TrimSpace(match[1])
			break
		}
	}
	if arabic == "" {
		parsed.Verse = DefaultVerse
		return parsed
	}

	surah, ayah := quranName, 1
	for _, pattern := range surahPatterns {
		if match := pattern.FindStringSubmatch(raw); match != nil && match[1] != "" {
			surah = strings.TrimSpace(match[1])
			ayahPattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(surah) + `[:\s]*(\d+)`)
			if ayahMatch := ayahPattern.FindStringSubmatch(raw); ayahMatch != nil {
				if n, err := strconv.Atoi(ayahMatch[1]); err == nil {
					ayah = n
				}
			}
			break
		}
	}

	parsed.Verse = models.Verse{
		Arabic:      arabic,
		Translation: textTranslation,
		Surah:       surah,
		Ayah:        ayah,
		Reference:   fmt.Sprintf("%s: %d", surah, ayah),
	}
	parsed.Found = true
	return parsed
}

func completeVerse(v *models.Verse, translation string) {
	if v.Translation == "" {
		v.Translation = translation
	}
	if v.Surah == "" {
		v.Surah = quranName
	}
	if v.Ayah <= 0 {
		v.Ayah = 1
	}
	if v.Reference == "" {
		v.Reference = fmt.Sprintf("%s: %d", v.Surah, v.Ayah)
	}
}

func firstString(doc map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := doc[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func firstInt(doc map[string]interface{}, keys ...string) int {
	for _, key := range keys {
		switch v := doc[key].(type) {
		case float64:
			if v > 0 {
				return int(v)
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				return n
			}
		}
	}
	return 1
}

func firstStrings(doc map[string]interface{}, fallback []string, keys ...string) []string {
	for _, key := range keys {
		items, ok := doc[key].([]interface{})
		if !ok {
			continue
		}
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return fallback
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

var surahNames = []string{
	"البقرة", "آل عمران", "النساء", "المائدة", "الأنعام", "الأعراف", "الأنفال", "التوبة", "يونس", "هود",
	"يوسف", "الرعد", "إبراهيم", "الحجر", "النحل", "الإسراء", "الكهف", "مريم", "طه", "الأنبياء",
	"الحج", "المؤمنون", "النور", "الفرقان", "الشعراء", "النمل", "القصص", "العنكبوت", "الروم", "لقمان",
	"السجدة", "الأحزاب", "سبأ", "فاطر", "يس", "الصافات", "ص", "الزمر", "غافر", "فصلت",
	"الشورى", "الزخرف", "الدخان", "الجاثية", "الأحقاف", "محمد", "الفتح", "الحجرات", "ق", "الذاريات",
	"الطور", "النجم", "القمر", "الرحمن", "الواقعة", "الحديد", "المجادلة", "الحشر", "الممتحنة", "الصف",
	"الجمعة", "المنافقون", "التغابن", "الطلاق", "التحريم", "الملك", "القلم", "الحاقة", "المعارج", "نوح",
	"الجن", "المزمل", "المدثر", "القيامة", "الإنسان", "المرسلات", "النبأ", "النازعات", "عبس", "التكوير",
	"الانفطار", "المطففين", "الانشقاق", "البروج", "الطارق", "الأعلى", "الغاشية", "الفجر", "البلد", "الشمس",
	"الليل", "الضحى", "الشرح", "التين", "العلق", "القدر", "البينة", "الزلزلة", "العاديات", "القارعة",
	"التكاثر", "العصر", "الهمزة", "الفيل", "قريش", "الماعون", "الكوثر", "الكافرون", "النصر", "المسد",
	"الإخلاص", "الفلق", "الناس",
}
