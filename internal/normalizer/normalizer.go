// Package normalizer turns whatever the LLM gateway returned (or failed to
// return) into a fully populated record. It never fails: strict JSON is
// tried first, then labeled-section extraction over free text, and finally
// a deterministic keyword fallback when there is nothing to parse.
package normalizer

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"mafatih/internal/common/validation"
	"mafatih/internal/gateway"
	"mafatih/internal/models"
)

const (
	SourceAI       = "Groq AI - ذكاء اصطناعي"
	SourceFallback = "نظام احتياطي - لا يوجد AI"

	CategoryGeneral = "عام"

	ConfidenceStructured = 0.8
	ConfidenceLabeled    = 0.5
	ConfidenceThemed     = 0.3
	ConfidenceGeneric    = 0.2

	defaultAnswer   = "لم يتم العثور على إجابة مناسبة"
	genericFallback = "عذراً، لا يمكنني الوصول إلى خدمة الذكاء الاصطناعي حالياً."
)

// answerSchema describes the document QuestionPrompt asks for. Only the
// fields that violate it are dropped; the rest of the document is kept.
var answerSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"answer":           {Type: "string", MinLength: validation.IntPtr(1)},
		"category":         {Type: "string", MinLength: validation.IntPtr(1)},
		"confidence":       {Type: "number"},
		"sources":          {Type: "array", Items: &validation.Property{Type: "string"}},
		"relatedQuestions": {Type: "array", Items: &validation.Property{Type: "string"}},
		"practicalAdvice":  {Type: "array", Items: &validation.Property{Type: "string"}},
		"warnings":         {Type: "array", Items: &validation.Property{Type: "string"}},
	},
	Required: []string{"answer"},
}

// Normalize maps a raw gateway payload onto an AnswerRecord. A nil raw
// means the gateway produced nothing and selects the keyword fallback.
func Normalize(raw *gateway.RawJSON, query string) models.AnswerRecord {
	if raw == nil {
		return Fallback(query)
	}

	if record, ok := fromJSON(string(*raw), query); ok {
		return record
	}
	return fromText(string(*raw), query)
}

// NormalizeWithError is Normalize for a failed gateway call: the record is
// the keyword fallback carrying the user-facing note for the error kind.
func NormalizeWithError(raw *gateway.RawJSON, query string, err error) models.AnswerRecord {
	if err == nil {
		return Normalize(raw, query)
	}

	record := Fallback(query)
	record.Warnings = append(record.Warnings, gateway.KindOf(err).UserNote())
	return record
}

// Fallback is the deterministic answer used when no AI text is available.
func Fallback(query string) models.AnswerRecord {
	record := newRecord(query)
	record.Sources = []string{SourceFallback}
	record.RelatedQuestions = []string{"كيف أتعلم ديني؟"}
	record.PracticalAdvice = []string{"راجع المصادر الشرعية"}
	record.Tier = models.TierDefault

	if theme, ok := MatchTheme(query); ok {
		record.AnswerText = theme.Answer
		record.Category = theme.Category
		record.Confidence = ConfidenceThemed
		return record
	}

	record.AnswerText = genericFallback
	record.Category = CategoryGeneral
	record.Confidence = ConfidenceGeneric
	return record
}

// Theme is a keyword-selected canned answer.
type Theme struct {
	Category string
	Answer   string
	keywords []string
}

var themes = []Theme{
	{
		Category: "دعم نفسي",
		Answer:   "في أوقات الحزن، تذكر أن الله معك. اقرأ القرآن واذكر الله كثيراً.",
		keywords: []string{"حزن", "حزين", "مكتئب"},
	},
	{
		Category: "طمأنينة",
		Answer:   "عند القلق، توكل على الله واعلم أنه لا يحدث شيء إلا بإذنه.",
		keywords: []string{"قلق", "خوف"},
	},
	{
		Category: "شكر وامتنان",
		Answer:   "الحمد لله على هذه المشاعر الطيبة. الشكر يزيد النعم.",
		keywords: []string{"شكر", "ممتن"},
	},
}

// MatchTheme returns the first theme whose keywords occur in text.
func MatchTheme(text string) (Theme, bool) {
	lower := strings.ToLower(text)
	for _, theme := range themes {
		for _, keyword := range theme.keywords {
			if strings.Contains(lower, keyword) {
				return theme, true
			}
		}
	}
	return Theme{}, false
}

func newRecord(query string) models.AnswerRecord {
	return models.AnswerRecord{
		ID:               uuid.NewString(),
		QuestionText:     query,
		Sources:          []string{},
		RelatedQuestions: []string{},
		Warnings:         []string{},
		PracticalAdvice:  []string{},
		Timestamp:        time.Now().UTC(),
	}
}

func fromJSON(raw, query string) (models.AnswerRecord, bool) {
	var doc map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &doc); err != nil {
		return models.AnswerRecord{}, false
	}
	if _, ok := doc["answer"]; !ok {
		return models.AnswerRecord{}, false
	}

	invalid := map[string]bool{}
	if result, err := validation.Validate(doc, answerSchema); err == nil && !result.Valid {
		for _, field := range result.InvalidFields() {
			invalid[field] = true
		}
	}

	record := newRecord(query)
	record.IsFromAI = true
	record.Tier = models.TierLLM

	record.AnswerText = defaultAnswer
	if answer, ok := doc["answer"].(string); ok && !invalid["answer"] && strings.TrimSpace(answer) != "" {
		record.AnswerText = strings.TrimSpace(answer)
	}

	record.Category = CategoryGeneral
	if !invalid["category"] {
		if category, ok := doc["category"].(string); ok {
			record.Category = category
		}
	}

	record.Confidence = ConfidenceStructured
	if !invalid["confidence"] {
		if confidence, ok := doc["confidence"].(float64); ok {
			record.Confidence = clamp(confidence)
		}
	}

	record.Sources = stringSlice(doc, "sources", invalid)
	if len(record.Sources) == 0 {
		record.Sources = []string{SourceAI}
	}
	record.RelatedQuestions = stringSlice(doc, "relatedQuestions", invalid)
	record.PracticalAdvice = stringSlice(doc, "practicalAdvice", invalid)
	record.Warnings = stringSlice(doc, "warnings", invalid)

	return record, true
}

func fromText(raw, query string) models.AnswerRecord {
	record := newRecord(query)
	record.IsFromAI = true
	record.Tier = models.TierLLM
	record.Sources = []string{SourceAI}
	record.Category = CategoryGeneral
	record.Confidence = ConfidenceLabeled

	sections := ExtractLabeled(raw)
	switch {
	case sections.Answer != "":
		record.AnswerText = sections.Answer
	case looksLikeJSON(raw):
		record.AnswerText = defaultAnswer
	case strings.TrimSpace(raw) != "":
		record.AnswerText = strings.TrimSpace(raw)
	default:
		record.AnswerText = defaultAnswer
	}
	if sections.Explanation != "" && !strings.Contains(record.AnswerText, sections.Explanation) {
		record.AnswerText += "\n\n" + sections.Explanation
	}
	if sections.Reflection != "" {
		record.PracticalAdvice = append(record.PracticalAdvice, sections.Reflection)
	}
	return record
}

func looksLikeJSON(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed))
}

func stringSlice(doc map[string]interface{}, key string, invalid map[string]bool) []string {
	out := []string{}
	if invalid[key] {
		return out
	}
	items, ok := doc[key].([]interface{})
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
