// internal/resolver/question.go
package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mafatih/internal/analysis"
	"mafatih/internal/gateway"
	"mafatih/internal/knowledge"
	"mafatih/internal/models"
	"mafatih/internal/normalizer"
)

const (
	fatwaConfidence      = 0.6
	fatwaAfterError      = 0.7
	noAnswerConfidence   = 0.2
	maxRelatedFromSearch = 3

	sourceGeneralAdvice = "نصائح عامة"
	sourceLocalFatwas   = "قاعدة الفتاوى المحلية"
	sourceSpecializedAI = "الذكاء الاصطناعي المتخصص"

	noDirectAnswer = "لم نجد إجابة مباشرة لسؤالك في المصادر المتاحة حالياً. ننصحك بما يلي:\n\n" +
		"• مراجعة العلماء المختصين\n" +
		"• البحث في المواقع الشرعية الموثقة مثل الإسلام سؤال وجواب أو الدرر السنية\n" +
		"• إعادة صياغة السؤال بطريقة أخرى أو أكثر تفصيلاً\n" +
		"• التأكد من صحة الكتابة والإملاء"
	consultScholar = "يُنصح بمراجعة عالم مختص للتأكد من الفتوى"
)

// ResolveQuestion answers a free-text religious question.
func (r *Resolver) ResolveQuestion(ctx context.Context, query models.Query) models.AnswerRecord {
	var record models.AnswerRecord
	r.run(ctx, models.FeatureQuestion, query, func(ctx context.Context) (models.Tier, float64) {
		record = r.resolveQuestion(ctx, query)
		return record.Tier, record.Confidence
	})
	return record
}

func (r *Resolver) resolveQuestion(ctx context.Context, query models.Query) models.AnswerRecord {
	text := strings.TrimSpace(query.Text)
	qa := analysis.AnalyzeQuestion(text)
	if text == "" {
		return questionDefault(query.Text, qa, nil)
	}

	match, matched := r.kb.Match(qa)
	if matched && match.Confidence >= r.config.StaticThreshold {
		return fromKnowledge(query.Text, match, models.TierStaticKB)
	}

	raw, err := r.complete(ctx, gateway.QuestionPrompt(text), questionMaxTokens, query.Language)
	if err == nil {
		record := normalizer.Normalize(&raw, query.Text)
		if record.Confidence >= r.config.QuestionThreshold {
			return enrichAI(record)
		}
		r.logger.Debug("Gateway answer below threshold", map[string]interface{}{
			"confidence": record.Confidence,
			"threshold":  r.config.QuestionThreshold,
		})
	} else {
		r.logger.Warn("Gateway call failed, falling back to local search", map[string]interface{}{
			"kind":  string(gateway.KindOf(err)),
			"error": err.Error(),
		})
	}

	if ctx.Err() != nil {
		return questionDefault(query.Text, qa, err)
	}

	if matched {
		return fromKnowledge(query.Text, match, models.TierLocalSearch)
	}

	if r.searcher != nil {
		if hits, source := r.searcher.SearchWithSource(ctx, text); len(hits) > 0 {
			confidence := fatwaConfidence
			if err != nil {
				confidence = fatwaAfterError
			}
			r.logger.Debug("Answered from fatwa search", map[string]interface{}{"searcher": source})
			return fromFatwas(query.Text, qa, hits, confidence)
		}
	}

	return questionDefault(query.Text, qa, err)
}

func newAnswer(question string) models.AnswerRecord {
	return models.AnswerRecord{
		ID:               uuid.NewString(),
		QuestionText:     question,
		Sources:          []string{},
		RelatedQuestions: []string{},
		Warnings:         []string{},
		PracticalAdvice:  []string{},
		Timestamp:        time.Now().UTC(),
	}
}

func fromKnowledge(question string, match knowledge.Match, tier models.Tier) models.AnswerRecord {
	entry := match.Entry
	record := newAnswer(question)
	record.AnswerText = entry.AnswerText
	record.Category = entry.Category
	record.Confidence = clamp(match.Confidence)
	record.Tier = tier
	record.Verses = entry.Verses

	record.Sources = append(record.Sources, entry.Sources...)
	if len(record.Sources) == 0 {
		record.Sources = []string{"قاعدة البيانات الشرعية"}
	}
	record.RelatedQuestions = append(record.RelatedQuestions, entry.RelatedQuestions...)
	record.PracticalAdvice = append(record.PracticalAdvice, entry.PracticalAdvice...)
	if len(record.PracticalAdvice) == 0 {
		record.PracticalAdvice = knowledge.PracticalAdvice(entry.Category)
	}
	record.Warnings = append(record.Warnings, entry.Warnings...)
	return record
}

// enrichAI adds the category guidance the model was not asked for.
func enrichAI(record models.AnswerRecord) models.AnswerRecord {
	record.Tier = models.TierLLM
	if len(record.PracticalAdvice) == 0 {
		record.PracticalAdvice = knowledge.PracticalAdvice(record.Category)
	}
	if len(record.Warnings) == 0 {
		record.Warnings = knowledge.Warnings(record.Category)
	}
	if len(record.RelatedQuestions) == 0 {
		record.RelatedQuestions = knowledge.RelatedQuestions(record.Category)
	}
	if !containsString(record.Sources, sourceSpecializedAI) {
		record.Sources = append(record.Sources, sourceSpecializedAI)
	}
	return record
}

func fromFatwas(question string, qa models.QuestionAnalysis, hits []models.Fatwa, confidence float64) models.AnswerRecord {
	top := hits[0]
	record := newAnswer(question)
	record.AnswerText = top.Answer
	record.Confidence = confidence
	record.Tier = models.TierLocalSearch

	record.Category = top.Category
	if record.Category == "" {
		record.Category = normalizer.CategoryGeneral
	}
	if top.Source != "" {
		record.Sources = []string{top.Source}
	} else {
		record.Sources = []string{sourceLocalFatwas}
	}

	for _, hit := range hits[1:] {
		if len(record.RelatedQuestions) == maxRelatedFromSearch {
			break
		}
		record.RelatedQuestions = append(record.RelatedQuestions, hit.Question)
	}
	if len(record.RelatedQuestions) == 0 {
		record.RelatedQuestions = knowledge.RelatedQuestions(qa.Category)
	}
	record.PracticalAdvice = knowledge.PracticalAdvice(qa.Category)
	record.Warnings = []string{consultScholar}
	return record
}

// questionDefault is the last tier. A query that matches a comfort theme
// gets the themed fallback; anything else gets general guidance.
func questionDefault(question string, qa models.QuestionAnalysis, cause error) models.AnswerRecord {
	if _, ok := normalizer.MatchTheme(question); ok {
		return normalizer.NormalizeWithError(nil, question, cause)
	}

	record := newAnswer(question)
	record.Tier = models.TierDefault
	record.Confidence = noAnswerConfidence
	record.Sources = []string{sourceGeneralAdvice}
	record.Category = qa.Category
	if record.Category == "" {
		record.Category = normalizer.CategoryGeneral
	}

	record.AnswerText = noDirectAnswer
	if record.Category != analysis.CategoryGeneral {
		record.AnswerText = knowledge.DefaultAnswer(record.Category)
	}

	record.RelatedQuestions = knowledge.RelatedQuestions(record.Category)
	record.PracticalAdvice = knowledge.PracticalAdvice(record.Category)
	record.Warnings = []string{consultScholar}
	if cause != nil {
		record.Warnings = append(record.Warnings, gateway.KindOf(cause).UserNote())
	}
	return record
}

func containsString(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
