// internal/resolver/dream.go
package resolver

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"mafatih/internal/gateway"
	"mafatih/internal/knowledge"
	"mafatih/internal/models"
	"mafatih/internal/normalizer"
)

const (
	dreamLocalConfidence    = 0.5
	dreamGuidanceConfidence = 0.2
	dreamErrorConfidence    = 0.1

	dreamDefaultMeaning  = "تفسير عام حسب الكتب الإسلامية"
	dreamDefaultGuidance = "الاستمرار في العبادة والدعاء"
)

var dreamScholars = []string{"ابن سيرين", "ابن شاهين", "النابلسي"}

const (
	guidanceInterpretation = "لم نتمكن من تقديم تفسير مفصل لهذا الحلم. ننصح بما يلي:\n\n" +
		"• استشارة عالم متخصص في تفسير الأحلام\n" +
		"• قراءة كتب التفسير المعتمدة مثل تفسير الأحلام لابن سيرين\n" +
		"• الدعاء والاستخارة للحصول على الهداية\n" +
		"• تذكر أن الأحلام قد تكون من النفس أو الشيطان وليست كلها رؤى صادقة"
	guidanceMeaning = "الأحلام في الإسلام ثلاثة أنواع: رؤيا من الله، وحديث النفس، ووسوسة من الشيطان"
	guidanceActions = "• قراءة سورة الإخلاص والمعوذتين\n• الاستعاذة من الشيطان\n• عدم إخبار الحلم لمن لا يحبك"

	errorInterpretation = "حدث خطأ تقني في تفسير الحلم. يرجى:\n\n" +
		"• المحاولة مرة أخرى\n" +
		"• التأكد من اتصال الإنترنت\n" +
		"• مراجعة كتب تفسير الأحلام الإسلامية مباشرة"
	errorMeaning = "في حالة عدم توفر التفسير، اللجوء إلى الله بالدعاء"
	errorActions = "• الصبر والدعاء\n• قراءة القرآن\n• الاستعاذة من الشيطان"
)

// InterpretDream interprets a dream narrative. There is no curated first
// tier: the gateway is asked first and the common-dream lexicon backs it.
func (r *Resolver) InterpretDream(ctx context.Context, query models.Query) models.DreamRecord {
	var record models.DreamRecord
	r.run(ctx, models.FeatureDream, query, func(ctx context.Context) (models.Tier, float64) {
		record = r.interpretDream(ctx, query)
		return record.Tier, record.Confidence
	})
	return record
}

func (r *Resolver) interpretDream(ctx context.Context, query models.Query) models.DreamRecord {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return dreamDefault(query.Text, nil)
	}

	raw, err := r.complete(ctx, gateway.DreamPrompt(text), dreamMaxTokens, query.Language)
	if err == nil {
		answer := normalizer.Normalize(&raw, text)
		if answer.Confidence >= r.config.DreamThreshold {
			return dreamFromAI(query.Text, answer)
		}
	} else {
		r.logger.Warn("Gateway call failed for dream", map[string]interface{}{
			"kind":  string(gateway.KindOf(err)),
			"error": err.Error(),
		})
	}

	if ctx.Err() == nil {
		if dream, ok := knowledge.MatchDream(text); ok {
			return dreamFromLexicon(query.Text, dream)
		}
	}

	return dreamDefault(query.Text, err)
}

func newDream(text string) models.DreamRecord {
	return models.DreamRecord{
		ID:        uuid.NewString(),
		DreamText: text,
		Warnings:  []string{},
		Symbolism: []string{},
		Sources:   []string{},
		Timestamp: time.Now().UTC(),
	}
}

func dreamFromAI(text string, answer models.AnswerRecord) models.DreamRecord {
	body := answer.AnswerText

	record := newDream(text)
	record.Interpretation = body
	record.IslamicMeaning = orDefault(normalizer.ExtractSection(body, "المعنى الإسلامي"), dreamDefaultMeaning)
	record.Guidance = orDefault(normalizer.ExtractSection(body, "الإرشادات"), dreamDefaultGuidance)
	record.Category = normalizer.CategorizeDream(body)
	record.Symbolism = normalizer.ExtractSymbols(body)
	record.Confidence = clamp(answer.Confidence)
	record.IsFromAI = true
	record.Tier = models.TierLLM

	warning := normalizer.ExtractSection(body, "تحذير")
	if warning == "" {
		warning = normalizer.ExtractSection(body, "تحذيرات")
	}
	if warning != "" {
		record.Warnings = []string{warning}
	}
	record.Warnings = append(record.Warnings, answer.Warnings...)

	if hasOwnSources(answer.Sources) {
		record.Sources = append(record.Sources, answer.Sources...)
	} else {
		record.Sources = append(record.Sources, dreamScholars...)
	}
	return record
}

// hasOwnSources is false when the normalizer only filled in its default.
func hasOwnSources(sources []string) bool {
	return len(sources) > 0 && !(len(sources) == 1 && sources[0] == normalizer.SourceAI)
}

func dreamFromLexicon(text string, dream knowledge.CommonDream) models.DreamRecord {
	record := newDream(text)
	record.Interpretation = dream.Brief
	record.IslamicMeaning = dreamDefaultMeaning
	record.Guidance = dreamDefaultGuidance
	record.Category = dream.Category
	record.Symbolism = append(record.Symbolism, dream.Symbols...)
	record.Sources = append(record.Sources, dreamScholars...)
	record.Confidence = dreamLocalConfidence
	record.Tier = models.TierLocalSearch
	return record
}

// dreamDefault returns general dream guidance, or the technical-error
// guidance when the gateway call failed.
func dreamDefault(text string, cause error) models.DreamRecord {
	record := newDream(text)
	record.Category = normalizer.CategoryGeneral
	record.Tier = models.TierDefault

	if cause != nil {
		record.Interpretation = errorInterpretation
		record.IslamicMeaning = errorMeaning
		record.Guidance = errorActions
		record.Sources = []string{"مصادر عامة"}
		record.Confidence = dreamErrorConfidence
		record.Warnings = []string{gateway.KindOf(cause).UserNote()}
		return record
	}

	record.Interpretation = guidanceInterpretation
	record.IslamicMeaning = guidanceMeaning
	record.Guidance = guidanceActions
	record.Sources = []string{"القرآن الكريم", "السنة النبوية"}
	record.Confidence = dreamGuidanceConfidence
	return record
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
