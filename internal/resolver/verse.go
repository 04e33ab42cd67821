// internal/resolver/verse.go
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
	verseAIConfidence      = 0.95
	verseDefaultConfidence = 0.3

	missingReferencePenalty   = 0.15
	missingExplanationPenalty = 0.1
	freeTextPenalty           = 0.1

	genericSurah = "القرآن الكريم"
)

var localVerseGuidance = []string{
	"اقرأ القرآن يومياً",
	"أكثر من ذكر الله",
	"ادع الله بصدق",
}

// RecommendVerse suggests a Quranic verse for the user's mood.
func (r *Resolver) RecommendVerse(ctx context.Context, query models.Query) models.VerseRecord {
	var record models.VerseRecord
	r.run(ctx, models.FeatureVerse, query, func(ctx context.Context) (models.Tier, float64) {
		record = r.recommendVerse(ctx, query)
		return record.Tier, record.Confidence
	})
	return record
}

func (r *Resolver) recommendVerse(ctx context.Context, query models.Query) models.VerseRecord {
	text := strings.TrimSpace(query.Text)
	sentiment := analysis.Analyze(text)
	if text == "" {
		return verseDefault(query.Text, sentiment)
	}
	classification := analysis.Classify(text)

	raw, err := r.complete(ctx, gateway.VersePrompt(text, sentiment), verseMaxTokens, query.Language)
	if err == nil {
		parsed := normalizer.ParseVerse(string(raw))
		if parsed.Found {
			if quality := verseQuality(parsed); quality >= r.config.VerseThreshold {
				return verseFromAI(query.Text, text, sentiment, parsed, quality)
			}
		}
		r.logger.Debug("Gateway gave no usable verse", map[string]interface{}{
			"shape":   string(parsed.Shape),
			"quality": verseQuality(parsed),
		})
	} else {
		r.logger.Warn("Gateway call failed for verse", map[string]interface{}{
			"kind":  string(gateway.KindOf(err)),
			"error": err.Error(),
		})
	}

	if ctx.Err() != nil {
		return verseDefault(query.Text, sentiment)
	}

	selection := knowledge.SelectVerse(sentiment, classification, text)
	return verseFromStore(query.Text, text, sentiment, selection)
}

func newVerse(mood string, sentiment models.SentimentResult) models.VerseRecord {
	return models.VerseRecord{
		ID:                uuid.NewString(),
		Mood:              mood,
		RelatedTopics:     []string{},
		SpiritualGuidance: []string{},
		Sentiment:         sentiment.Sentiment,
		Timestamp:         time.Now().UTC(),
	}
}

// verseQuality rates a parsed verse: a structured payload naming its surah
// and explaining the verse scores verseAIConfidence, less for each part the
// model left out.
func verseQuality(parsed normalizer.ParsedVerse) float64 {
	if !parsed.Found {
		return 0
	}
	quality := verseAIConfidence
	if parsed.Verse.Surah == "" || parsed.Verse.Surah == genericSurah {
		quality -= missingReferencePenalty
	}
	if parsed.Explanation == "" || parsed.Explanation == normalizer.DefaultExplanation {
		quality -= missingExplanationPenalty
	}
	if parsed.Shape == normalizer.ShapeText {
		quality -= freeTextPenalty
	}
	return clamp(quality)
}

func verseFromAI(mood, text string, sentiment models.SentimentResult, parsed normalizer.ParsedVerse, quality float64) models.VerseRecord {
	record := newVerse(mood, sentiment)
	record.Verse = parsed.Verse
	record.Explanation = parsed.Explanation
	record.Reflection = parsed.Reflection
	record.PracticalAdvice = parsed.PracticalAdvice
	record.RelatedTopics = append(record.RelatedTopics, parsed.RelatedTopics...)
	record.SpiritualGuidance = append(record.SpiritualGuidance, parsed.SpiritualGuidance...)
	record.EmotionalCategory = analysis.EmotionalCategory(sentiment, text)
	record.Confidence = quality
	record.IsFromAI = true
	record.Tier = models.TierLLM
	return record
}

func verseFromStore(mood, text string, sentiment models.SentimentResult, selection knowledge.VerseSelection) models.VerseRecord {
	entry := selection.Entry
	record := newVerse(mood, sentiment)
	record.Verse = entry.Verse
	record.Explanation = entry.Explanation
	record.Reflection = entry.Reflection
	record.PracticalAdvice = entry.PracticalAdvice
	record.RelatedTopics = append(record.RelatedTopics, entry.RelatedTopics...)
	record.SpiritualGuidance = append(record.SpiritualGuidance, localVerseGuidance...)
	record.EmotionalCategory = analysis.EmotionalCategory(sentiment, text)
	record.Confidence = clamp(selection.Confidence)
	record.Tier = models.TierLocalSearch
	return record
}

func verseDefault(mood string, sentiment models.SentimentResult) models.VerseRecord {
	record := newVerse(mood, sentiment)
	record.Verse = normalizer.DefaultVerse
	record.Explanation = normalizer.DefaultExplanation
	record.Reflection = normalizer.DefaultReflection
	record.PracticalAdvice = normalizer.DefaultPracticalAdvice
	record.RelatedTopics = append(record.RelatedTopics, "تقوى الله", "التوكل", "الرزق", "الفرج")
	record.SpiritualGuidance = append(record.SpiritualGuidance, localVerseGuidance...)
	record.EmotionalCategory = analysis.EmotionalCategory(sentiment, mood)
	record.Confidence = verseDefaultConfidence
	record.Tier = models.TierDefault
	return record
}
