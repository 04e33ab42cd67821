// internal/analysis/analysis.go
package analysis

import (
	"strings"
	"unicode/utf8"

	"mafatih/internal/models"
)

const (
	MinConfidence       = 0.3
	MaxConfidence       = 0.9
	SentimentScale      = 2.0
	ClassificationScale = 3.0
	MatchedFloor        = 0.4

	baseIntensity = 0.4
	intensityStep = 0.3
)

// Question categories, in Arabic as shown to users.
const (
	CategoryAqeedah      = "عقيدة"
	CategoryWorship      = "عبادات"
	CategoryEthics       = "أخلاق"
	CategoryTransactions = "معاملات"
	CategoryGeneral      = "عام"
)

const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
)

var emotionsByLabel = map[string][]string{
	models.SentimentPositive: {"إيجابية", "تفاؤل"},
	models.SentimentNegative: {"حاجة للدعم", "تحدي نفسي"},
	models.SentimentNeutral:  {"متوازن", "هادئ"},
}

var intentByTopic = map[string]string{
	models.TopicSpiritual: "seeking_spiritual_guidance",
	models.TopicEmotional: "seeking_comfort",
	models.TopicPractical: "seeking_practical_advice",
	models.TopicPersonal:  "seeking_personal_guidance",
	models.TopicGeneral:   "seeking_guidance",
}

// Analyze labels the sentiment of free text. It never fails: empty input
// is neutral at MinConfidence.
func Analyze(text string) models.SentimentResult {
	if strings.TrimSpace(text) == "" {
		return models.SentimentResult{
			Sentiment:  models.SentimentNeutral,
			Emotions:   emotions(models.SentimentNeutral),
			Intensity:  baseIntensity,
			Keywords:   []string{},
			Confidence: MinConfidence,
		}
	}

	lower := strings.ToLower(text)
	pos := matches(lower, positiveWords)
	neg := matches(lower, negativeWords)
	spi := matches(lower, spiritualWords)

	label := models.SentimentNeutral
	switch {
	case len(pos) > len(neg):
		label = models.SentimentPositive
	case len(neg) > len(pos):
		label = models.SentimentNegative
	case len(spi) > 0:
		label = models.SentimentPositive
	}

	intensity := baseIntensity
	if label != models.SentimentNeutral {
		intensity = clamp(float64(max(len(pos), len(neg)))*intensityStep+baseIntensity, 0, 1)
	}

	keywords := dedupe(pos, neg, spi)
	matched := len(pos) + len(neg) + len(spi)

	return models.SentimentResult{
		Sentiment:  label,
		Emotions:   emotions(label),
		Intensity:  intensity,
		Keywords:   keywords,
		Confidence: ratioConfidence(matched, wordCount(text), SentimentScale, MinConfidence),
	}
}

// Classify assigns the topic with the most lexicon hits, earlier topics
// winning ties.
func Classify(text string) models.ClassificationResult {
	if strings.TrimSpace(text) == "" {
		return models.ClassificationResult{
			TopicCategory: models.TopicGeneral,
			Intent:        intentByTopic[models.TopicGeneral],
			Confidence:    MinConfidence,
		}
	}

	lower := strings.ToLower(text)
	scores := []struct {
		topic string
		count int
	}{
		{models.TopicSpiritual, len(matches(lower, topicSpiritual))},
		{models.TopicEmotional, len(matches(lower, topicEmotional))},
		{models.TopicPractical, len(matches(lower, topicPractical))},
		{models.TopicPersonal, len(matches(lower, topicPersonal))},
	}

	best, bestCount := models.TopicGeneral, 0
	for _, s := range scores {
		if s.count > bestCount {
			best, bestCount = s.topic, s.count
		}
	}

	confidence := MinConfidence
	if bestCount > 0 {
		confidence = ratioConfidence(bestCount, wordCount(text), ClassificationScale, MatchedFloor)
	}

	return models.ClassificationResult{
		TopicCategory: best,
		Intent:        intentByTopic[best],
		Confidence:    confidence,
	}
}

// AnalyzeQuestion extracts the keyword view the static knowledge base
// matches against.
func AnalyzeQuestion(question string) models.QuestionAnalysis {
	lower := strings.ToLower(question)

	keywords := []string{}
	for _, word := range strings.Split(lower, " ") {
		if utf8.RuneCountInString(word) > 2 {
			keywords = append(keywords, word)
		}
	}

	category := CategoryGeneral
categories:
	for _, c := range questionCategories {
		for _, k := range keywords {
			for _, w := range c.words {
				if k == w {
					category = c.name
					break categories
				}
			}
		}
	}

	complexity := ComplexitySimple
	switch {
	case len(keywords) > 10 || strings.Contains(lower, "تفصيل") || strings.Contains(lower, "شرح مفصل"):
		complexity = ComplexityComplex
	case len(keywords) > 5 || strings.Contains(lower, "كيف") || strings.Contains(lower, "لماذا"):
		complexity = ComplexityModerate
	}

	intent := "seeking_knowledge"
	switch {
	case strings.Contains(lower, "كيف"):
		intent = "seeking_guidance"
	case strings.Contains(lower, "حكم"):
		intent = "seeking_ruling"
	case strings.Contains(lower, "هل يجوز"):
		intent = "seeking_permission"
	}

	return models.QuestionAnalysis{
		Keywords:   keywords,
		Category:   category,
		Complexity: complexity,
		Intent:     intent,
	}
}

// EmotionalCategory names the emotional state a verse recommendation
// addresses.
func EmotionalCategory(sentiment models.SentimentResult, text string) string {
	lower := strings.ToLower(text)
	switch sentiment.Sentiment {
	case models.SentimentPositive:
		return "شكر وامتنان"
	case models.SentimentNegative:
		switch {
		case containsAny(lower, "حزن", "حزين", "مكتئب"):
			return "حزن وحاجة للتعزية"
		case containsAny(lower, "قلق", "خوف", "خائف"):
			return "قلق وحاجة للطمأنينة"
		default:
			return "تحدي نفسي"
		}
	default:
		return "حالة متوازنة"
	}
}

// EvaluateAnswerQuality scores an answer on length, citations and overlap
// with the question.
func EvaluateAnswerQuality(answer, question string) float64 {
	score := 0.5

	length := utf8.RuneCountInString(answer)
	if length > 100 {
		score += 0.1
	}
	if length > 300 {
		score += 0.1
	}
	if strings.Contains(answer, "صحيح البخاري") || strings.Contains(answer, "صحيح مسلم") {
		score += 0.2
	}
	if strings.Contains(answer, "القرآن الكريم") {
		score += 0.2
	}

	questionWords := strings.Fields(strings.ToLower(question))
	if len(questionWords) > 0 {
		lowerAnswer := strings.ToLower(answer)
		overlap := 0
		for _, w := range questionWords {
			if strings.Contains(lowerAnswer, w) {
				overlap++
			}
		}
		score += float64(overlap) / float64(len(questionWords)) * 0.2
	}

	return clamp(score, 0, 1)
}

// matches returns the lexicon words contained in lower, in lexicon order.
// Containment is plain substring, so a short word also hits inside longer
// ones.
func matches(lower string, lexicon []string) []string {
	found := []string{}
	for _, w := range lexicon {
		if strings.Contains(lower, w) {
			found = append(found, w)
		}
	}
	return found
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func dedupe(groups ...[]string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, g := range groups {
		for _, w := range g {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}

func emotions(label string) []string {
	return append([]string(nil), emotionsByLabel[label]...)
}

func wordCount(text string) int {
	n := len(strings.Fields(text))
	if n == 0 {
		return 1
	}
	return n
}

func ratioConfidence(matched, words int, scale, floor float64) float64 {
	return clamp(float64(matched)/float64(words)*scale, floor, MaxConfidence)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
