// internal/analysis/analysis_test.go
package analysis

import (
	"strings"
	"testing"

	"mafatih/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Analyze
// ==========================

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		sentiment string
		keywords  []string
	}{
		{"positive", "أنا سعيد جدا والحمد لله", models.SentimentPositive, []string{"سعيد", "الحمد", "حمد"}},
		{"negative", "حزين جدا اليوم", models.SentimentNegative, []string{"حزين"}},
		{"tie broken by spiritual words", "أنا حزين لكن سعيد بذكر الله", models.SentimentPositive, []string{"سعيد", "حزين", "ذكر", "الله"}},
		{"neutral", "ذهبت إلى السوق", models.SentimentNeutral, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.text)
			assert.Equal(t, tt.sentiment, result.Sentiment)
			assert.Equal(t, tt.keywords, result.Keywords)
			assert.GreaterOrEqual(t, result.Confidence, MinConfidence)
			assert.LessOrEqual(t, result.Confidence, MaxConfidence)
			assert.NotEmpty(t, result.Emotions)
		})
	}
}

func TestAnalyze_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		result := Analyze(text)
		assert.Equal(t, models.SentimentNeutral, result.Sentiment)
		assert.Equal(t, MinConfidence, result.Confidence)
		assert.Equal(t, []string{"متوازن", "هادئ"}, result.Emotions)
		assert.Empty(t, result.Keywords)
	}
}

func TestAnalyze_Intensity(t *testing.T) {
	assert.InDelta(t, 0.7, Analyze("حزين").Intensity, 1e-9)
	assert.InDelta(t, 1.0, Analyze("حزين وقلق ومتعب").Intensity, 1e-9)
	assert.InDelta(t, 0.4, Analyze("ذهبت إلى السوق").Intensity, 1e-9)
}

func TestAnalyze_Confidence(t *testing.T) {
	// one hit in three words: 1/3 * 2
	assert.InDelta(t, 2.0/3.0, Analyze("حزين جدا اليوم").Confidence, 1e-9)
	// saturated ratio is capped
	assert.Equal(t, MaxConfidence, Analyze("سعيد").Confidence)
}

func TestAnalyze_EmotionsAreCopies(t *testing.T) {
	first := Analyze("سعيد")
	first.Emotions[0] = "mutated"
	assert.Equal(t, "إيجابية", Analyze("سعيد").Emotions[0])
}

// ==========================
// Classify
// ==========================

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		topic  string
		intent string
	}{
		{"spiritual", "أريد أن أصلي وأقرأ القرآن وأدعو الله", models.TopicSpiritual, "seeking_spiritual_guidance"},
		{"practical", "عندي مشكلة في العمل وأحتاج نصيحة", models.TopicPractical, "seeking_practical_advice"},
		{"emotional", "أشعر بالقلق والخوف", models.TopicEmotional, "seeking_comfort"},
		{"personal", "أنا أفكر في زواج", models.TopicPersonal, "seeking_personal_guidance"},
		{"general", "السماء زرقاء", models.TopicGeneral, "seeking_guidance"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Classify(tt.text)
			assert.Equal(t, tt.topic, result.TopicCategory)
			assert.Equal(t, tt.intent, result.Intent)
		})
	}
}

func TestClassify_Confidence(t *testing.T) {
	assert.Equal(t, MinConfidence, Classify("").Confidence)
	assert.Equal(t, MinConfidence, Classify("السماء زرقاء").Confidence)
	assert.Equal(t, MaxConfidence, Classify("عندي مشكلة في العمل وأحتاج نصيحة").Confidence)

	long := "كلمة " + strings.Repeat("أخرى ", 40) + "الله"
	assert.Equal(t, MatchedFloor, Classify(long).Confidence)
}

func TestConfidenceBounds(t *testing.T) {
	inputs := []string{
		"x",
		"?!؟",
		strings.Repeat("حزين ", 500),
		strings.Repeat("a", 10000),
		"<script>alert(1)</script>",
		"الله الله الله",
	}

	for _, in := range inputs {
		s := Analyze(in)
		c := Classify(in)
		assert.GreaterOrEqual(t, s.Confidence, 0.3)
		assert.LessOrEqual(t, s.Confidence, 0.9)
		assert.GreaterOrEqual(t, c.Confidence, 0.3)
		assert.LessOrEqual(t, c.Confidence, 0.9)
		assert.GreaterOrEqual(t, s.Intensity, 0.0)
		assert.LessOrEqual(t, s.Intensity, 1.0)
	}
}

// ==========================
// AnalyzeQuestion
// ==========================

func TestAnalyzeQuestion(t *testing.T) {
	tests := []struct {
		question   string
		keywords   []string
		category   string
		complexity string
		intent     string
	}{
		{"ما هي أركان الإسلام؟", []string{"أركان", "الإسلام؟"}, CategoryAqeedah, ComplexitySimple, "seeking_knowledge"},
		{"كيف أتوضأ؟", []string{"كيف", "أتوضأ؟"}, CategoryGeneral, ComplexityModerate, "seeking_guidance"},
		{"ما حكم الربا", []string{"حكم", "الربا"}, CategoryGeneral, ComplexitySimple, "seeking_ruling"},
		{"هل يجوز بيع الذهب", []string{"يجوز", "بيع", "الذهب"}, CategoryTransactions, ComplexitySimple, "seeking_permission"},
		{"أريد شرح مفصل", []string{"أريد", "شرح", "مفصل"}, CategoryGeneral, ComplexityComplex, "seeking_knowledge"},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			a := AnalyzeQuestion(tt.question)
			assert.Equal(t, tt.keywords, a.Keywords)
			assert.Equal(t, tt.category, a.Category)
			assert.Equal(t, tt.complexity, a.Complexity)
			assert.Equal(t, tt.intent, a.Intent)
		})
	}
}

func TestAnalyzeQuestion_Empty(t *testing.T) {
	a := AnalyzeQuestion("")
	assert.NotNil(t, a.Keywords)
	assert.Empty(t, a.Keywords)
	assert.Equal(t, CategoryGeneral, a.Category)
}

// ==========================
// Verse and quality helpers
// ==========================

func TestEmotionalCategory(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"أنا سعيد", "شكر وامتنان"},
		{"أنا حزين", "حزن وحاجة للتعزية"},
		{"أنا خائف", "قلق وحاجة للطمأنينة"},
		{"أنا متعب", "تحدي نفسي"},
		{"ذهبت إلى السوق", "حالة متوازنة"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.expected, EmotionalCategory(Analyze(tt.text), tt.text))
		})
	}
}

func TestEvaluateAnswerQuality(t *testing.T) {
	assert.InDelta(t, 0.5, EvaluateAnswerQuality("نعم", "هل"), 1e-9)

	cited := strings.Repeat("نص ", 120) + "رواه صحيح البخاري وجاء في القرآن الكريم عن الصلاة"
	assert.Equal(t, 1.0, EvaluateAnswerQuality(cited, "الصلاة"))

	overlap := EvaluateAnswerQuality("الصلاة عماد الدين", "الصلاة والصيام")
	assert.InDelta(t, 0.6, overlap, 1e-9)
}
