// internal/knowledge/kb_test.go
package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mafatih/internal/analysis"
	"mafatih/internal/models"
)

func TestStaticKB_Match_PillarsOfIslam(t *testing.T) {
	kb := NewStaticKB()

	match, ok := kb.Match(analysis.AnalyzeQuestion("ما هي أركان الإسلام؟"))

	require.True(t, ok)
	assert.Equal(t, 3, match.Score)
	assert.InDelta(t, 0.9, match.Confidence, 1e-9)
	assert.Contains(t, match.Entry.AnswerText, "أركان الإسلام خمسة")
	assert.Equal(t, analysis.CategoryAqeedah, match.Entry.Category)
}

func TestStaticKB_Match_NoMatch(t *testing.T) {
	kb := NewStaticKB()

	_, ok := kb.Match(analysis.AnalyzeQuestion("حزين جدا اليوم"))
	assert.False(t, ok)

	_, ok = kb.Match(models.QuestionAnalysis{})
	assert.False(t, ok)
}

func TestStaticKB_Match_CuratedTopics(t *testing.T) {
	kb := NewStaticKB()

	tests := []struct {
		name        string
		question    string
		wantOK      bool
		wantKeyword string
		wantScore   int
	}{
		{"pillars of islam", "ما هي أركان الإسلام؟", true, "أركان الإسلام", 3},
		{"pillars of faith", "ما هي أركان الإيمان؟", true, "أركان الإيمان", 2},
		{"wudu", "كيف أتوضأ؟", true, "وضوء", 1},
		{"prayer times", "ما هي أوقات الصلاة", true, "صلاة", 2},
		{"zakat", "كيف أحسب الزكاة", true, "زكاة", 1},
		{"mother", "ما حق الأم", true, "بر الوالدين", 1},
		{"bank interest", "ما حكم فوائد البنك", true, "ربا", 2},
		{"how alone", "كيف", false, "", 0},
		{"sad how question", "أنا حزين كيف أتخلص من الحزن", false, "", 0},
		{"short keyword inside a word", "أمس كنت في السوق", false, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match, ok := kb.Match(analysis.AnalyzeQuestion(tt.question))
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantKeyword, match.Entry.Keywords[0])
			assert.Equal(t, tt.wantScore, match.Score)
		})
	}
}

func TestStaticKB_Match_PhraseKeywordNeedsWholePhrase(t *testing.T) {
	kb := NewStaticKBWith([]models.KnowledgeEntry{
		{Keywords: []string{"أركان الإسلام"}, AnswerText: "islam"},
	})

	_, ok := kb.Match(models.QuestionAnalysis{Keywords: []string{"أركان"}})
	assert.False(t, ok)

	match, ok := kb.Match(models.QuestionAnalysis{Keywords: []string{"أركان", "الإسلام؟"}})
	require.True(t, ok)
	assert.Equal(t, 1, match.Score)
}

func TestStaticKB_Match_BestScoreWinsTiesKeepOrder(t *testing.T) {
	kb := NewStaticKBWith([]models.KnowledgeEntry{
		{Keywords: []string{"صلاة"}, AnswerText: "first"},
		{Keywords: []string{"صلاة", "فجر"}, AnswerText: "second"},
		{Keywords: []string{"صلاة", "فجر"}, AnswerText: "third"},
	})

	match, ok := kb.Match(models.QuestionAnalysis{Keywords: []string{"صلاة", "الفجر"}})
	require.True(t, ok)
	assert.Equal(t, "second", match.Entry.AnswerText)
	assert.Equal(t, 2, match.Score)
	assert.InDelta(t, 0.8, match.Confidence, 1e-9)
}

func TestStaticKB_Match_ConfidenceCapped(t *testing.T) {
	kb := NewStaticKBWith([]models.KnowledgeEntry{
		{Keywords: []string{"a", "b", "c", "d", "e", "f"}, AnswerText: "many"},
	})

	match, ok := kb.Match(models.QuestionAnalysis{Keywords: []string{"a", "b", "c", "d", "e", "f"}})
	require.True(t, ok)
	assert.Equal(t, 6, match.Score)
	assert.Equal(t, 0.95, match.Confidence)
}

func TestStaticKB_Entries(t *testing.T) {
	kb := NewStaticKB()
	entries := kb.Entries()
	require.Len(t, entries, 7)

	entries[0].AnswerText = "mutated"
	assert.NotEqual(t, "mutated", kb.Entries()[0].AnswerText)

	for _, entry := range entries {
		assert.NotEmpty(t, entry.Keywords)
		assert.NotEmpty(t, entry.Sources)
		assert.NotEmpty(t, entry.Category)
	}
}

func TestCategoryHelpers(t *testing.T) {
	tests := []struct {
		name     string
		category string
		wantLen  int
	}{
		{"aqeedah", analysis.CategoryAqeedah, 4},
		{"worship", analysis.CategoryWorship, 4},
		{"unknown falls back to general", "غير موجود", 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, RelatedQuestions(tt.category), tt.wantLen)
			assert.Len(t, PracticalAdvice(tt.category), tt.wantLen)
			assert.Len(t, Warnings(tt.category), 3)
			assert.NotEmpty(t, DefaultAnswer(tt.category))
		})
	}

	assert.Equal(t, DefaultAnswer(analysis.CategoryGeneral), DefaultAnswer("غير موجود"))
	assert.Equal(t, RelatedQuestions(analysis.CategoryGeneral), RelatedQuestions("غير موجود"))

	advice := PracticalAdvice(analysis.CategoryEthics)
	advice[0] = "changed"
	assert.NotEqual(t, "changed", PracticalAdvice(analysis.CategoryEthics)[0])
}

func TestMatchDream(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantOK   bool
		category string
	}{
		{"mosque", "رأيت أنني في المسجد أصلي", true, "بشارات"},
		{"quran", "حلمت أنني أقرأ سورة البقرة", true, "هداية"},
		{"water", "رأيت ماء صافيا يجري", true, "رموز"},
		{"unknown", "رأيت قطة سوداء", false, ""},
		{"empty", "   ", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dream, ok := MatchDream(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.category, dream.Category)
			if ok {
				assert.NotEmpty(t, dream.Brief)
				assert.NotEmpty(t, dream.Symbols)
			}
		})
	}

	assert.Len(t, CommonDreams(), 3)
}

func TestSelectVerse(t *testing.T) {
	negative := models.SentimentResult{Sentiment: models.SentimentNegative, Confidence: 0.5}
	positive := models.SentimentResult{Sentiment: models.SentimentPositive, Confidence: 0.5}
	neutral := models.SentimentResult{Sentiment: models.SentimentNeutral, Confidence: 0.3}
	general := models.ClassificationResult{TopicCategory: models.TopicGeneral, Confidence: 0.3}
	spiritual := models.ClassificationResult{TopicCategory: models.TopicSpiritual, Confidence: 0.6}

	tests := []struct {
		name           string
		sentiment      models.SentimentResult
		classification models.ClassificationResult
		text           string
		group          VerseGroup
		surah          string
		ayah           int
	}{
		{"anxious", negative, general, "أشعر بالقلق", GroupAnxious, "الرعد", 28},
		{"anxious wins over sad", negative, general, "حزين ومن الخوف", GroupAnxious, "الرعد", 28},
		{"sad", negative, general, "أنا حزين", GroupSad, "البقرة", 156},
		{"other negative", negative, general, "يوم سيء", GroupHopeful, "يوسف", 87},
		{"grateful", positive, general, "الحمد لله أنا ممتن", GroupGrateful, "إبراهيم", 7},
		{"other positive", positive, general, "أنا سعيد", GroupHopeful, "يوسف", 87},
		{"neutral spiritual", neutral, spiritual, "أريد القرب من الله", GroupSpiritual, "الحجر", 99},
		{"neutral default", neutral, general, "لا شيء", GroupGrateful, "إبراهيم", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := SelectVerse(tt.sentiment, tt.classification, tt.text)
			assert.Equal(t, tt.group, selection.Group)
			assert.Equal(t, tt.surah, selection.Entry.Verse.Surah)
			assert.Equal(t, tt.ayah, selection.Entry.Verse.Ayah)
			assert.NotEmpty(t, selection.Entry.Explanation)
			assert.NotEmpty(t, selection.Entry.RelatedTopics)
		})
	}
}

func TestSelectVerse_Confidence(t *testing.T) {
	low := SelectVerse(
		models.SentimentResult{Sentiment: models.SentimentNeutral, Confidence: 0.3},
		models.ClassificationResult{TopicCategory: models.TopicGeneral, Confidence: 0.3},
		"",
	)
	assert.InDelta(t, 0.35, low.Confidence, 1e-9)

	high := SelectVerse(
		models.SentimentResult{Sentiment: models.SentimentNegative, Confidence: 0.9},
		models.ClassificationResult{TopicCategory: models.TopicEmotional, Confidence: 0.9},
		"حزن",
	)
	assert.InDelta(t, 0.9, high.Confidence, 1e-9)

	assert.Equal(t, 2, VerseGroupSize(GroupSad))
	assert.Equal(t, 2, VerseGroupSize(GroupAnxious))
	assert.Equal(t, 1, VerseGroupSize(GroupSpiritual))
}
