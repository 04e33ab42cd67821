// Package knowledge holds the curated content the resolver falls back on
// before and after the LLM: the static knowledge base, the fatwa searchers,
// the common-dream lexicon and the local verse store.
//
// Knowledge-base matching is substring containment of an entry keyword in
// the question, never the reverse. Phrase keywords must appear whole and
// keywords shorter than three letters must equal a question word.
package knowledge

import (
	"strings"
	"unicode/utf8"

	"mafatih/internal/analysis"
	"mafatih/internal/models"
)

const (
	baseConfidence  = 0.6
	scoreConfidence = 0.1
	maxConfidence   = 0.95
)

// Match is a knowledge-base hit with its keyword score.
type Match struct {
	Entry      models.KnowledgeEntry
	Score      int
	Confidence float64
}

// StaticKB is read-only after construction and safe for concurrent use.
type StaticKB struct {
	entries []models.KnowledgeEntry
}

func NewStaticKB() *StaticKB {
	return &StaticKB{entries: curatedEntries()}
}

// NewStaticKBWith builds a knowledge base over caller-provided entries.
func NewStaticKBWith(entries []models.KnowledgeEntry) *StaticKB {
	return &StaticKB{entries: entries}
}

func (kb *StaticKB) Entries() []models.KnowledgeEntry {
	out := make([]models.KnowledgeEntry, len(kb.entries))
	copy(out, kb.entries)
	return out
}

// Match scores every entry against the question keywords and returns the
// best one. Ties keep the earlier entry.
func (kb *StaticKB) Match(qa models.QuestionAnalysis) (Match, bool) {
	best := Match{}
	for _, entry := range kb.entries {
		if n := score(entry.Keywords, qa.Keywords); n > best.Score {
			best = Match{Entry: entry, Score: n}
		}
	}
	if best.Score == 0 {
		return Match{}, false
	}

	best.Confidence = baseConfidence + scoreConfidence*float64(best.Score)
	if best.Confidence > maxConfidence {
		best.Confidence = maxConfidence
	}
	return best, true
}

const shortKeywordRunes = 3

func score(entryKeywords, queryKeywords []string) int {
	phrase := strings.Join(queryKeywords, " ")
	n := 0
	for _, k := range entryKeywords {
		if keywordHits(strings.ToLower(k), phrase, queryKeywords) {
			n++
		}
	}
	return n
}

func keywordHits(k, phrase string, queryKeywords []string) bool {
	switch {
	case k == "":
		return false
	case strings.Contains(k, " "):
		return strings.Contains(phrase, k)
	case utf8.RuneCountInString(k) < shortKeywordRunes:
		for _, q := range queryKeywords {
			q = strings.TrimRight(q, "؟?!.,،")
			if q == k || q == "ال"+k {
				return true
			}
		}
		return false
	default:
		for _, q := range queryKeywords {
			if strings.Contains(q, k) {
				return true
			}
		}
		return false
	}
}

func curatedEntries() []models.KnowledgeEntry {
	return []models.KnowledgeEntry{
		{
			Keywords:   []string{"أركان الإسلام", "أركان", "إسلام", "خمسة"},
			AnswerText: "أركان الإسلام خمسة: شهادة أن لا إله إلا الله وأن محمداً رسول الله، وإقام الصلاة، وإيتاء الزكاة، وصوم رمضان، وحج البيت لمن استطاع إليه سبيلاً.",
			Sources:    []string{"صحيح البخاري", "صحيح مسلم"},
			Category:   analysis.CategoryAqeedah,
			Verses: []models.Verse{{
				Arabic:      "وَمَا أُمِرُوا إِلَّا لِيَعْبُدُوا اللَّهَ مُخْلِصِينَ لَهُ الدِّينَ حُنَفَاءَ وَيُقِيمُوا الصَّلَاةَ وَيُؤْتُوا الزَّكَاةَ ۚ وَذَٰلِكَ دِينُ الْقَيِّمَةِ",
				Translation: "وما أمروا إلا ليعبدوا الله مخلصين له الدين حنفاء ويقيموا الصلاة ويؤتوا الزكاة وذلك دين القيمة",
				Surah:       "البينة",
				Ayah:        5,
				Reference:   "البينة: 5",
			}},
			RelatedQuestions: []string{"ما هي أركان الإيمان؟", "ما الفرق بين الإسلام والإيمان؟", "كيف أنطق الشهادتين؟"},
		},
		{
			Keywords:   []string{"أركان الإيمان", "إيمان", "ستة"},
			AnswerText: "أركان الإيمان ستة: الإيمان بالله، وملائكته، وكتبه، ورسله، واليوم الآخر، والقدر خيره وشره.",
			Sources:    []string{"صحيح مسلم", "حديث جبريل"},
			Category:   analysis.CategoryAqeedah,
			Verses: []models.Verse{{
				Arabic:      "آمَنَ الرَّسُولُ بِمَا أُنزِلَ إِلَيْهِ مِن رَّبِّهِ وَالْمُؤْمِنُونَ ۚ كُلٌّ آمَنَ بِاللَّهِ وَمَلَائِكَتِهِ وَكُتُبِهِ وَرُسُلِهِ",
				Translation: "آمن الرسول بما أنزل إليه من ربه والمؤمنون كل آمن بالله وملائكته وكتبه ورسله",
				Surah:       "البقرة",
				Ayah:        285,
				Reference:   "البقرة: 285",
			}},
			RelatedQuestions: []string{"ما هي أركان الإسلام؟", "كيف أقوي إيماني؟", "ما هو القدر؟"},
		},
		{
			Keywords:   []string{"وضوء", "طهارة", "كيف أتوضأ"},
			AnswerText: "الوضوء يكون بالنية أولاً، ثم التسمية، ثم غسل الكفين ثلاثاً، ثم المضمضة والاستنشاق ثلاثاً، ثم غسل الوجه ثلاثاً، ثم غسل اليدين إلى المرفقين ثلاثاً بدءاً باليمين، ثم مسح الرأس مرة واحدة، ثم غسل الرجلين إلى الكعبين ثلاثاً بدءاً باليمين.",
			Sources:    []string{"صحيح البخاري", "صحيح مسلم", "سنن أبي داود"},
			Category:   analysis.CategoryWorship,
			PracticalAdvice: []string{
				"ابدأ بالنية قبل الوضوء",
				"قل \"بسم الله\" عند البداية",
				"ادع بعد الوضوء: \"أشهد أن لا إله إلا الله وأن محمداً عبده ورسوله\"",
			},
			RelatedQuestions: []string{"ما هي نواقض الوضوء؟", "كيف أتيمم؟", "هل يجوز الوضوء بالماء البارد؟"},
		},
		{
			Keywords:   []string{"صلاة", "أوقات الصلاة", "مواقيت"},
			AnswerText: "أوقات الصلوات الخمس هي: الفجر من طلوع الفجر الصادق إلى طلوع الشمس، والظهر من زوال الشمس إلى أن يصير ظل كل شيء مثله، والعصر من انتهاء وقت الظهر إلى غروب الشمس، والمغرب من غروب الشمس إلى غياب الشفق الأحمر، والعشاء من غياب الشفق الأحمر إلى منتصف الليل.",
			Sources:    []string{"صحيح البخاري", "صحيح مسلم"},
			Category:   analysis.CategoryWorship,
			Verses: []models.Verse{{
				Arabic:      "إِنَّ الصَّلَاةَ كَانَتْ عَلَى الْمُؤْمِنِينَ كِتَابًا مَّوْقُوتًا",
				Translation: "إن الصلاة كانت على المؤمنين كتاباً موقوتاً",
				Surah:       "النساء",
				Ayah:        103,
				Reference:   "النساء: 103",
			}},
			RelatedQuestions: []string{"كيف أصلي؟", "ما حكم تأخير الصلاة؟", "كيف أقضي الصلاة الفائتة؟"},
		},
		{
			Keywords:   []string{"زكاة", "حساب الزكاة", "نصاب"},
			AnswerText: "زكاة المال تجب في النقود والذهب والفضة إذا بلغت النصاب وحال عليها الحول. النصاب هو ما يعادل 85 جراماً من الذهب الخالص أو 595 جراماً من الفضة. والمقدار الواجب هو ربع العشر أي 2.5% من المال.",
			Sources:    []string{"صحيح البخاري", "صحيح مسلم", "سنن الترمذي"},
			Category:   analysis.CategoryWorship,
			PracticalAdvice: []string{
				"احسب زكاتك سنوياً في نفس التاريخ",
				"أخرج الزكاة فور وجوبها",
				"تأكد من وصولها للمستحقين",
			},
			RelatedQuestions: []string{"من يستحق الزكاة؟", "كيف أحسب زكاة الذهب؟", "هل تجب الزكاة في البيت؟"},
		},
		{
			Keywords:   []string{"بر الوالدين", "والدين", "أم", "أب"},
			AnswerText: "بر الوالدين من أعظم الأعمال عند الله، وهو واجب شرعي. يشمل طاعتهما في المعروف، والإحسان إليهما، والدعاء لهما، وعدم عقوقهما بالقول أو الفعل.",
			Sources:    []string{"القرآن الكريم", "صحيح البخاري"},
			Category:   analysis.CategoryEthics,
			Verses: []models.Verse{{
				Arabic:      "وَقَضَىٰ رَبُّكَ أَلَّا تَعْبُدُوا إِلَّا إِيَّاهُ وَبِالْوَالِدَيْنِ إِحْسَانًا",
				Translation: "وقضى ربك ألا تعبدوا إلا إياه وبالوالدين إحساناً",
				Surah:       "الإسراء",
				Ayah:        23,
				Reference:   "الإسراء: 23",
			}},
			RelatedQuestions: []string{"كيف أبر والدي المتوفى؟", "ما حكم طاعة الوالدين في المعصية؟", "كيف أتعامل مع والدي الغاضب؟"},
		},
		{
			Keywords:   []string{"ربا", "فوائد", "بنك", "قرض"},
			AnswerText: "الربا محرم في الإسلام تحريماً قطعياً، وهو من الكبائر. يشمل ربا الفضل وربا النسيئة. الفوائد البنكية من الربا المحرم.",
			Sources:    []string{"القرآن الكريم", "صحيح البخاري", "صحيح مسلم"},
			Category:   analysis.CategoryTransactions,
			Verses: []models.Verse{{
				Arabic:      "وَأَحَلَّ اللَّهُ الْبَيْعَ وَحَرَّمَ الرِّبَا",
				Translation: "وأحل الله البيع وحرم الربا",
				Surah:       "البقرة",
				Ayah:        275,
				Reference:   "البقرة: 275",
			}},
			Warnings:         []string{"تجنب جميع أنواع الربا", "ابحث عن البدائل الشرعية"},
			RelatedQuestions: []string{"ما هي البدائل الشرعية للربا؟", "حكم شراء البيت بالتقسيط؟", "ما هو البيع بالتقسيط؟"},
		},
	}
}
