// internal/gateway/prompts.go
package gateway

import (
	"fmt"
	"math"
	"strings"

	"mafatih/internal/models"
)

// QuestionPrompt asks for a structured answer to a religious question.
func QuestionPrompt(question string) string {
	return fmt.Sprintf(`
أنت مساعد ذكي متخصص في الأسئلة الشرعية الإسلامية.

السؤال: %s

أجب بتنسيق JSON:
{
  "answer": "الإجابة التفصيلية",
  "category": "فئة السؤال",
  "sources": ["مصدر1"],
  "confidence": 0.85,
  "relatedQuestions": ["سؤال ذو صلة"],
  "practicalAdvice": ["نصيحة عملية"]
}
`, question)
}

// DreamPrompt asks for an interpretation following the classical dream
// interpretation books.
func DreamPrompt(dream string) string {
	return fmt.Sprintf(`أريد تفسير هذا الحلم وفقاً للكتب الإسلامية الموثوقة في تفسير الأحلام: "%s"

يرجى تقديم تفسير شامل يتضمن:
1. التفسير الإسلامي المعتمد من كتب ابن سيرين وابن شاهين والنابلسي
2. المعنى الروحي والرمزي للرؤية
3. الإرشادات والأعمال المستحبة
4. التحذيرات إن وجدت
5. مصادر التفسير المعتمدة`, dream)
}

// VersePrompt asks for one verse suited to the user's emotional state.
func VersePrompt(mood string, sentiment models.SentimentResult) string {
	return fmt.Sprintf(`
أنت مرشد روحي إسلامي خبير ومتخصص في اقتراح الآيات القرآنية المناسبة للحالات النفسية المختلفة.

تحليل الحالة النفسية:
- النص الأصلي: "%s"
- الحالة العاطفية: %s
- شدة المشاعر: %d%%
- المشاعر المكتشفة: %s
- الكلمات المفتاحية: %s
- السياق النفسي: %s

قواعد:
- استخدم آيات صحيحة من القرآن الكريم فقط (لا تخترع آيات)
- تأكد من دقة النص العربي بالتشكيل الصحيح
- تأكد من صحة اسم السورة ورقم الآية

أجب بتنسيق JSON صحيح ومكتمل:
{
  "verse": {
    "arabic": "النص العربي الكامل للآية مع التشكيل الصحيح",
    "translation": "ترجمة مبسطة وواضحة بالعربية",
    "surah": "اسم السورة الصحيح",
    "ayah": 1,
    "reference": "اسم السورة: رقم الآية"
  },
  "explanation": "شرح عميق للآية يربطها بالحالة النفسية المحددة",
  "reflection": "تدبر عملي وروحي يمكن تطبيقه في الحياة اليومية",
  "practicalAdvice": "نصيحة عملية محددة للاستفادة من الآية",
  "relatedTopics": ["موضوع روحي 1", "موضوع روحي 2", "موضوع روحي 3"],
  "spiritualGuidance": ["إرشاد روحي عملي 1", "إرشاد روحي عملي 2", "إرشاد روحي عملي 3"]
}
`,
		mood,
		sentiment.Sentiment,
		int(math.Round(sentiment.Intensity*100)),
		strings.Join(sentiment.Emotions, ", "),
		strings.Join(sentiment.Keywords, ", "),
		emotionalContext(mood, sentiment.Sentiment),
	)
}

func emotionalContext(mood, sentiment string) string {
	lower := strings.ToLower(mood)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}

	switch sentiment {
	case models.SentimentNegative:
		switch {
		case has("حزين", "مكتئب", "حزن"):
			return "حالة حزن عميق تحتاج للتعزية والصبر"
		case has("قلق", "خوف", "توتر"):
			return "حالة قلق وخوف تحتاج للطمأنينة والسكينة"
		case has("غضب", "زعل", "عصبي"):
			return "حالة غضب تحتاج للهدوء والحكمة"
		case has("يأس", "إحباط", "فشل"):
			return "حالة يأس وإحباط تحتاج للأمل والتفاؤل"
		default:
			return "حالة نفسية صعبة تحتاج للدعم الروحي"
		}
	case models.SentimentPositive:
		switch {
		case has("شكر", "ممتن", "حمد"):
			return "حالة شكر وامتنان تحتاج لتعزيز الشكر"
		case has("سعيد", "فرح", "مبسوط"):
			return "حالة فرح وسعادة تحتاج للحفاظ على النعمة"
		default:
			return "حالة إيجابية تحتاج للاستمرار والشكر"
		}
	default:
		return "حالة متوازنة تحتاج للإرشاد الروحي العام"
	}
}
