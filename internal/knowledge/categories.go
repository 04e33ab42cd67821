// internal/knowledge/categories.go
package knowledge

import "mafatih/internal/analysis"

var relatedQuestions = map[string][]string{
	analysis.CategoryAqeedah: {
		"ما هي أركان الإسلام؟",
		"ما هي أركان الإيمان؟",
		"كيف أقوي إيماني؟",
		"ما الفرق بين الإسلام والإيمان؟",
	},
	analysis.CategoryWorship: {
		"كيف أصلي الصلاة الصحيحة؟",
		"ما هي أوقات الصلاة؟",
		"كيف أحسب الزكاة؟",
		"ما هي آداب الوضوء؟",
	},
	analysis.CategoryEthics: {
		"كيف أبر والدي؟",
		"ما هي آداب التعامل مع الناس؟",
		"كيف أكون صادقاً؟",
		"ما هي حقوق الجار؟",
	},
	analysis.CategoryTransactions: {
		"ما حكم الربا؟",
		"كيف أتاجر بطريقة حلال؟",
		"ما هي البدائل الشرعية للربا؟",
		"حكم البيع والشراء؟",
	},
	analysis.CategoryGeneral: {
		"كيف أتقرب إلى الله؟",
		"ما هي الأعمال المستحبة؟",
		"كيف أستغفر الله؟",
		"ما فضل قراءة القرآن؟",
	},
}

var practicalAdvice = map[string][]string{
	analysis.CategoryAqeedah: {
		"اقرأ القرآن بتدبر يومياً",
		"أكثر من الذكر والتسبيح",
		"تعلم أسماء الله الحسنى",
		"ادع الله في كل وقت",
	},
	analysis.CategoryWorship: {
		"حافظ على الصلوات الخمس في وقتها",
		"اقرأ القرآن يومياً",
		"أكثر من الاستغفار",
		"احرص على النوافل",
	},
	analysis.CategoryEthics: {
		"تعامل مع الناس بالحسنى",
		"اصدق في جميع أقوالك",
		"ساعد المحتاجين",
		"اعف عمن ظلمك",
	},
	analysis.CategoryTransactions: {
		"تجنب الربا والغش",
		"كن أميناً في التجارة",
		"أوف بالعقود والوعود",
		"ابحث عن الحلال دائماً",
	},
	analysis.CategoryGeneral: {
		"اتق الله في السر والعلن",
		"أكثر من الأعمال الصالحة",
		"تعلم دينك من مصادر موثوقة",
		"اصحب الصالحين",
	},
}

var warnings = map[string][]string{
	analysis.CategoryAqeedah: {
		"احذر من الشرك بالله",
		"لا تتبع البدع في الدين",
		"تعلم العقيدة الصحيحة",
	},
	analysis.CategoryWorship: {
		"لا تؤخر الصلاة عن وقتها",
		"تأكد من صحة وضوئك",
		"احرص على الطهارة",
	},
	analysis.CategoryEthics: {
		"لا تكذب أو تغش",
		"احذر من عقوق الوالدين",
		"تجنب الغيبة والنميمة",
	},
	analysis.CategoryTransactions: {
		"احذر من الربا والغش",
		"لا تأكل أموال الناس بالباطل",
		"تجنب المعاملات المشبوهة",
	},
	analysis.CategoryGeneral: {
		"يُنصح بمراجعة عالم مختص",
		"تأكد من صحة المعلومة",
		"لا تفت بغير علم",
	},
}

var defaultAnswers = map[string]string{
	analysis.CategoryAqeedah:      "هذا سؤال مهم في العقيدة الإسلامية. أنصحك بمراجعة كتب العقيدة الصحيحة أو استشارة عالم مختص للحصول على إجابة دقيقة ومفصلة.",
	analysis.CategoryWorship:      "هذا سؤال يتعلق بالعبادات في الإسلام. للحصول على إجابة صحيحة ومفصلة، يُنصح بمراجعة كتب الفقه أو استشارة عالم مختص.",
	analysis.CategoryEthics:       "هذا سؤال مهم في الأخلاق الإسلامية. الإسلام يحث على مكارم الأخلاق والتعامل الحسن. أنصحك بمراجعة المصادر الشرعية الموثوقة.",
	analysis.CategoryTransactions: "هذا سؤال يتعلق بالمعاملات المالية في الإسلام. للتأكد من الحكم الشرعي الصحيح، يُنصح بمراجعة عالم مختص في الفقه المالي.",
	analysis.CategoryGeneral:      "هذا سؤال مهم في الدين الإسلامي. للحصول على إجابة دقيقة وموثوقة، أنصحك بمراجعة المصادر الشرعية المعتمدة أو استشارة عالم مختص.",
}

// RelatedQuestions returns suggested follow-ups for a question category.
// Unknown categories get the general list. The result is a fresh slice.
func RelatedQuestions(category string) []string {
	return lookup(relatedQuestions, category)
}

func PracticalAdvice(category string) []string {
	return lookup(practicalAdvice, category)
}

func Warnings(category string) []string {
	return lookup(warnings, category)
}

// DefaultAnswer is the category-specific pointer to qualified scholars
// used when no tier produced an answer.
func DefaultAnswer(category string) string {
	if answer, ok := defaultAnswers[category]; ok {
		return answer
	}
	return defaultAnswers[analysis.CategoryGeneral]
}

func lookup(table map[string][]string, category string) []string {
	items, ok := table[category]
	if !ok {
		items = table[analysis.CategoryGeneral]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
