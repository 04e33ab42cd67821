// internal/analysis/lexicon.go
package analysis

// Sentiment lexicons. Matching is plain substring containment, so short
// entries such as "خير" also hit longer words that embed them.
var (
	positiveWords = []string{
		"سعيد", "ممتن", "شكر", "فرح", "راض", "مطمئن", "محب", "مبسوط", "مرتاح", "هادئ", "متفائل",
		"مسرور", "بخير", "الحمد", "نعمة", "بركة", "توفيق", "نجاح", "إنجاز", "فوز", "خير", "جميل",
	}

	negativeWords = []string{
		"حزين", "مكتئب", "قلق", "خائف", "غاضب", "يائس", "متوتر", "زعلان", "مضايق", "متعب", "مرهق",
		"محبط", "مهموم", "مشغول", "ضايق", "صعب", "مشكلة", "أزمة", "ضغط", "ألم", "وجع", "مرض",
	}

	spiritualWords = []string{
		"صلاة", "دعاء", "ذكر", "قرآن", "استغفار", "تسبيح", "حمد", "الله", "ربي", "إيمان", "توبة",
		"هداية", "بركة", "رحمة",
	}
)

// Topic lexicons used by Classify.
var (
	topicSpiritual = []string{
		"صلاة", "دعاء", "ذكر", "قرآن", "استغفار", "تسبيح", "حمد", "الله", "ربي", "إيمان", "توبة",
		"هداية", "بركة", "رحمة", "عبادة", "طاعة", "تقوى", "خشوع", "تدبر",
	}

	topicEmotional = []string{
		"حزن", "قلق", "خوف", "فرح", "سعادة", "غضب", "حب", "كره", "أمل", "يأس", "راحة", "ضيق",
		"انشراح", "كآبة", "بهجة", "طمأنينة", "توتر", "استقرار", "اضطراب",
	}

	topicPractical = []string{
		"عمل", "دراسة", "مشكلة", "حل", "قرار", "اختيار", "نصيحة", "مساعدة", "إرشاد", "توجيه",
		"خطة", "هدف", "إنجاز", "تحدي", "صعوبة", "عقبة", "فرصة", "تطوير", "تحسين",
	}

	topicPersonal = []string{
		"أنا", "نفسي", "ذاتي", "شخصيتي", "حياتي", "مستقبلي", "ماضي", "علاقاتي", "أسرتي",
		"أصدقائي", "زواج", "أطفال", "والدين", "صحتي", "جسمي", "عقلي", "نفسيتي",
	}
)

// Question category word lists, checked in order.
var questionCategories = []struct {
	name  string
	words []string
}{
	{CategoryAqeedah, []string{"أركان", "إيمان", "إسلام", "توحيد", "شرك"}},
	{CategoryWorship, []string{"صلاة", "وضوء", "زكاة", "صوم", "حج", "عمرة"}},
	{CategoryEthics, []string{"أخلاق", "والدين", "صدق", "أمانة", "بر"}},
	{CategoryTransactions, []string{"ربا", "بيع", "شراء", "تجارة", "مال"}},
}
