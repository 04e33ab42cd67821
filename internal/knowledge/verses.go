// internal/knowledge/verses.go
package knowledge

import (
	"math"
	"strings"

	"mafatih/internal/models"
)

type VerseGroup string

const (
	GroupSad       VerseGroup = "sad"
	GroupAnxious   VerseGroup = "anxious"
	GroupGrateful  VerseGroup = "grateful"
	GroupHopeful   VerseGroup = "hopeful"
	GroupSpiritual VerseGroup = "spiritual"
)

const localVerseFloor = 0.7

// VerseEntry is one verse of the local store with its commentary.
type VerseEntry struct {
	Verse           models.Verse
	Explanation     string
	Reflection      string
	PracticalAdvice string
	RelatedTopics   []string
}

// VerseSelection is the outcome of SelectVerse.
type VerseSelection struct {
	Entry      VerseEntry
	Group      VerseGroup
	Confidence float64
}

var verseStore = map[VerseGroup][]VerseEntry{
	GroupSad: {
		{
			Verse: models.Verse{
				Arabic:      "وَبَشِّرِ الصَّابِرِينَ ۝ الَّذِينَ إِذَا أَصَابَتْهُم مُّصِيبَةٌ قَالُوا إِنَّا لِلَّهِ وَإِنَّا إِلَيْهِ رَاجِعُونَ",
				Translation: "وبشر الصابرين الذين إذا أصابتهم مصيبة قالوا إنا لله وإنا إليه راجعون",
				Surah:       "البقرة",
				Ayah:        156,
				Reference:   "البقرة: 155-156",
			},
			Explanation:     "هذه الآية تذكرنا بأن الصبر على البلاء من صفات المؤمنين الصادقين، وأن كل ما يصيبنا هو من قدر الله الحكيم",
			Reflection:      "عندما تشعر بالحزن، تذكر أن هذا الابتلاء مؤقت وأن الله معك في كل لحظة. الصبر مفتاح الفرج",
			PracticalAdvice: "قل \"إنا لله وإنا إليه راجعون\" عند كل مصيبة، واستشعر أن هذا تذكير بأن كل شيء ملك لله وإليه المرجع",
			RelatedTopics:   []string{"الصبر على البلاء", "الاسترجاع", "التسليم لله", "الثقة بالله"},
		},
		{
			Verse: models.Verse{
				Arabic:      "وَلَنَبْلُوَنَّكُم بِشَيْءٍ مِّنَ الْخَوْفِ وَالْجُوعِ وَنَقْصٍ مِّنَ الْأَمْوَالِ وَالْأَنفُسِ وَالثَّمَرَاتِ ۗ وَبَشِّرِ الصَّابِرِينَ",
				Translation: "ولنبلونكم بشيء من الخوف والجوع ونقص من الأموال والأنفس والثمرات وبشر الصابرين",
				Surah:       "البقرة",
				Ayah:        155,
				Reference:   "البقرة: 155",
			},
			Explanation:     "الابتلاء سنة الله في خلقه، وهو اختبار لإيماننا وصبرنا، والبشرى للصابرين",
			Reflection:      "الابتلاء ليس عقاباً بل اختبار وتطهير، والله يبتلي من يحب ليرفع درجاته",
			PracticalAdvice: "اعلم أن كل ابتلاء يمر عليك هو امتحان من الله، فاصبر واحتسب الأجر عند الله",
			RelatedTopics:   []string{"الابتلاء والاختبار", "الصبر", "البشرى للصابرين", "حكمة الله"},
		},
	},
	GroupAnxious: {
		{
			Verse: models.Verse{
				Arabic:      "الَّذِينَ آمَنُوا وَتَطْمَئِنُّ قُلُوبُهُم بِذِكْرِ اللَّهِ ۗ أَلَا بِذِكْرِ اللَّهِ تَطْمَئِنُّ الْقُلُوبُ",
				Translation: "الذين آمنوا وتطمئن قلوبهم بذكر الله ألا بذكر الله تطمئن القلوب",
				Surah:       "الرعد",
				Ayah:        28,
				Reference:   "الرعد: 28",
			},
			Explanation:     "ذكر الله هو الدواء الشافي للقلوب القلقة والنفوس المضطربة، فبه تجد القلوب سكينتها وراحتها",
			Reflection:      "اجعل لسانك رطباً بذكر الله في كل وقت، فهو السكينة الحقيقية والأمان الذي لا ينقطع",
			PracticalAdvice: "أكثر من الذكر والتسبيح، خاصة \"لا إله إلا الله\" و\"سبحان الله وبحمده\" و\"استغفر الله العظيم\"",
			RelatedTopics:   []string{"ذكر الله", "الطمأنينة", "السكينة", "علاج القلق"},
		},
		{
			Verse: models.Verse{
				Arabic:      "وَمَن يَتَوَكَّلْ عَلَى اللَّهِ فَهُوَ حَسْبُهُ ۚ إِنَّ اللَّهَ بَالِغُ أَمْرِهِ ۚ قَدْ جَعَلَ اللَّهُ لِكُلِّ شَيْءٍ قَدْرًا",
				Translation: "ومن يتوكل على الله فهو حسبه إن الله بالغ أمره قد جعل الله لكل شيء قدراً",
				Surah:       "الطلاق",
				Ayah:        3,
				Reference:   "الطلاق: 3",
			},
			Explanation:     "التوكل على الله يجلب الطمأنينة ويزيل القلق، فمن اعتمد على الله كفاه الله كل همومه",
			Reflection:      "ثق بأن الله سيدبر أمورك خير تدبير، وأن كل شيء بقدر وحكمة منه سبحانه",
			PracticalAdvice: "اعمل بالأسباب ثم توكل على الله، وقل \"حسبي الله ونعم الوكيل\" عند كل قلق",
			RelatedTopics:   []string{"التوكل على الله", "الثقة بالله", "تدبير الله", "السكينة"},
		},
	},
	GroupGrateful: {
		{
			Verse: models.Verse{
				Arabic:      "وَإِذْ تَأَذَّنَ رَبُّكُمْ لَئِن شَكَرْتُمْ لَأَزِيدَنَّكُمْ ۖ وَلَئِن كَفَرْتُمْ إِنَّ عَذَابِي لَشَدِيدٌ",
				Translation: "وإذ تأذن ربكم لئن شكرتم لأزيدنكم ولئن كفرتم إن عذابي لشديد",
				Surah:       "إبراهيم",
				Ayah:        7,
				Reference:   "إبراهيم: 7",
			},
			Explanation:     "الشكر يزيد النعم ويجلب البركة، وهو سبب في المزيد من فضل الله ورحمته",
			Reflection:      "احمد الله على نعمه الظاهرة والباطنة، فالشكر يجلب البركة ويزيد النعم",
			PracticalAdvice: "اكتب 3 أشياء تشكر الله عليها كل يوم، وقل \"الحمد لله رب العالمين\" بصدق وتدبر",
			RelatedTopics:   []string{"الشكر والحمد", "زيادة النعم", "البركة", "فضل الله"},
		},
	},
	GroupHopeful: {
		{
			Verse: models.Verse{
				Arabic:      "وَلَا تَيْأَسُوا مِن رَّوْحِ اللَّهِ ۖ إِنَّهُ لَا يَيْأَسُ مِن رَّوْحِ اللَّهِ إِلَّا الْقَوْمُ الْكَافِرُونَ",
				Translation: "ولا تيأسوا من روح الله إنه لا ييأس من روح الله إلا القوم الكافرون",
				Surah:       "يوسف",
				Ayah:        87,
				Reference:   "يوسف: 87",
			},
			Explanation:     "هذه الآية تبث الأمل في القلوب وتذكر بأن رحمة الله واسعة وفرجه قريب",
			Reflection:      "مهما اشتدت الظروف، فإن الله قادر على تغييرها في لحظة، فلا تفقد الأمل أبداً",
			PracticalAdvice: "ادع الله بيقين أنه سيجيبك، وتذكر أن بعد العسر يسراً، وأن الله لا يضيع من توكل عليه",
			RelatedTopics:   []string{"الأمل والرجاء", "رحمة الله", "الفرج بعد الضيق", "عدم اليأس"},
		},
	},
	GroupSpiritual: {
		{
			Verse: models.Verse{
				Arabic:      "وَاعْبُدْ رَبَّكَ حَتَّىٰ يَأْتِيَكَ الْيَقِينُ",
				Translation: "واعبد ربك حتى يأتيك اليقين",
				Surah:       "الحجر",
				Ayah:        99,
				Reference:   "الحجر: 99",
			},
			Explanation:     "العبادة هي الغاية من خلق الإنسان، والاستمرار عليها حتى الموت هو طريق الفلاح",
			Reflection:      "اجعل عبادة الله هي محور حياتك، واستمر عليها في السراء والضراء",
			PracticalAdvice: "حافظ على الصلوات الخمس، وأكثر من قراءة القرآن والذكر والدعاء",
			RelatedTopics:   []string{"العبادة والطاعة", "الثبات على الدين", "اليقين", "الاستقامة"},
		},
	},
}

// VerseGroupFor picks the store group for a mood text given its sentiment
// and topic classification.
func VerseGroupFor(sentiment models.SentimentResult, classification models.ClassificationResult, text string) VerseGroup {
	lower := strings.ToLower(text)
	switch sentiment.Sentiment {
	case models.SentimentNegative:
		switch {
		case containsAny(lower, "قلق", "خوف", "توتر"):
			return GroupAnxious
		case containsAny(lower, "حزن", "حزين", "مكتئب", "ضيق"):
			return GroupSad
		default:
			return GroupHopeful
		}
	case models.SentimentPositive:
		if containsAny(lower, "شكر", "ممتن", "حمد") {
			return GroupGrateful
		}
		return GroupHopeful
	}
	if classification.TopicCategory == models.TopicSpiritual {
		return GroupSpiritual
	}
	return GroupGrateful
}

// SelectVerse returns the first verse of the chosen group.
func SelectVerse(sentiment models.SentimentResult, classification models.ClassificationResult, text string) VerseSelection {
	group := VerseGroupFor(sentiment, classification, text)
	entries, ok := verseStore[group]
	if !ok || len(entries) == 0 {
		group = GroupGrateful
		entries = verseStore[group]
	}

	entry := entries[0]
	entry.RelatedTopics = append([]string(nil), entry.RelatedTopics...)

	return VerseSelection{
		Entry:      entry,
		Group:      group,
		Confidence: math.Max(localVerseFloor, sentiment.Confidence+classification.Confidence) / 2,
	}
}

// VerseGroupSize reports how many verses a group holds.
func VerseGroupSize(group VerseGroup) int {
	return len(verseStore[group])
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
