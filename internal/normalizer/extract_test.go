// internal/normalizer/extract_test.go
package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSection(t *testing.T) {
	text := "التفسير العام\nالمعنى الإسلامي: رؤية خير وبركة\nتدل على الرزق\n\nالإرشادات: الإكثار من الدعاء\n1. الصلاة في وقتها"

	assert.Equal(t, "رؤية خير وبركة\nتدل على الرزق", ExtractSection(text, "المعنى الإسلامي"))
	assert.Equal(t, "الإكثار من الدعاء", ExtractSection(text, "الإرشادات"))
	assert.Equal(t, "", ExtractSection(text, "تحذيرات"))
	assert.Equal(t, "", ExtractSection("تحذير:", "تحذير"))
}

func TestCategorizeDream(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"هذه الرؤيا بشارة لك", DreamGoodTidings},
		{"احذر من الأصدقاء", DreamWarnings},
		{"رؤيا فيها هداية", DreamGuidance},
		{"يدل على الاستقرار", DreamSymbols},
		{"لا شيء محدد", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeDream(tt.text))
		})
	}
}

func TestExtractSymbols(t *testing.T) {
	assert.Equal(t, []string{"الماء", "البيت", "النور"}, ExtractSymbols("رأيت الماء والنور في البيت"))
	assert.Empty(t, ExtractSymbols("لا رموز"))
	assert.NotNil(t, ExtractSymbols(""))
}

func TestParseVerse_Canonical(t *testing.T) {
	body := "```json\n" + `{"verse":{"arabic":"أَلَا بِذِكْرِ اللَّهِ تَطْمَئِنُّ الْقُلُوبُ","translation":"t","surah":"الرعد","ayah":28,"reference":"الرعد: 28"},"explanation":"e"}` + "\n```"

	parsed := ParseVerse(body)

	assert.True(t, parsed.Found)
	assert.Equal(t, ShapeCanonical, parsed.Shape)
	assert.Equal(t, "الرعد", parsed.Verse.Surah)
	assert.Equal(t, 28, parsed.Verse.Ayah)
	assert.Equal(t, "e", parsed.Explanation)
	assert.Equal(t, DefaultReflection, parsed.Reflection)
	assert.Len(t, parsed.SpiritualGuidance, 3)
}

func TestParseVerse_Alternative(t *testing.T) {
	body := `{"verse_text":"لَا يُكَلِّفُ اللَّهُ نَفْسًا إِلَّا وُسْعَهَا","surah_name":"البقرة","ayah_number":286,"tafsir":"x","topics":["اليسر"]}`

	parsed := ParseVerse(body)

	assert.True(t, parsed.Found)
	assert.Equal(t, ShapeAlternative, parsed.Shape)
	assert.Equal(t, "لَا يُكَلِّفُ اللَّهُ نَفْسًا إِلَّا وُسْعَهَا", parsed.Verse.Arabic)
	assert.Equal(t, "البقرة", parsed.Verse.Surah)
	assert.Equal(t, 286, parsed.Verse.Ayah)
	assert.Equal(t, "البقرة: 286", parsed.Verse.Reference)
	assert.Equal(t, "x", parsed.Explanation)
	assert.Equal(t, []string{"اليسر"}, parsed.RelatedTopics)
}

func TestParseVerse_AlternativeWithoutText(t *testing.T) {
	parsed := ParseVerse(`{"surah":"الملك"}`)

	assert.False(t, parsed.Found)
	assert.Equal(t, DefaultVerse, parsed.Verse)
}

func TestParseVerse_FreeText(t *testing.T) {
	text := "﴿فَإِنَّ مَعَ الْعُسْرِ يُسْرًا إِنَّ مَعَ الْعُسْرِ يُسْرًا﴾ سورة الشرح 5. تدبر: تأمل كيف يأتي اليسر بعد العسر دائما."

	parsed := ParseVerse(text)

	assert.True(t, parsed.Found)
	assert.Equal(t, ShapeText, parsed.Shape)
	assert.Equal(t, "فَإِنَّ مَعَ الْعُسْرِ يُسْرًا إِنَّ مَعَ الْعُسْرِ يُسْرًا", parsed.Verse.Arabic)
	assert.Equal(t, "الشرح", parsed.Verse.Surah)
	assert.Equal(t, 5, parsed.Verse.Ayah)
	assert.Equal(t, "الشرح: 5", parsed.Verse.Reference)
	assert.Equal(t, DefaultExplanation, parsed.Explanation)
	assert.Equal(t, "تأمل كيف يأتي اليسر بعد العسر دائما", parsed.Reflection)
}

func TestParseVerse_DefaultVerse(t *testing.T) {
	for _, body := range []string{"", "لا توجد آية هنا", "{not json"} {
		parsed := ParseVerse(body)
		assert.False(t, parsed.Found, body)
		assert.Equal(t, DefaultVerse, parsed.Verse, body)
		assert.Equal(t, "الطلاق: 2-3", parsed.Verse.Reference)
	}
}
