// internal/reminder/templates.go
package reminder

import "mafatih/internal/models"

// Template is the fixed wording of one reminder.
type Template struct {
	Kind  models.ReminderKind `json:"kind"`
	Key   string              `json:"key"`
	Title string              `json:"title"`
	Body  string              `json:"body"`
	Time  string              `json:"time"`
}

var templates = []Template{
	{models.ReminderPrayer, "fajr", "وقت صلاة الفجر", "حان وقت صلاة الفجر. بارك الله فيك", "05:30"},
	{models.ReminderPrayer, "dhuhr", "وقت صلاة الظهر", "حان وقت صلاة الظهر. لا تنس الصلاة", "12:30"},
	{models.ReminderPrayer, "asr", "وقت صلاة العصر", "حان وقت صلاة العصر. استعد للصلاة", "15:45"},
	{models.ReminderPrayer, "maghrib", "وقت صلاة المغرب", "حان وقت صلاة المغرب. اللهم بلغنا ليلة القدر", "18:20"},
	{models.ReminderPrayer, "isha", "وقت صلاة العشاء", "حان وقت صلاة العشاء. ختام يوم مبارك", "19:45"},
	{models.ReminderDhikr, "morning", "أذكار الصباح", "ابدأ يومك بأذكار الصباح المباركة", "07:00"},
	{models.ReminderDhikr, "evening", "أذكار المساء", "اختتم يومك بأذكار المساء", "19:00"},
	{models.ReminderVerse, "daily", "آية اليوم", "تدبر آية اليوم واستفد من معانيها", "09:00"},
	{models.ReminderGeneral, "spiritual", "تذكير روحاني", "خذ لحظة للتفكر في نعم الله عليك", "14:00"},
}

// Templates returns a copy of every known reminder.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// Lookup finds the template for kind and key. Kinds with a single
// template accept an empty key.
func Lookup(kind models.ReminderKind, key string) (Template, bool) {
	var only Template
	count := 0
	for _, t := range templates {
		if t.Kind != kind {
			continue
		}
		if t.Key == key {
			return t, true
		}
		only = t
		count++
	}
	if key == "" && count == 1 {
		return only, true
	}
	return Template{}, false
}

// DefaultPrayerTimes returns the daily prayer times keyed by prayer name.
// The map is a fresh copy on every call.
func DefaultPrayerTimes() map[string]string {
	times := make(map[string]string, 5)
	for _, t := range templates {
		if t.Kind == models.ReminderPrayer {
			times[t.Key] = t.Time
		}
	}
	return times
}
