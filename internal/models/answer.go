// internal/models/answer.go
package models

import "time"

// Verse is a Quranic citation.
type Verse struct {
	Arabic      string `json:"arabic"`
	Translation string `json:"translation,omitempty"`
	Surah       string `json:"surah"`
	Ayah        int    `json:"ayah"`
	Reference   string `json:"reference,omitempty"`
}

// AnswerRecord is the normalized result of a question resolution.
type AnswerRecord struct {
	ID               string    `json:"id"`
	QuestionText     string    `json:"question"`
	AnswerText       string    `json:"answer"`
	Sources          []string  `json:"sources"`
	Category         string    `json:"category"`
	RelatedQuestions []string  `json:"relatedQuestions"`
	Confidence       float64   `json:"confidence"`
	IsFromAI         bool      `json:"isFromAI"`
	Warnings         []string  `json:"warnings"`
	Symbolism        []string  `json:"symbolism,omitempty"`
	Verses           []Verse   `json:"verses,omitempty"`
	PracticalAdvice  []string  `json:"practicalAdvice"`
	Tier             Tier      `json:"tier"`
	Timestamp        time.Time `json:"timestamp"`
}

// KnowledgeEntry is one curated answer of the static knowledge base.
type KnowledgeEntry struct {
	Keywords         []string `json:"keywords"`
	AnswerText       string   `json:"answer"`
	Sources          []string `json:"sources"`
	Category         string   `json:"category"`
	RelatedQuestions []string `json:"relatedQuestions"`
	Verses           []Verse  `json:"verses,omitempty"`
	PracticalAdvice  []string `json:"practicalAdvice,omitempty"`
	Warnings         []string `json:"warnings,omitempty"`
}

// Fatwa is a question/answer pair served by the local search tier.
type Fatwa struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Source   string   `json:"source"`
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
	URL      string   `json:"url,omitempty"`
}

type DreamRecord struct {
	ID             string    `json:"id"`
	DreamText      string    `json:"dream"`
	Interpretation string    `json:"interpretation"`
	IslamicMeaning string    `json:"islamicMeaning"`
	Guidance       string    `json:"guidance"`
	Warnings       []string  `json:"warnings"`
	Symbolism      []string  `json:"symbolism"`
	Category       string    `json:"category"`
	Sources        []string  `json:"sources"`
	Confidence     float64   `json:"confidence"`
	IsFromAI       bool      `json:"isFromAI"`
	Tier           Tier      `json:"tier"`
	Timestamp      time.Time `json:"timestamp"`
}

type VerseRecord struct {
	ID                string    `json:"id"`
	Mood              string    `json:"mood"`
	Verse             Verse     `json:"verse"`
	Explanation       string    `json:"explanation"`
	Reflection        string    `json:"reflection"`
	PracticalAdvice   string    `json:"practicalAdvice"`
	RelatedTopics     []string  `json:"relatedTopics"`
	SpiritualGuidance []string  `json:"spiritualGuidance"`
	Sentiment         string    `json:"sentiment"`
	EmotionalCategory string    `json:"emotionalCategory"`
	Confidence        float64   `json:"confidence"`
	IsFromAI          bool      `json:"isFromAI"`
	Tier              Tier      `json:"tier"`
	Timestamp         time.Time `json:"timestamp"`
}
