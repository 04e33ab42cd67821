// internal/workers/resolution/recommend-verse/models.go
package recommendverse

import "mafatih/internal/models"

type Input struct {
	Mood      string `json:"mood"`
	Language  string `json:"language,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	Recommendation    models.VerseRecord `json:"recommendation"`
	Reference         string             `json:"verseReference"`
	EmotionalCategory string             `json:"emotionalCategory"`
	Confidence        float64            `json:"verseConfidence"`
	IsFromAI          bool               `json:"verseIsFromAI"`
}
