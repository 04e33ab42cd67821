// internal/workers/resolution/ask-question/models.go
package askquestion

import (
	"mafatih/internal/common/validation"
	"mafatih/internal/models"
)

type Input struct {
	Question  string `json:"question"`
	Language  string `json:"language,omitempty"`
	Context   string `json:"context,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Output flattens the fields a process model branches on next to the full
// record.
type Output struct {
	Answer     models.AnswerRecord `json:"answer"`
	Tier       models.Tier         `json:"answerTier"`
	Confidence float64             `json:"answerConfidence"`
	IsFromAI   bool                `json:"answerIsFromAI"`
	Category   string              `json:"answerCategory"`
}

func GetInputSchema(maxLength int) validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"question":  {Type: "string", MaxLength: validation.IntPtr(maxLength)},
			"language":  {Type: "string"},
			"context":   {Type: "string"},
			"sessionId": {Type: "string"},
		},
		Required: []string{"question"},
	}
}
