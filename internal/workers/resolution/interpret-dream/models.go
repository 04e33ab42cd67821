// internal/workers/resolution/interpret-dream/models.go
package interpretdream

import (
	"mafatih/internal/common/validation"
	"mafatih/internal/models"
)

type Input struct {
	Dream     string `json:"dream"`
	Language  string `json:"language,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	Dream      models.DreamRecord `json:"dream"`
	Category   string             `json:"dreamCategory"`
	Confidence float64            `json:"dreamConfidence"`
	IsFromAI   bool               `json:"dreamIsFromAI"`
}

func GetInputSchema(maxLength int) validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"dream":     {Type: "string", MaxLength: validation.IntPtr(maxLength)},
			"language":  {Type: "string"},
			"sessionId": {Type: "string"},
		},
		Required: []string{"dream"},
	}
}
