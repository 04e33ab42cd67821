// internal/api/resolve.go
package api

import (
	"net/http"
	"strings"

	"mafatih/internal/analysis"
	"mafatih/internal/models"
)

type queryRequest struct {
	Text      string `json:"text"`
	Language  string `json:"language,omitempty"`
	Context   string `json:"context,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

func (q queryRequest) query() models.Query {
	return models.Query{
		Text:      q.Text,
		Language:  q.Language,
		Context:   q.Context,
		SessionID: q.SessionID,
	}
}

// Resolution endpoints always answer 200: pipeline failures are already
// folded into a lower-confidence record.

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Resolver.ResolveQuestion(r.Context(), req.query()))
}

func (s *Server) handleDream(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Resolver.InterpretDream(r.Context(), req.query()))
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.deps.Resolver.RecommendVerse(r.Context(), req.query()))
}

type analyzeResponse struct {
	Sentiment         models.SentimentResult      `json:"sentiment"`
	Classification    models.ClassificationResult `json:"classification"`
	Question          models.QuestionAnalysis     `json:"question"`
	EmotionalCategory string                      `json:"emotionalCategory"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	text := strings.TrimSpace(req.Text)
	sentiment := analysis.Analyze(text)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Sentiment:         sentiment,
		Classification:    analysis.Classify(text),
		Question:          analysis.AnalyzeQuestion(text),
		EmotionalCategory: analysis.EmotionalCategory(sentiment, text),
	})
}
