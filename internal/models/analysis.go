// internal/models/analysis.go
package models

const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

const (
	TopicSpiritual = "spiritual"
	TopicEmotional = "emotional"
	TopicPractical = "practical"
	TopicPersonal  = "personal"
	TopicGeneral   = "general"
)

type SentimentResult struct {
	Sentiment  string   `json:"sentiment"`
	Emotions   []string `json:"emotions"`
	Intensity  float64  `json:"intensity"`
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
}

type ClassificationResult struct {
	TopicCategory string  `json:"topicCategory"`
	Intent        string  `json:"intent"`
	Confidence    float64 `json:"confidence"`
}

// QuestionAnalysis is the keyword view of a question used by the static
// knowledge base.
type QuestionAnalysis struct {
	Keywords   []string `json:"keywords"`
	Category   string   `json:"category"`
	Complexity string   `json:"complexity"`
	Intent     string   `json:"intent"`
}
