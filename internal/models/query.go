// internal/models/query.go
package models

// Query is one user submission to any of the resolution flows.
type Query struct {
	Text      string `json:"text"`
	Language  string `json:"language,omitempty"`
	Context   string `json:"context,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Feature names the resolution flow a query went through.
type Feature string

const (
	FeatureQuestion Feature = "question"
	FeatureDream    Feature = "dream"
	FeatureVerse    Feature = "verse"
)

// Tier names the pipeline stage that produced a record.
type Tier string

const (
	TierStaticKB    Tier = "static_kb"
	TierLLM         Tier = "llm"
	TierLocalSearch Tier = "local_search"
	TierDefault     Tier = "default"
)
