// internal/gateway/config.go
package gateway

import (
	"strings"
	"time"

	"mafatih/internal/common/config"
)

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func NewConfig(cfg config.GroqConfig) *Config {
	return &Config{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     config.GetDuration(cfg.Timeout),
	}
}

var placeholderKeys = map[string]bool{
	"your_groq_api_key_here":             true,
	"gsk_your_actual_groq_api_key_here":  true,
	"gsk_demo_key_replace_with_real_key": true,
}

// ValidKey reports whether key looks like a usable Groq credential.
func ValidKey(key string) bool {
	return strings.HasPrefix(key, "gsk_") && !placeholderKeys[key]
}
