// internal/gateway/gateway.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	commonhttp "mafatih/internal/common/http"
	"mafatih/internal/common/logger"
)

const ServiceName = "groq"

const healthPrompt = "ما هو الإسلام؟"

// RawJSON is the assistant message content exactly as the provider
// returned it. It is usually, not always, a JSON document.
type RawJSON string

// Completer is what the resolver needs from a gateway.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int, language string) (RawJSON, error)
}

type Gateway struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func New(config *Config, client *commonhttp.Client, log logger.Logger) *Gateway {
	if client == nil {
		client = commonhttp.NewClient(ServiceName, config.Timeout)
	}
	return &Gateway{
		config: config,
		client: client,
		logger: log.With(map[string]interface{}{"component": "gateway"}),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	MaxTokens      int            `json:"max_tokens"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat completion request. The credential is checked
// before any I/O and no retries are made.
func (g *Gateway) Complete(ctx context.Context, prompt string, maxTokens int, language string) (RawJSON, error) {
	if !ValidKey(g.config.APIKey) {
		return "", newError(KindMissingCredential, 0, nil)
	}
	if maxTokens <= 0 {
		maxTokens = g.config.MaxTokens
	}

	payload, err := json.Marshal(chatRequest{
		Model: g.config.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt(language)},
			{Role: "user", Content: prompt},
		},
		MaxTokens:      maxTokens,
		Temperature:    g.config.Temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", newError(KindMalformedResponse, 0, err)
	}

	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return "", newError(KindNetwork, 0, err)
	}
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("Completion request failed", map[string]interface{}{"error": err.Error()})
		return "", newError(KindNetwork, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		gwErr := statusError(resp.StatusCode, strings.TrimSpace(string(body)))
		g.logger.Warn("Completion rejected", map[string]interface{}{
			"status": resp.StatusCode,
			"kind":   string(gwErr.Kind),
		})
		return "", gwErr
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", newError(KindNetwork, resp.StatusCode, ctxErr)
		}
		return "", newError(KindMalformedResponse, resp.StatusCode, err)
	}
	if len(decoded.Choices) == 0 || decoded.Choices[0].Message == nil || decoded.Choices[0].Message.Content == "" {
		return "", newError(KindMalformedResponse, resp.StatusCode, errors.New("no choices[0].message.content"))
	}

	return RawJSON(decoded.Choices[0].Message.Content), nil
}

// HealthCheck asks a trivial question and reports whether a usable answer
// came back.
func (g *Gateway) HealthCheck(ctx context.Context) bool {
	raw, err := g.Complete(ctx, QuestionPrompt(healthPrompt), 100, "ar")
	if err != nil {
		g.logger.Warn("Gateway health check failed", map[string]interface{}{"error": err.Error()})
		return false
	}
	return healthConfidence(raw) > 0.5
}

// healthConfidence mirrors the normalizer's treatment of a raw answer:
// structured answers default to 0.8, free text scores 0.5.
func healthConfidence(raw RawJSON) float64 {
	var doc struct {
		Answer     *string  `json:"answer"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.Answer == nil {
		return 0.5
	}
	if doc.Confidence == nil {
		return 0.8
	}
	return *doc.Confidence
}

func statusError(status int, body string) *GatewayError {
	var kind Kind
	switch {
	case status == http.StatusUnauthorized:
		kind = KindUnauthorized
	case status == http.StatusTooManyRequests:
		kind = KindRateLimited
	case status >= 500:
		kind = KindServerError
	default:
		kind = KindUnexpectedStatus
	}
	var cause error
	if body != "" {
		cause = fmt.Errorf("status %d: %s", status, body)
	}
	return newError(kind, status, cause)
}

func systemPrompt(language string) string {
	if language == "en" {
		return "You are a specialized Islamic guide. Respond with JSON only."
	}
	return "أنت مرشد روحي إسلامي متخصص. أجب بتنسيق JSON فقط."
}
