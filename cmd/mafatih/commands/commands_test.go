// cmd/mafatih/commands/commands_test.go
package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mafatih/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root := NewRootCmd()
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

// offlineConfig points the catalog at a closed port so every call takes
// the fallback path.
func offlineConfig(t *testing.T) string {
	t.Setenv("APP_ENVIRONMENT", "production")
	t.Setenv("GROQ_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  name: mafatih
  environment: production
apis:
  islamhouse:
    base_url: http://127.0.0.1:1/v3/key
    timeout: 200
cache:
  enabled: false
logging:
  level: error
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// ==========================
// Local commands
// ==========================

func TestAnalyze(t *testing.T) {
	out, err := run(t, "analyze", "الحمد", "لله", "سعيد")
	require.NoError(t, err)

	var got analyzeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, models.SentimentPositive, got.Sentiment.Sentiment)
	assert.NotEmpty(t, got.EmotionalCategory)
}

func TestAnalyze_NoText(t *testing.T) {
	out, err := run(t, "analyze")
	require.NoError(t, err)

	var got analyzeOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, models.SentimentNeutral, got.Sentiment.Sentiment)
	assert.Equal(t, 0.3, got.Sentiment.Confidence)
}

func TestReminderTables(t *testing.T) {
	out, err := run(t, "reminders", "prayer-times")
	require.NoError(t, err)

	var times map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &times))
	assert.Equal(t, "05:30", times["fajr"])

	out, err = run(t, "reminders", "templates")
	require.NoError(t, err)
	var templates []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &templates))
	assert.Len(t, templates, 9)
}

func TestRegistry(t *testing.T) {
	out, err := run(t, "registry", "list")
	require.NoError(t, err)

	var got []activitySummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 4)
	assert.Equal(t, "ask-question", got[0].TaskType)

	out, err = run(t, "registry", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid: 4 activities")

	bad := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"activities":[{"id":"x"}]}`), 0o600))
	_, err = run(t, "registry", "validate", "--path", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no taskType")
}

// ==========================
// Argument validation
// ==========================

func TestArgumentErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"ask without question", []string{"ask"}, "requires at least 1 arg"},
		{"page with non-numeric book", []string{"catalog", "page", "abc", "1"}, "invalid book id"},
		{"page with zero page", []string{"catalog", "page", "12", "0"}, "invalid page"},
		{"toc without book", []string{"catalog", "toc"}, "accepts 1 arg"},
		{"list with bad sort", []string{"catalog", "list", "--sort", "random"}, "--sort must be one of"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// ==========================
// Commands that wire services
// ==========================

func TestCatalogList_Offline(t *testing.T) {
	cfg := offlineConfig(t)

	out, err := run(t, "--config", cfg, "catalog", "list", "--limit", "3")
	require.NoError(t, err)

	var got listOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.True(t, got.UsingFallback)
	assert.Len(t, got.Items, 3)
	assert.NotEmpty(t, got.Error)
	assert.Equal(t, 3, got.Stats.Total)
}

func TestAsk_Offline(t *testing.T) {
	cfg := offlineConfig(t)

	out, err := run(t, "--config", cfg, "ask", "ما", "حكم", "الصلاة")
	require.NoError(t, err)

	var got models.AnswerRecord
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.NotEmpty(t, got.AnswerText)
	assert.False(t, got.IsFromAI)
}

func TestConfigMissing(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "catalog", "diagnose")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
