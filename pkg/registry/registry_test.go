// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)
	require.Len(t, reg.Activities, 4)

	for _, taskType := range []string{"ask-question", "interpret-dream", "recommend-verse", "send-reminder"} {
		a, ok := reg.Lookup(taskType)
		require.True(t, ok, taskType)
		assert.Equal(t, "implemented", a.ImplementationStatus)
		assert.NotEmpty(t, a.InputSchema)
		assert.NotEmpty(t, a.OutputSchema)

		timeout, err := a.TimeoutDuration()
		require.NoError(t, err)
		assert.Positive(t, timeout)
	}

	sr, _ := reg.Lookup("send-reminder")
	assert.Equal(t, 3, sr.Retries)
	assert.Contains(t, sr.ErrorCodes, "NOTIFICATION_SEND_FAILED")

	_, ok := reg.Lookup("email-send")
	assert.False(t, ok)
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"valid", `{"version":"1","activities":[{"id":"a","taskType":"ask-question"}]}`, ""},
		{"missing task type", `{"activities":[{"id":"a"}]}`, "has no taskType"},
		{"duplicate task type", `{"activities":[{"taskType":"x"},{"taskType":"x"}]}`, "duplicate taskType"},
		{"malformed", `{"activities":`, "decode activity registry"},
		{"bad timeout", `{"activities":[{"taskType":"x","timeout":"soon"}]}`, "invalid timeout"},
		{"negative retries", `{"activities":[{"taskType":"x","retries":-1}]}`, "negative retries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			reg, err := LoadRegistry(path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, reg.Activities, 1)
		})
	}

	_, err := LoadRegistry(filepath.Join(dir, "absent.json"))
	assert.Error(t, err)
}
