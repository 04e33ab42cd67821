// internal/workers/resolution/ask-question/handler_test.go
package askquestion

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mafatih/internal/common/errors"
	"mafatih/internal/models"
)

// ==========================
// Test Logger Implementation
// ==========================

type TestLogger struct {
	t      *testing.T
	fields map[string]interface{}
}

func NewTestLogger(t *testing.T) *TestLogger {
	return &TestLogger{t: t, fields: make(map[string]interface{})}
}

func (l *TestLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO: %s %v %v", msg, l.fields, fields)
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v %v", msg, l.fields, fields)
}

func (l *TestLogger) Error(msg string, fields map[string]interface{}) {
	l.t.Logf("ERROR: %s %v %v", msg, l.fields, fields)
}

func (l *TestLogger) With(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{t: l.t, fields: merged}
}

// ==========================
// Mock Resolver
// ==========================

type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveQuestion(ctx context.Context, query models.Query) models.AnswerRecord {
	args := m.Called(ctx, query)
	return args.Get(0).(models.AnswerRecord)
}

func createMockJob(key int64, variables map[string]interface{}) entities.Job {
	variablesJSON, _ := json.Marshal(variables)
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                key,
		Type:               TaskType,
		ProcessInstanceKey: key * 10,
		BpmnProcessId:      "mafatih-question",
		ElementId:          "Activity_AskQuestion",
		CustomHeaders:      "{}",
		Worker:             "test-worker",
		Retries:            3,
		Variables:          string(variablesJSON),
	}}
}

func newTestHandler(t *testing.T, resolver Resolver) *Handler {
	h, err := NewHandler(DefaultConfig(), resolver, NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Tests
// ==========================

func TestExecute_ForwardsQueryAndFlattensRecord(t *testing.T) {
	resolver := new(MockResolver)
	resolver.On("ResolveQuestion", mock.Anything, models.Query{
		Text:      "ما هي أركان الإسلام؟",
		Language:  "ar",
		SessionID: "s-1",
	}).Return(models.AnswerRecord{
		ID:         "a-1",
		AnswerText: "أركان الإسلام خمسة",
		Category:   "العقيدة",
		Confidence: 0.9,
		Tier:       models.TierStaticKB,
	})

	h := newTestHandler(t, resolver)
	out, err := h.Execute(context.Background(), &Input{
		Question:  "ما هي أركان الإسلام؟",
		Language:  "ar",
		SessionID: "s-1",
	})

	require.NoError(t, err)
	assert.Equal(t, models.TierStaticKB, out.Tier)
	assert.Equal(t, 0.9, out.Confidence)
	assert.False(t, out.IsFromAI)
	assert.Equal(t, "العقيدة", out.Category)
	assert.Equal(t, "a-1", out.Answer.ID)
	resolver.AssertExpectations(t)
}

func TestExecute_NilInput(t *testing.T) {
	h := newTestHandler(t, new(MockResolver))

	out, err := h.Execute(context.Background(), nil)
	assert.Nil(t, out)
	stdErr, ok := errors.AsStandard(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
}

func TestOutput_VariableNames(t *testing.T) {
	data, err := json.Marshal(Output{Tier: models.TierLLM, Confidence: 0.85, IsFromAI: true})
	require.NoError(t, err)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &vars))
	assert.Equal(t, "llm", vars["answerTier"])
	assert.Equal(t, 0.85, vars["answerConfidence"])
	assert.Equal(t, true, vars["answerIsFromAI"])
	assert.Contains(t, vars, "answer")
}

func TestParseInput(t *testing.T) {
	h := newTestHandler(t, new(MockResolver))

	tests := []struct {
		name      string
		variables map[string]interface{}
		wantErr   bool
		want      *Input
	}{
		{
			name:      "valid",
			variables: map[string]interface{}{"question": "ما حكم الصيام؟", "sessionId": "abc"},
			want:      &Input{Question: "ما حكم الصيام؟", SessionID: "abc"},
		},
		{
			name:      "empty question is accepted",
			variables: map[string]interface{}{"question": ""},
			want:      &Input{},
		},
		{
			name:      "missing question",
			variables: map[string]interface{}{"language": "ar"},
			wantErr:   true,
		},
		{
			name:      "question of wrong type",
			variables: map[string]interface{}{"question": 42},
			wantErr:   true,
		},
		{
			name:      "question too long",
			variables: map[string]interface{}{"question": strings.Repeat("س", 4001)},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := h.parseInput(createMockJob(1, tt.variables))
			if tt.wantErr {
				stdErr, ok := errors.AsStandard(err)
				require.True(t, ok)
				assert.Equal(t, errors.ErrCodeInvalidInput, stdErr.Code)
				assert.False(t, stdErr.Retryable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, input)
		})
	}
}

func TestNewHandler_Validation(t *testing.T) {
	_, err := NewHandler(&Config{MaxJobsActive: 1, MaxTextLength: 10}, new(MockResolver), NewTestLogger(t))
	assert.ErrorContains(t, err, "timeout must be positive")

	_, err = NewHandler(DefaultConfig(), nil, NewTestLogger(t))
	assert.ErrorContains(t, err, "requires a resolver")

	h, err := NewHandler(nil, new(MockResolver), NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, h.config.Timeout)
}
