// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardError_Error(t *testing.T) {
	err := NewCatalogNotFoundError("book 42")
	assert.Equal(t, "StandardError[CATALOG_NOT_FOUND]: Catalog resource not found", err.Error())
	assert.False(t, err.Retryable)
	assert.False(t, err.Timestamp.IsZero())
}

func TestNewGatewayError_Retryable(t *testing.T) {
	cause := stderrors.New("boom")

	assert.True(t, NewGatewayError(ErrCodeGatewayNetwork, cause).Retryable)
	assert.True(t, NewGatewayError(ErrCodeGatewayRateLimited, cause).Retryable)
	assert.False(t, NewGatewayError(ErrCodeGatewayUnauthorized, cause).Retryable)
	assert.False(t, NewGatewayError(ErrCodeGatewayMissingCredential, cause).Retryable)
}

func TestConvertToBPMNError(t *testing.T) {
	stdErr := NewDatabaseInsertFailedError("reminder_log", stderrors.New("conn reset")).
		WithMetadata("reminderId", "r-1")

	bpmnErr := ConvertToBPMNError(stdErr)
	assert.Equal(t, "DATABASE_INSERT_FAILED", bpmnErr.Code)
	assert.Equal(t, 3, bpmnErr.Retries)

	vars := bpmnErr.ToErrorVariables()
	assert.Equal(t, "DATABASE_INSERT_FAILED", vars["errorCode"])
	assert.Equal(t, "DATABASE_INSERT_FAILED", vars["originalErrorCode"])
	assert.Equal(t, true, vars["retryable"])

	nonRetryable := ConvertToBPMNError(NewInvalidInputError("empty text"))
	assert.Equal(t, 0, nonRetryable.Retries)
}

func TestAsStandard_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("dispatch: %w", NewNotificationChannelDisabledError("sms"))

	stdErr, ok := AsStandard(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeNotificationChannelDisabled, stdErr.Code)

	_, ok = AsStandard(stderrors.New("plain"))
	assert.False(t, ok)
}

func TestGetErrorCategory(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{ErrCodeGatewayNetwork, "AI"},
		{ErrCodeCatalogFetchFailed, "CATALOG"},
		{ErrCodeDatabaseConnectionFailed, "DATABASE"},
		{ErrCodeQueryExecutionFailed, "DATABASE"},
		{ErrCodeSearchQueryFailed, "SEARCH"},
		{ErrCodeNotificationSendFailed, "NOTIFICATION"},
		{ErrCodeInvalidInput, "VALIDATION"},
		{ErrCodeInternal, "OTHER"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, GetErrorCategory(tt.code))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrCodeInvalidInput))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCodeCatalogNotFound))
	assert.Equal(t, http.StatusTooManyRequests, HTTPStatus(ErrCodeGatewayRateLimited))
	assert.Equal(t, http.StatusBadGateway, HTTPStatus(ErrCodeNotificationSendFailed))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(ErrCodeInternal))
	assert.True(t, IsRetryableErrorCode(ErrCodeCatalogFetchFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeCatalogNotFound))
}
