// Package errors provides standardized error handling shared by the HTTP API
// and the Zeebe job workers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"

	ErrCodeGatewayMissingCredential ErrorCode = "GATEWAY_MISSING_CREDENTIAL"
	ErrCodeGatewayUnauthorized      ErrorCode = "GATEWAY_UNAUTHORIZED"
	ErrCodeGatewayRateLimited       ErrorCode = "GATEWAY_RATE_LIMITED"
	ErrCodeGatewayServerError       ErrorCode = "GATEWAY_SERVER_ERROR"
	ErrCodeGatewayMalformed         ErrorCode = "GATEWAY_MALFORMED_RESPONSE"
	ErrCodeGatewayNetwork           ErrorCode = "GATEWAY_NETWORK"
	ErrCodeGatewayUnexpectedStatus  ErrorCode = "GATEWAY_UNEXPECTED_STATUS"

	ErrCodeCatalogNotFound    ErrorCode = "CATALOG_NOT_FOUND"
	ErrCodeCatalogFetchFailed ErrorCode = "CATALOG_FETCH_FAILED"

	ErrCodeSearchQueryFailed             ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeElasticsearchConnectionFailed ErrorCode = "ELASTICSEARCH_CONNECTION_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"

	ErrCodeNotificationSendFailed      ErrorCode = "NOTIFICATION_SEND_FAILED"
	ErrCodeNotificationChannelDisabled ErrorCode = "NOTIFICATION_CHANNEL_DISABLED"
)

// StandardError is the canonical error shape returned to API callers and
// converted to BPMN errors for workers.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// BPMNError is the shape thrown to Zeebe.
type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

// ToErrorVariables returns a map suitable for setting Camunda job fail variables.
func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

// ==========================
// 2. Error Constructors
// ==========================

func newError(code ErrorCode, message, details string, retryable bool) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidInputError(details string) *StandardError {
	return newError(ErrCodeInvalidInput, "Invalid input", details, false)
}

func NewInternalError(err error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false)
}

// NewGatewayError wraps an LLM gateway failure under the given code.
func NewGatewayError(code ErrorCode, err error) *StandardError {
	retryable := code == ErrCodeGatewayRateLimited || code == ErrCodeGatewayServerError || code == ErrCodeGatewayNetwork
	return newError(code, "LLM gateway call failed", err.Error(), retryable)
}

func NewCatalogNotFoundError(resource string) *StandardError {
	return newError(ErrCodeCatalogNotFound, "Catalog resource not found", resource, false)
}

func NewCatalogFetchFailedError(err error) *StandardError {
	return newError(ErrCodeCatalogFetchFailed, "Catalog request failed", err.Error(), true)
}

func NewSearchQueryFailedError(backend string, err error) *StandardError {
	return newError(ErrCodeSearchQueryFailed, "Knowledge search failed",
		fmt.Sprintf("backend: %s, error: %s", backend, err.Error()), true)
}

func NewDatabaseInsertFailedError(table string, err error) *StandardError {
	return newError(ErrCodeDatabaseInsertFailed, "Database insert failed",
		fmt.Sprintf("table: %s, error: %s", table, err.Error()), true)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Reminder delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true)
}

func NewNotificationChannelDisabledError(channel string) *StandardError {
	return newError(ErrCodeNotificationChannelDisabled, "Reminder channel disabled",
		fmt.Sprintf("channel: %s", channel), false)
}

// ==========================
// 3. Conversion
// ==========================

// AsStandard extracts a *StandardError from err's chain.
func AsStandard(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeDatabaseInsertFailed,
		ErrCodeElasticsearchConnectionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeCatalogFetchFailed:
		return 3

	case ErrCodeGatewayServerError, ErrCodeGatewayNetwork:
		return 2

	case ErrCodeGatewayRateLimited:
		return 1

	default:
		return 0
	}
}

// ConvertToBPMNError converts a StandardError to a BPMNError for Camunda.
func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      string(stdErr.Code),
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "GATEWAY"):
		return "AI"
	case strings.Contains(codeStr, "CATALOG"):
		return "CATALOG"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY_EXECUTION"):
		return "DATABASE"
	case strings.Contains(codeStr, "SEARCH") || strings.Contains(codeStr, "ELASTICSEARCH"):
		return "SEARCH"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "INVALID"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}

// HTTPStatus maps a code to the status the API responds with.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeCatalogNotFound:
		return http.StatusNotFound
	case ErrCodeNotificationChannelDisabled:
		return http.StatusConflict
	case ErrCodeGatewayRateLimited:
		return http.StatusTooManyRequests
	case ErrCodeCatalogFetchFailed,
		ErrCodeGatewayServerError,
		ErrCodeGatewayNetwork,
		ErrCodeGatewayUnauthorized,
		ErrCodeGatewayMalformed,
		ErrCodeGatewayUnexpectedStatus,
		ErrCodeGatewayMissingCredential,
		ErrCodeNotificationSendFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
