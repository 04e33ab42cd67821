// internal/gateway/errors.go
package gateway

import (
	"errors"
	"fmt"

	commonerrors "mafatih/internal/common/errors"
)

// Kind classifies a failed completion call.
type Kind string

const (
	KindMissingCredential Kind = "MISSING_CREDENTIAL"
	KindUnauthorized      Kind = "UNAUTHORIZED"
	KindRateLimited       Kind = "RATE_LIMITED"
	KindServerError       Kind = "SERVER_ERROR"
	KindMalformedResponse Kind = "MALFORMED_RESPONSE"
	KindNetwork           Kind = "NETWORK"
	KindUnexpectedStatus  Kind = "UNEXPECTED_STATUS"
)

var (
	ErrMissingCredential = errors.New("MISSING_CREDENTIAL")
	ErrUnauthorized      = errors.New("UNAUTHORIZED")
	ErrRateLimited       = errors.New("RATE_LIMITED")
	ErrServerError       = errors.New("SERVER_ERROR")
	ErrMalformedResponse = errors.New("MALFORMED_RESPONSE")
	ErrNetwork           = errors.New("NETWORK")
	ErrUnexpectedStatus  = errors.New("UNEXPECTED_STATUS")
)

var sentinels = map[Kind]error{
	KindMissingCredential: ErrMissingCredential,
	KindUnauthorized:      ErrUnauthorized,
	KindRateLimited:       ErrRateLimited,
	KindServerError:       ErrServerError,
	KindMalformedResponse: ErrMalformedResponse,
	KindNetwork:           ErrNetwork,
	KindUnexpectedStatus:  ErrUnexpectedStatus,
}

var messages = map[Kind]string{
	KindMissingCredential: "يرجى إعداد مفتاح Groq API في ملف .env",
	KindUnauthorized:      "مفتاح API غير صحيح أو منتهي الصلاحية",
	KindRateLimited:       "تم تجاوز حد الاستخدام المسموح",
	KindServerError:       "خطأ في خادم Groq",
	KindMalformedResponse: "تنسيق الاستجابة غير صحيح",
	KindNetwork:           "تعذر الاتصال بخدمة الذكاء الاصطناعي",
	KindUnexpectedStatus:  "خطأ غير متوقع",
}

var userNotes = map[Kind]string{
	KindMissingCredential: "مفتاح Groq API غير مُعَد. يرجى إعداده في ملف .env",
	KindUnauthorized:      "مفتاح API غير صحيح أو منتهي الصلاحية",
	KindRateLimited:       "تم تجاوز حد الاستخدام المسموح. حاول مرة أخرى بعد قليل",
	KindServerError:       "خطأ في خادم Groq. حاول مرة أخرى لاحقاً",
}

const unknownNote = "خطأ غير معروف في الذكاء الاصطناعي"

var errorCodes = map[Kind]commonerrors.ErrorCode{
	KindMissingCredential: commonerrors.ErrCodeGatewayMissingCredential,
	KindUnauthorized:      commonerrors.ErrCodeGatewayUnauthorized,
	KindRateLimited:       commonerrors.ErrCodeGatewayRateLimited,
	KindServerError:       commonerrors.ErrCodeGatewayServerError,
	KindMalformedResponse: commonerrors.ErrCodeGatewayMalformed,
	KindNetwork:           commonerrors.ErrCodeGatewayNetwork,
	KindUnexpectedStatus:  commonerrors.ErrCodeGatewayUnexpectedStatus,
}

// UserNote is the short Arabic explanation shown next to a fallback answer.
func (k Kind) UserNote() string {
	if note, ok := userNotes[k]; ok {
		return note
	}
	return unknownNote
}

// GatewayError is the only error type Complete returns.
type GatewayError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func newError(kind Kind, status int, cause error) *GatewayError {
	return &GatewayError{Kind: kind, Status: status, Message: messages[kind], Err: cause}
}

func (e *GatewayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is lets callers match a GatewayError against the package sentinels.
func (e *GatewayError) Is(target error) bool {
	return sentinels[e.Kind] == target
}

// ToStandard converts the error for API and worker responses.
func (e *GatewayError) ToStandard() *commonerrors.StandardError {
	code, ok := errorCodes[e.Kind]
	if !ok {
		code = commonerrors.ErrCodeGatewayUnexpectedStatus
	}
	stdErr := commonerrors.NewGatewayError(code, e)
	if e.Status != 0 {
		stdErr.WithMetadata("status", e.Status)
	}
	return stdErr
}

// KindOf extracts the kind from any error, or "" when err is not a
// GatewayError.
func KindOf(err error) Kind {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	return ""
}
