// Package errors defines the classified failures surfaced to API callers.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure for the HTTP boundary.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindBadRequest
	KindUnauthorized
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindBadRequest:
		return "bad_request"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// StatusCode maps a kind to its HTTP status.
func (k Kind) StatusCode() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is one failed input rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError is a failure whose kind and message may be shown to the caller.
type DomainError struct {
	Kind    Kind
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error { return e.Err }

// Is matches another DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// Status is "fail" for client errors and "error" otherwise.
func (e *DomainError) Status() string {
	if e.Kind == KindInternal {
		return "error"
	}
	return "fail"
}

func NotFound(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: "NOT_FOUND", Message: message}
}

func BadRequest(message string) *DomainError {
	return &DomainError{Kind: KindBadRequest, Code: "BAD_REQUEST", Message: message}
}

func Unauthorized(message string) *DomainError {
	return &DomainError{Kind: KindUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

func Forbidden(message string) *DomainError {
	return &DomainError{Kind: KindForbidden, Code: "FORBIDDEN", Message: message}
}

// Internal wraps err; the message is only shown in development.
func Internal(message string, err error) *DomainError {
	return &DomainError{Kind: KindInternal, Code: "INTERNAL", Message: message, Err: err}
}

// Validation builds a BadRequest listing every failed field.
func Validation(fields []FieldError) *DomainError {
	return &DomainError{Kind: KindBadRequest, Code: "VALIDATION_FAILED", Message: "Validation failed", Fields: fields}
}

// As extracts the DomainError in err's chain, if any.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// KindOf returns the kind of err, KindInternal when unclassified.
func KindOf(err error) Kind {
	if de, ok := As(err); ok {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrUserNotFound    = &DomainError{Kind: KindNotFound, Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrOTPNotRequested = &DomainError{Kind: KindNotFound, Code: "OTP_NOT_FOUND", Message: "OTP not found. Please request a new OTP."}
	ErrInvalidOTP      = &DomainError{Kind: KindBadRequest, Code: "INVALID_OTP", Message: "Invalid OTP"}
	ErrSessionNotFound = &DomainError{Kind: KindNotFound, Code: "SESSION_NOT_FOUND", Message: "User session not found"}
	ErrPhoneInUse      = &DomainError{Kind: KindBadRequest, Code: "PHONE_IN_USE", Message: "Phone number is already registered"}

	ErrOtpDataNotFound   = &DomainError{Kind: KindNotFound, Code: "OTP_DATA_NOT_FOUND", Message: "OTP data not found"}
	ErrTempPhoneNotFound = &DomainError{Kind: KindNotFound, Code: "TEMP_PHONE_NOT_FOUND", Message: "Temporary phone not found"}
	ErrOtpDataExists     = &DomainError{Kind: KindBadRequest, Code: "OTP_DATA_EXISTS", Message: "OTP data already exists for this user"}
	ErrTempPhoneExists   = &DomainError{Kind: KindBadRequest, Code: "TEMP_PHONE_EXISTS", Message: "A phone change is already pending for this user"}
	ErrInvalidBody       = &DomainError{Kind: KindBadRequest, Code: "INVALID_BODY", Message: "Invalid request body"}
	ErrInvalidID         = &DomainError{Kind: KindBadRequest, Code: "INVALID_ID", Message: "Invalid ID"}

	ErrMissingAuthHeader = &DomainError{Kind: KindUnauthorized, Code: "MISSING_AUTH", Message: "Authorization header is missing"}
	ErrInvalidToken      = &DomainError{Kind: KindUnauthorized, Code: "INVALID_TOKEN", Message: "Invalid or expired token"}
	ErrTokenExpired      = &DomainError{Kind: KindUnauthorized, Code: "TOKEN_EXPIRED", Message: "Token expired"}
	ErrNotAuthenticated  = &DomainError{Kind: KindUnauthorized, Code: "NOT_AUTHENTICATED", Message: "User not authenticated"}
)
