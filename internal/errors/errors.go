// Package errors defines the failure vocabulary shared by the repository,
// the generic handlers and the REST layer.
//
// Every failure surfaced to a caller is a *ServiceError. Each one carries an
// HTTP status, a stable message identifier and the system/user actions that go
// into the response envelope, and unwraps to one of the sentinel errors below
// so callers can branch with errors.Is.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrUnavailable   = errors.New("unavailable")
	ErrRateLimited   = errors.New("rate limited")
	ErrInternal      = errors.New("internal error")
)

// Code classifies a ServiceError.
type Code string

const (
	CodeInvalidParameter  Code = "INVALID_PARAMETER"
	CodeNotFound          Code = "NOT_FOUND"
	CodeAlreadyExists     Code = "ALREADY_EXISTS"
	CodeUserNotAuthorized Code = "USER_NOT_AUTHORIZED"
	CodeUnauthorized      Code = "UNAUTHORIZED"
	CodeInvalidToken      Code = "INVALID_TOKEN"
	CodeServerNotActive   Code = "SERVER_NOT_ACTIVE"
	CodePropertyServer    Code = "PROPERTY_SERVER_ERROR"
	CodeRateLimited       Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal          Code = "INTERNAL_ERROR"
)

// Kind is the coarse failure family reported to REST callers.
type Kind string

const (
	KindInvalidParameter  Kind = "InvalidParameter"
	KindUserNotAuthorized Kind = "UserNotAuthorized"
	KindPropertyServer    Kind = "PropertyServer"
)

const messagePrefix = "OMAS-IT-INFRASTRUCTURE-"

// ServiceError is a classified failure with everything needed to build a
// response envelope.
type ServiceError struct {
	Code         Code
	Message      string
	MessageID    string
	HTTPStatus   int
	SystemAction string
	UserAction   string
	Details      map[string]interface{}
	Err          error

	sentinel error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *ServiceError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.sentinel != nil {
		out = append(out, e.sentinel)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// Kind maps the code onto its failure family.
func (e *ServiceError) Kind() Kind {
	switch e.Code {
	case CodeUserNotAuthorized, CodeUnauthorized, CodeInvalidToken:
		return KindUserNotAuthorized
	case CodeInvalidParameter, CodeNotFound, CodeAlreadyExists, CodeServerNotActive:
		return KindInvalidParameter
	default:
		return KindPropertyServer
	}
}

// WithDetails attaches a key/value pair reported as an exception property.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// DetailKeys returns the detail keys in sorted order.
func (e *ServiceError) DetailKeys() []string {
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newError(code Code, status int, id string, sentinel error, msg, system, user string) *ServiceError {
	return &ServiceError{
		Code:         code,
		Message:      msg,
		MessageID:    messagePrefix + id,
		HTTPStatus:   status,
		SystemAction: system,
		UserAction:   user,
		sentinel:     sentinel,
	}
}

// NullParameter reports a missing mandatory parameter.
func NullParameter(param, operation string) *ServiceError {
	return newError(CodeInvalidParameter, http.StatusBadRequest, "400-001", ErrInvalidInput,
		fmt.Sprintf("the %s parameter passed to the %s operation is empty", param, operation),
		"The system is unable to process the request.",
		"Supply a value for the parameter and retry the request.",
	).WithDetails("parameterName", param)
}

// InvalidParameter reports a parameter whose value cannot be used.
func InvalidParameter(param, reason string) *ServiceError {
	return newError(CodeInvalidParameter, http.StatusBadRequest, "400-002", ErrInvalidInput,
		fmt.Sprintf("the %s parameter is invalid: %s", param, reason),
		"The system is unable to process the request.",
		"Correct the parameter value and retry the request.",
	).WithDetails("parameterName", param)
}

// WrongType reports an element whose type does not match the expected one.
func WrongType(guid, actualType, expectedType string) *ServiceError {
	return newError(CodeInvalidParameter, http.StatusBadRequest, "400-003", ErrInvalidInput,
		fmt.Sprintf("element %s is of type %s which is not a %s", guid, actualType, expectedType),
		"The system is unable to process the request because the element is of the wrong type.",
		"Check the unique identifier of the element and retry the request.",
	).WithDetails("guid", guid).WithDetails("typeName", actualType)
}

// NotFound reports a missing element.
func NotFound(kind, id string) *ServiceError {
	msg := kind + " not found"
	if id != "" {
		msg = fmt.Sprintf("%s %q not found", kind, id)
	}
	return newError(CodeNotFound, http.StatusNotFound, "404-001", ErrNotFound, msg,
		"The system is unable to locate the requested element.",
		"Check the unique identifier and retry the request.",
	).WithDetails("guid", id)
}

// AlreadyExists reports an attempt to create a duplicate element.
func AlreadyExists(kind, id string) *ServiceError {
	return newError(CodeAlreadyExists, http.StatusConflict, "409-001", ErrAlreadyExists,
		fmt.Sprintf("%s %q already exists", kind, id),
		"The system rejected the request to avoid a duplicate element.",
		"Update the existing element or choose a different identifier.",
	).WithDetails("guid", id)
}

// UserNotAuthorized reports a caller that may not perform the operation.
func UserNotAuthorized(userID, operation string) *ServiceError {
	return newError(CodeUserNotAuthorized, http.StatusForbidden, "403-001", ErrForbidden,
		fmt.Sprintf("user %s is not authorized to issue the %s request", userID, operation),
		"The request is rejected.",
		"Request access from the server administrator.",
	).WithDetails("userId", userID)
}

// ServerNotActive reports a request to a server that is not running in this process.
func ServerNotActive(serverName string) *ServiceError {
	return newError(CodeServerNotActive, http.StatusNotFound, "404-002", ErrUnavailable,
		fmt.Sprintf("the IT infrastructure service is not active on server %s", serverName),
		"The request is rejected because the server is not running this service.",
		"Start the service on the named server or correct the server name.",
	).WithDetails("serverName", serverName)
}

// PropertyServer reports a repository failure while running an operation.
func PropertyServer(operation string, err error) *ServiceError {
	se := newError(CodePropertyServer, http.StatusInternalServerError, "500-001", ErrInternal,
		fmt.Sprintf("the metadata repository failed during %s", operation),
		"The system was unable to complete the request.",
		"Review the server log for the underlying cause.",
	)
	se.Err = err
	return se
}

// Unauthorized reports a missing or malformed credential.
func Unauthorized(message string) *ServiceError {
	if message == "" {
		message = "authentication required"
	}
	return newError(CodeUnauthorized, http.StatusUnauthorized, "401-001", ErrUnauthorized, message,
		"The request is rejected.",
		"Supply a valid bearer token.",
	)
}

// InvalidToken reports a credential that failed validation.
func InvalidToken(err error) *ServiceError {
	se := newError(CodeInvalidToken, http.StatusUnauthorized, "401-002", ErrUnauthorized, "invalid or expired token",
		"The request is rejected.",
		"Obtain a fresh token and retry.",
	)
	se.Err = err
	return se
}

// RateLimitExceeded reports a throttled caller.
func RateLimitExceeded(limit int, window string) *ServiceError {
	return newError(CodeRateLimited, http.StatusTooManyRequests, "429-001", ErrRateLimited,
		fmt.Sprintf("rate limit of %d requests per %s exceeded", limit, window),
		"The request is rejected.",
		"Slow down and retry later.",
	).WithDetails("limit", limit).WithDetails("window", window)
}

// Internal reports an unexpected failure.
func Internal(message string, err error) *ServiceError {
	se := newError(CodeInternal, http.StatusInternalServerError, "500-002", ErrInternal, message,
		"The system was unable to complete the request.",
		"Review the server log for the underlying cause.",
	)
	se.Err = err
	return se
}

// GetServiceError returns the ServiceError in err's chain, if any.
func GetServiceError(err error) *ServiceError {
	var se *ServiceError
	if errors.As(err, &se) {
		return se
	}
	return nil
}

// FromError classifies an arbitrary error. Plain sentinel errors are mapped to
// their ServiceError counterparts and anything else becomes a property server
// failure for the named operation.
func FromError(operation string, err error) *ServiceError {
	if err == nil {
		return nil
	}
	if se := GetServiceError(err); se != nil {
		return se
	}
	switch {
	case errors.Is(err, ErrNotFound):
		se := NotFound("element", "")
		se.Err = err
		return se
	case errors.Is(err, ErrAlreadyExists):
		se := AlreadyExists("element", "")
		se.Err = err
		return se
	case errors.Is(err, ErrInvalidInput):
		return InvalidParameter("request", strings.TrimSpace(err.Error()))
	}
	return PropertyServer(operation, err)
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err is a duplicate-element failure.
func IsConflict(err error) bool { return errors.Is(err, ErrAlreadyExists) }

// IsInvalid reports whether err is a parameter failure.
func IsInvalid(err error) bool { return errors.Is(err, ErrInvalidInput) }

// IsForbidden reports whether err is an authorization failure.
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

// Is and As re-export the standard helpers so callers need a single import.
func Is(err, target error) bool { return errors.Is(err, target) }

// As is errors.As.
func As(err error, target interface{}) bool { return errors.As(err, target) }

// New is errors.New.
func New(text string) error { return errors.New(text) }

// Join is errors.Join.
func Join(errs ...error) error { return errors.Join(errs...) }
