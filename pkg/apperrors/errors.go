package apperrors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the application error carried through services up to the HTTP
// boundary. Every failure a handler reports is either an *AppError or gets
// wrapped into one by HandleError, so classification is total.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Domain   string      `json:"domain"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s:%s] %s (%v)", e.Domain, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Domain, e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, domain, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Domain:   domain,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

// Is wraps the standard errors.Is.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As wraps the standard errors.As.
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// --- Generic helpers ---

// InternalError wraps an unclassified failure. The response message stays
// generic; the wrapped error is only for the operational log.
func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "system", "Internal server error", http.StatusInternalServerError)
}

// ValidationError reports missing or invalid input fields.
func ValidationError(message string, details interface{}) *AppError {
	return New(CodeValidationFailed, "validation", message, http.StatusBadRequest).WithDetails(details)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, "auth", message, http.StatusUnauthorized)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, "request", message, http.StatusBadRequest)
}

// NewNotFoundError reports a resource as absent. Services use this both for
// genuinely missing rows and for insufficient membership, so the two are
// indistinguishable to the caller.
func NewNotFoundError(resource string) *AppError {
	return New(CodeNotFound, "resource", resource+" not found", http.StatusNotFound)
}

// NewRuleViolationError reports a domain-rule conflict with a rule-specific
// message, e.g. adding a duplicate member.
func NewRuleViolationError(domain, message string) *AppError {
	return New(CodeRuleViolation, domain, message, http.StatusBadRequest)
}
