// Package apperrors provides the structured errors returned by the eyeosee
// tooling.
package apperrors

import (
	"errors"
	"fmt"
)

// Error codes, CATEGORY.SPECIFIC.
const (
	ErrConfigLoad     = "CONFIG.LOAD_FAILED"
	ErrConfigValidate = "CONFIG.VALIDATION_FAILED"

	ErrAnalyzeGlob = "ANALYZE.GLOB_FAILED"
	ErrAnalyzeMod  = "ANALYZE.MODULE_NOT_FOUND"

	ErrGeneratePlaceholder = "GENERATE.PLACEHOLDER_FAILED"
	ErrGenerateRender      = "GENERATE.RENDER_FAILED"
	ErrGenerateFormat      = "GENERATE.FORMAT_FAILED"
	ErrGenerateWrite       = "GENERATE.WRITE_FAILED"

	ErrWatchSetup = "WATCH.SETUP_FAILED"
)

// AppError is a coded application error. It wraps Cause for errors.Is/As.
//
//	return apperrors.NewAppError(apperrors.ErrGenerateWrite, "cannot write container file", err)
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns Cause.
func (e *AppError) Unwrap() error { return e.Cause }

// NewAppError creates an AppError.
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// HasCode reports whether err wraps an AppError with code.
func HasCode(err error, code string) bool {
	var ae *AppError
	if !errors.As(err, &ae) {
		return false
	}
	return ae.Code == code
}
