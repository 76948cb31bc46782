// Package errors provides application-level error types and utilities.
// It classifies failures of a digest run: configuration, fetch, localization, template and send.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeConfiguration ErrorType = "configuration_error"
	ErrorTypeFetch         ErrorType = "fetch_error"
	ErrorTypeLocalization  ErrorType = "localization_error"
	ErrorTypeTemplate      ErrorType = "template_error"
	ErrorTypeSend          ErrorType = "send_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Details != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Details)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *AppError) Unwrap() error {
	return e.Err
}

func newAppError(t ErrorType, message string, cause error, details []string) *AppError {
	detail := ""
	if len(details) > 0 {
		detail = details[0]
	}
	return &AppError{
		Type:    t,
		Message: message,
		Details: detail,
		Err:     cause,
	}
}

// NewConfigurationError creates a new configuration error. Configuration errors abort a run
// before anything is fetched.
func NewConfigurationError(message string, cause error, details ...string) *AppError {
	return newAppError(ErrorTypeConfiguration, message, cause, details)
}

// NewFetchError creates a new fetch error
func NewFetchError(message string, cause error, details ...string) *AppError {
	return newAppError(ErrorTypeFetch, message, cause, details)
}

// NewLocalizationError creates a new localization error
func NewLocalizationError(message string, cause error, details ...string) *AppError {
	return newAppError(ErrorTypeLocalization, message, cause, details)
}

// NewTemplateError creates a new template error
func NewTemplateError(message string, cause error, details ...string) *AppError {
	return newAppError(ErrorTypeTemplate, message, cause, details)
}

// NewSendError creates a new send error
func NewSendError(message string, cause error, details ...string) *AppError {
	return newAppError(ErrorTypeSend, message, cause, details)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsConfigurationError checks if the error is a configuration error
func IsConfigurationError(err error) bool {
	return isType(err, ErrorTypeConfiguration)
}

// IsFetchError checks if the error is a fetch error
func IsFetchError(err error) bool {
	return isType(err, ErrorTypeFetch)
}

// IsLocalizationError checks if the error is a localization error
func IsLocalizationError(err error) bool {
	return isType(err, ErrorTypeLocalization)
}

// IsTemplateError checks if the error is a template error
func IsTemplateError(err error) bool {
	return isType(err, ErrorTypeTemplate)
}

// IsSendError checks if the error is a send error
func IsSendError(err error) bool {
	return isType(err, ErrorTypeSend)
}
