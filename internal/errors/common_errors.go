package errors

import (
	"fmt"
	"sort"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInvalidSubgroup         ErrorType = "INVALID_SUBGROUP"
	ErrTypeUnsupportedSubgroupSize ErrorType = "UNSUPPORTED_SUBGROUP_SIZE"
	ErrTypeInvalidSpecLimits       ErrorType = "INVALID_SPEC_LIMITS"
	ErrTypeMissingParameter        ErrorType = "MISSING_PARAMETER"
	ErrTypeUnknownStandard         ErrorType = "UNKNOWN_STANDARD"
	ErrTypeParsing                 ErrorType = "PARSING"
	ErrTypeStorage                 ErrorType = "STORAGE"
	ErrTypeValidation              ErrorType = "VALIDATION"
	ErrTypeConfig                  ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a bare sentinel of the same type.
// Sentinels carry no message, so any AppError of that type matches them.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Message == "" && t.Type == e.Type
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// LogAttrs flattens the error context into sorted key/value pairs for slog.
func (e *AppError) LogAttrs() []any {
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	args := make([]any, 0, len(keys)*2+2)
	args = append(args, "error_type", string(e.Type))
	for _, k := range keys {
		args = append(args, k, e.Context[k])
	}
	return args
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// Sentinels for errors.Is checks
var (
	ErrInvalidSubgroup         = &AppError{Type: ErrTypeInvalidSubgroup}
	ErrUnsupportedSubgroupSize = &AppError{Type: ErrTypeUnsupportedSubgroupSize}
	ErrInvalidSpecLimits       = &AppError{Type: ErrTypeInvalidSpecLimits}
	ErrMissingParameter        = &AppError{Type: ErrTypeMissingParameter}
	ErrUnknownStandard         = &AppError{Type: ErrTypeUnknownStandard}
	ErrParsing                 = &AppError{Type: ErrTypeParsing}
	ErrStorage                 = &AppError{Type: ErrTypeStorage}
	ErrValidation              = &AppError{Type: ErrTypeValidation}
	ErrConfig                  = &AppError{Type: ErrTypeConfig}
)

// Helper functions for the statistical engine

// NewInvalidSubgroupError reports a malformed or absent subgroup partition of a parameter.
func NewInvalidSubgroupError(parameter, detail string) *AppError {
	return NewAppError(ErrTypeInvalidSubgroup,
		fmt.Sprintf("parameter %q: %s", parameter, detail), nil).
		WithContext("parameter", parameter)
}

// NewUnsupportedSubgroupSizeError reports a subgroup size outside the constants table.
func NewUnsupportedSubgroupSizeError(parameter string, size, min, max int) *AppError {
	return NewAppError(ErrTypeUnsupportedSubgroupSize,
		fmt.Sprintf("parameter %q: subgroup size %d not supported (supported sizes: %d-%d)", parameter, size, min, max), nil).
		WithContext("parameter", parameter).
		WithContext("subgroup_size", size)
}

// NewInvalidSpecLimitsError reports unusable USL/LSL for a parameter.
func NewInvalidSpecLimitsError(parameter, detail string) *AppError {
	return NewAppError(ErrTypeInvalidSpecLimits,
		fmt.Sprintf("parameter %q: %s", parameter, detail), nil).
		WithContext("parameter", parameter)
}

// NewMissingParameterError reports a time point that lacks a configured parameter.
func NewMissingParameterError(parameter, point string) *AppError {
	return NewAppError(ErrTypeMissingParameter,
		fmt.Sprintf("time point %s: missing value for parameter %q", point, parameter), nil).
		WithContext("parameter", parameter).
		WithContext("time_point", point)
}

// NewUnknownStandardError reports a parameter with no registered standard.
func NewUnknownStandardError(parameter, detail string) *AppError {
	msg := fmt.Sprintf("parameter %q has no registered standard", parameter)
	if detail != "" {
		msg = fmt.Sprintf("parameter %q: %s", parameter, detail)
	}
	return NewAppError(ErrTypeUnknownStandard, msg, nil).
		WithContext("parameter", parameter)
}

// Helper functions for common error types

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
