package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{"invalid subgroup", ErrTypeInvalidSubgroup, "INVALID_SUBGROUP"},
		{"unsupported subgroup size", ErrTypeUnsupportedSubgroupSize, "UNSUPPORTED_SUBGROUP_SIZE"},
		{"invalid spec limits", ErrTypeInvalidSpecLimits, "INVALID_SPEC_LIMITS"},
		{"missing parameter", ErrTypeMissingParameter, "MISSING_PARAMETER"},
		{"unknown standard", ErrTypeUnknownStandard, "UNKNOWN_STANDARD"},
		{"parsing", ErrTypeParsing, "PARSING"},
		{"storage", ErrTypeStorage, "STORAGE"},
		{"validation", ErrTypeValidation, "VALIDATION"},
		{"config", ErrTypeConfig, "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "without cause",
			err:      NewAppError(ErrTypeValidation, "bad input", nil),
			expected: "[VALIDATION] bad input",
		},
		{
			name:     "with cause",
			err:      NewAppError(ErrTypeStorage, "write results", errors.New("disk full")),
			expected: "[STORAGE] write results: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_IsMatchesSentinelByType(t *testing.T) {
	err := NewInvalidSubgroupError("DCO", "10 observations not divisible by subgroup size 3")

	assert.True(t, errors.Is(err, ErrInvalidSubgroup))
	assert.False(t, errors.Is(err, ErrUnsupportedSubgroupSize))

	wrapped := fmt.Errorf("subgroup statistics: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInvalidSubgroup))

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, "DCO", appErr.Context["parameter"])
}

func TestAppError_NonSentinelsDoNotMatchEachOther(t *testing.T) {
	a := NewMissingParameterError("MES", "01-03-2024")
	b := NewMissingParameterError("DCO", "02-03-2024")

	assert.False(t, errors.Is(a, b))
	assert.True(t, errors.Is(a, ErrMissingParameter))
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := NewParsingError("read table", cause)

	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
	assert.True(t, errors.Is(err, ErrParsing))
}

func TestDomainErrorMessagesNameTheOffender(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		contains []string
	}{
		{
			name:     "invalid subgroup names parameter",
			err:      NewInvalidSubgroupError("pH", "subgroup size is not set"),
			contains: []string{`"pH"`, "subgroup size is not set"},
		},
		{
			name:     "unsupported size names parameter and size",
			err:      NewUnsupportedSubgroupSizeError("DBO5", 12, 2, 10),
			contains: []string{`"DBO5"`, "12", "2-10"},
		},
		{
			name:     "spec limits names parameter",
			err:      NewInvalidSpecLimitsError("MES", "USL 5 must be greater than LSL 15"),
			contains: []string{`"MES"`, "USL 5"},
		},
		{
			name:     "missing parameter names time point",
			err:      NewMissingParameterError("DCO", "15-01-2024"),
			contains: []string{"15-01-2024", `"DCO"`},
		},
		{
			name:     "unknown standard default message",
			err:      NewUnknownStandardError("NO3", ""),
			contains: []string{`"NO3"`, "no registered standard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				assert.Contains(t, msg, want)
			}
		})
	}
}

func TestAppError_LogAttrsSorted(t *testing.T) {
	err := NewMissingParameterError("DCO", "15-01-2024")

	attrs := err.LogAttrs()
	assert.Equal(t, []any{
		"error_type", "MISSING_PARAMETER",
		"parameter", "DCO",
		"time_point", "15-01-2024",
	}, attrs)
}

func TestAppError_WithContextOnNilMap(t *testing.T) {
	err := &AppError{Type: ErrTypeConfig, Message: "x"}
	err.WithContext("file", "wq.yaml")

	assert.Equal(t, "wq.yaml", err.Context["file"])
}
