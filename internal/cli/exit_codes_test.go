package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	tests := map[string]struct {
		err      error
		expected int
	}{
		"nil error":            {err: nil, expected: ExitSuccess},
		"child failure":        {err: NewExitError(ExitChildFailure), expected: ExitChildFailure},
		"missing interpreter":  {err: NewExitError(ExitMissingInterpreter), expected: ExitMissingInterpreter},
		"missing environment":  {err: NewExitError(ExitMissingEnvironment), expected: ExitMissingEnvironment},
		"provision failed":     {err: NewExitError(ExitProvisionFailed), expected: ExitProvisionFailed},
		"plain error defaults": {err: errors.New("boom"), expected: ExitInvalidArguments},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExitCode(tt.err))
		})
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := NewExitError(ExitMissingEnvironment)
	assert.Equal(t, "exit code 4", err.Error())
}

func TestExitCodesAreDistinct(t *testing.T) {
	codes := []int{
		ExitSuccess,
		ExitChildFailure,
		ExitInvalidArguments,
		ExitMissingInterpreter,
		ExitMissingEnvironment,
		ExitProvisionFailed,
	}

	seen := make(map[int]bool)
	for _, code := range codes {
		assert.False(t, seen[code], "exit code %d is duplicated", code)
		seen[code] = true
	}
}
