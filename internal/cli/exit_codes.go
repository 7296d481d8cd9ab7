package cli

import "fmt"

// Exit codes for the agentup CLI. Distinct codes per failure kind let
// calling automation tell the causes apart.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitChildFailure indicates the launched entry program exited nonzero
	ExitChildFailure = 1

	// ExitInvalidArguments indicates invalid command arguments or config
	ExitInvalidArguments = 2

	// ExitMissingInterpreter indicates no Python interpreter was found
	ExitMissingInterpreter = 3

	// ExitMissingEnvironment indicates a launch before provisioning
	ExitMissingEnvironment = 4

	// ExitProvisionFailed indicates a provisioning step exited nonzero
	ExitProvisionFailed = 5
)

// exitError is a custom error type that carries an exit code.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// ExitCode returns the exit code from an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if e, ok := err.(*exitError); ok {
		return e.code
	}
	return ExitInvalidArguments
}
