// Package runner executes child processes behind a small interface so that
// provisioning and launching can be tested without spawning real processes.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// Command describes a single child process invocation.
type Command struct {
	// Name is the program to run (absolute path or PATH-resolvable name).
	Name string

	// Args are the program arguments, not including the program name.
	Args []string

	// Dir is the working directory. Empty inherits the parent's.
	Dir string

	// Env is the complete child environment. Nil inherits the parent's.
	Env []string

	// Stdin attaches the child's standard input. Nil leaves it closed.
	Stdin io.Reader

	// Stdout and Stderr attach the child's output streams. Nil streams are
	// captured into the Result instead.
	Stdout io.Writer
	Stderr io.Writer

	// Timeout bounds execution when greater than zero.
	Timeout time.Duration
}

// Result holds the outcome of a completed child process.
type Result struct {
	// ExitCode is the child's exit status (0 = success).
	ExitCode int

	// Stdout and Stderr hold captured output. Empty when the corresponding
	// stream was attached to a writer in the Command.
	Stdout string
	Stderr string

	// Duration is how long the child ran.
	Duration time.Duration
}

// Runner abstracts process execution and PATH lookup.
type Runner interface {
	// Run executes the command and waits for it to finish. A nonzero child
	// exit status is reported via Result.ExitCode, not as an error; errors
	// are reserved for failures to start or wait on the process.
	Run(ctx context.Context, cmd Command) (*Result, error)

	// LookPath reports the absolute path of an executable, or an error if
	// it is not on PATH.
	LookPath(name string) (string, error)
}

// ExecRunner runs commands with os/exec. The zero value is ready to use.
type ExecRunner struct{}

// LookPath resolves name against the system PATH.
func (ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command, honoring the context and optional timeout.
func (ExecRunner) Run(ctx context.Context, spec Command) (*Result, error) {
	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.Command(spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = spec.Env
	cmd.Stdin = spec.Stdin

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = spec.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = &stdoutBuf
	}
	cmd.Stderr = spec.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = &stderrBuf
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", spec.Name, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	start := time.Now()
	var err error
	select {
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done // wait for the Wait goroutine to exit
		return nil, fmt.Errorf("running %s: %w", spec.Name, ctx.Err())
	case err = <-done:
	}

	result := &Result{
		Duration: time.Since(start),
		Stdout:   stdoutBuf.String(),
		Stderr:   stderrBuf.String(),
	}

	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("running %s: %w", spec.Name, err)
		}
		result.ExitCode = exitErr.ExitCode()
	}
	return result, nil
}
