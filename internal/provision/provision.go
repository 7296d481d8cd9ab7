// Package provision brings the Python environment from absent to ready:
// create the virtual environment, install the dependency manifest, and
// scaffold the secrets file. Every step is idempotent so re-running install
// on a provisioned checkout is safe.
package provision

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/pyenv"
	"github.com/hctsai/agentup/internal/runner"
)

// PlaceholderValue is written as the API key value when scaffolding the
// secrets file. The user is expected to replace it.
const PlaceholderValue = "your-api-key-here"

// StepError reports a provisioning step that ran but did not succeed.
type StepError struct {
	// Step names the failed step ("create venv", "pip install").
	Step string
	// ExitCode is the failing command's exit status.
	ExitCode int
	// Stderr holds captured diagnostics, possibly empty when output was
	// streamed to the terminal.
	Stderr string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed with exit code %d", e.Step, e.ExitCode)
}

// Outcome summarizes what Install changed.
type Outcome struct {
	// Interpreter is the base interpreter used for provisioning.
	Interpreter string
	// VenvCreated reports whether the marker directory was created on this
	// run (false when it already existed).
	VenvCreated bool
	// SecretsCreated reports whether the secrets file was scaffolded on
	// this run (false when it already existed, which leaves it untouched).
	SecretsCreated bool
}

// Provisioner performs the setup sequence. Runner is the only hard
// dependency; Out defaults to os.Stdout.
type Provisioner struct {
	Config *config.Configuration
	Runner runner.Runner
	// Out receives child process output from the venv and pip steps.
	Out io.Writer
}

// NewProvisioner constructs a Provisioner with default output wiring.
func NewProvisioner(cfg *config.Configuration, r runner.Runner) *Provisioner {
	return &Provisioner{Config: cfg, Runner: r, Out: os.Stdout}
}

// Install runs the full provisioning sequence. It fails fast on a missing
// interpreter (pyenv.ErrInterpreterNotFound) and on a nonzero exit from the
// venv or pip steps (StepError). A failed pip install aborts before the
// secrets scaffold so the error is not masked by a success message.
func (p *Provisioner) Install(ctx context.Context) (*Outcome, error) {
	interp, err := pyenv.FindInterpreter(p.Runner, p.Config.PythonCmd)
	if err != nil {
		return nil, err
	}
	outcome := &Outcome{Interpreter: interp}

	created, err := p.EnsureVenv(ctx, interp)
	if err != nil {
		return outcome, err
	}
	outcome.VenvCreated = created

	if err := p.InstallRequirements(ctx); err != nil {
		return outcome, err
	}

	scaffolded, err := p.ScaffoldSecrets()
	if err != nil {
		return outcome, err
	}
	outcome.SecretsCreated = scaffolded

	return outcome, nil
}

// EnsureVenv creates the virtual environment when the marker directory is
// absent. Returns whether it was created on this call.
func (p *Provisioner) EnsureVenv(ctx context.Context, interpreter string) (bool, error) {
	layout := pyenv.Layout{Root: p.Config.VenvDir}
	if layout.Exists() {
		return false, nil
	}

	res, err := p.Runner.Run(ctx, runner.Command{
		Name:   interpreter,
		Args:   []string{"-m", "venv", p.Config.VenvDir},
		Stdout: p.out(),
		Stderr: p.out(),
	})
	if err != nil {
		return false, fmt.Errorf("creating virtual environment: %w", err)
	}
	if res.ExitCode != 0 {
		return false, &StepError{Step: "create venv", ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return true, nil
}

// InstallRequirements runs pip against the dependency manifest using the
// environment's own interpreter. Re-running on a satisfied environment is a
// no-op by pip's own idempotence.
func (p *Provisioner) InstallRequirements(ctx context.Context) error {
	layout := pyenv.Layout{Root: p.Config.VenvDir}

	var timeout time.Duration
	if p.Config.InstallTimeout > 0 {
		timeout = time.Duration(p.Config.InstallTimeout) * time.Second
	}

	res, err := p.Runner.Run(ctx, runner.Command{
		Name:    layout.Interpreter(),
		Args:    []string{"-m", "pip", "install", "-r", p.Config.RequirementsFile},
		Stdout:  p.out(),
		Stderr:  p.out(),
		Timeout: timeout,
	})
	if err != nil {
		return fmt.Errorf("installing requirements: %w", err)
	}
	if res.ExitCode != 0 {
		return &StepError{Step: "pip install", ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// ScaffoldSecrets writes the secrets file with a placeholder key when it is
// absent. An existing file is never overwritten. Returns whether the file
// was created on this call.
func (p *Provisioner) ScaffoldSecrets() (bool, error) {
	path := p.Config.EnvFile
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking secrets file: %w", err)
	}

	line := fmt.Sprintf("%s=%s\n", p.Config.APIKeyName, PlaceholderValue)
	if err := os.WriteFile(path, []byte(line), 0600); err != nil {
		return false, fmt.Errorf("writing secrets file: %w", err)
	}
	return true, nil
}

func (p *Provisioner) out() io.Writer {
	if p.Out != nil {
		return p.Out
	}
	return os.Stdout
}
