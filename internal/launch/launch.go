// Package launch runs an entry program inside the provisioned environment
// and relays its exit status.
package launch

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/pyenv"
	"github.com/hctsai/agentup/internal/runner"
)

// Variant selects which entry program to launch.
type Variant string

const (
	// VariantConsole launches the interactive console session.
	VariantConsole Variant = "console"
	// VariantGUI launches the browser-based interface. The entry program
	// opens its own local endpoint; that behavior is opaque to the launcher.
	VariantGUI Variant = "gui"
)

// ErrEnvironmentMissing indicates a launch was attempted before the
// environment was provisioned. The entry program is never spawned.
var ErrEnvironmentMissing = errors.New("virtual environment not found")

// Launcher runs entry programs with the environment activated. The streams
// default to the process's own stdio so the console entry stays interactive.
type Launcher struct {
	Config *config.Configuration
	Runner runner.Runner

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewLauncher constructs a Launcher attached to the process stdio.
func NewLauncher(cfg *config.Configuration, r runner.Runner) *Launcher {
	return &Launcher{
		Config: cfg,
		Runner: r,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// EntryScript returns the entry program path for the variant.
func (l *Launcher) EntryScript(v Variant) string {
	if v == VariantGUI {
		return l.Config.GUIEntry
	}
	return l.Config.ConsoleEntry
}

// Run checks the environment precondition, activates the environment for
// the child, runs the entry program with no arguments, and blocks until it
// exits. A nonzero child status is reported via Result.ExitCode.
func (l *Launcher) Run(ctx context.Context, v Variant) (*runner.Result, error) {
	layout := pyenv.Layout{Root: l.Config.VenvDir}
	if !layout.Exists() {
		return nil, ErrEnvironmentMissing
	}

	env := pyenv.ActivationEnv(os.Environ(), layout)
	return l.Runner.Run(ctx, runner.Command{
		Name:   layout.Interpreter(),
		Args:   []string{l.EntryScript(v)},
		Env:    env,
		Stdin:  l.Stdin,
		Stdout: l.Stdout,
		Stderr: l.Stderr,
	})
}
