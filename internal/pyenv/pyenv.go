// Package pyenv models the on-disk layout of a Python virtual environment
// and probes ambient interpreter and filesystem state.
package pyenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// interpreterCandidates are tried in order when no interpreter is configured.
// "py" is the Windows launcher.
var interpreterCandidates = []string{"python3", "python", "py"}

// osName is overridable in tests to exercise the Windows layout.
var osName = runtime.GOOS

// ErrInterpreterNotFound indicates no Python interpreter could be resolved
// from PATH or configuration.
var ErrInterpreterNotFound = errors.New("no Python interpreter found in PATH")

// LookPather resolves an executable name to an absolute path.
type LookPather interface {
	LookPath(name string) (string, error)
}

// FindInterpreter resolves the base Python interpreter. An explicit command
// from configuration wins; otherwise the usual candidates are tried in order.
func FindInterpreter(look LookPather, explicit string) (string, error) {
	if explicit != "" {
		path, err := look.LookPath(explicit)
		if err != nil {
			return "", fmt.Errorf("configured interpreter %q: %w", explicit, ErrInterpreterNotFound)
		}
		return path, nil
	}
	for _, candidate := range interpreterCandidates {
		if path, err := look.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", ErrInterpreterNotFound
}

// Layout describes the filesystem shape of a virtual environment rooted at
// the marker directory.
type Layout struct {
	// Root is the marker directory path (the "venv" directory).
	Root string
}

// BinDir returns the scripts directory inside the environment
// ("Scripts" on Windows, "bin" elsewhere).
func (l Layout) BinDir() string {
	if osName == "windows" {
		return filepath.Join(l.Root, "Scripts")
	}
	return filepath.Join(l.Root, "bin")
}

// Interpreter returns the path of the environment's own Python executable.
func (l Layout) Interpreter() string {
	name := "python"
	if osName == "windows" {
		name = "python.exe"
	}
	return filepath.Join(l.BinDir(), name)
}

// Exists reports whether the marker directory is present. Presence is the
// sole provisioning contract; the internal layout is owned by the venv tool.
func (l Layout) Exists() bool {
	info, err := os.Stat(l.Root)
	return err == nil && info.IsDir()
}

// InterpreterExists reports whether the environment's interpreter is present.
// Used by doctor to diagnose a torn environment that Exists cannot see.
func (l Layout) InterpreterExists() bool {
	info, err := os.Stat(l.Interpreter())
	return err == nil && !info.IsDir()
}

// ActivationEnv returns a copy of base with the environment activated:
// VIRTUAL_ENV set to the absolute root, the scripts directory first on PATH,
// and PYTHONHOME removed. This mirrors what the venv activation scripts do.
func ActivationEnv(base []string, l Layout) []string {
	root, err := filepath.Abs(l.Root)
	if err != nil {
		root = l.Root
	}
	binDir := Layout{Root: root}.BinDir()

	env := make([]string, 0, len(base)+2)
	pathSet := false
	for _, kv := range base {
		idx := strings.IndexByte(kv, '=')
		if idx < 0 {
			env = append(env, kv)
			continue
		}
		key := kv[:idx]
		switch {
		case strings.EqualFold(key, "PYTHONHOME"), strings.EqualFold(key, "VIRTUAL_ENV"):
			continue
		case strings.EqualFold(key, "PATH"):
			env = append(env, key+"="+binDir+string(os.PathListSeparator)+kv[idx+1:])
			pathSet = true
		default:
			env = append(env, kv)
		}
	}
	if !pathSet {
		env = append(env, "PATH="+binDir)
	}
	env = append(env, "VIRTUAL_ENV="+root)
	return env
}

// Status is the startup probe snapshot consulted by launch preconditions and
// the status command. It is computed once rather than re-checked ad hoc.
type Status struct {
	// EnvironmentReady reports the marker directory exists.
	EnvironmentReady bool
	// SecretsPresent reports the secrets file exists.
	SecretsPresent bool
	// Interpreter is the resolved base interpreter path, empty if none.
	Interpreter string
}

// Probe computes the status snapshot from ambient state.
func Probe(look LookPather, venvDir, envFile, explicit string) Status {
	status := Status{
		EnvironmentReady: Layout{Root: venvDir}.Exists(),
	}
	if info, err := os.Stat(envFile); err == nil && !info.IsDir() {
		status.SecretsPresent = true
	}
	if interp, err := FindInterpreter(look, explicit); err == nil {
		status.Interpreter = interp
	}
	return status
}
