// Package health provides environment health checks for the doctor command.
package health

import (
	"fmt"
	"os"
	"strings"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/provision"
	"github.com/hctsai/agentup/internal/pyenv"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// Report contains all health check results
type Report struct {
	Checks []CheckResult
	Passed bool
}

// RunChecks runs all health checks against the configured paths
func RunChecks(look pyenv.LookPather, cfg *config.Configuration) *Report {
	report := &Report{Passed: true}

	layout := pyenv.Layout{Root: cfg.VenvDir}
	checks := []CheckResult{
		CheckInterpreter(look, cfg.PythonCmd),
		CheckMarker(layout),
		CheckVenvInterpreter(layout),
		CheckRequirements(cfg.RequirementsFile),
		CheckSecrets(cfg.EnvFile, cfg.APIKeyName),
	}

	for _, check := range checks {
		report.Checks = append(report.Checks, check)
		if !check.Passed {
			report.Passed = false
		}
	}
	return report
}

// CheckInterpreter checks if a base Python interpreter is available
func CheckInterpreter(look pyenv.LookPather, explicit string) CheckResult {
	interp, err := pyenv.FindInterpreter(look, explicit)
	if err != nil {
		return CheckResult{
			Name:    "Python interpreter",
			Passed:  false,
			Message: "no Python interpreter found in PATH",
		}
	}
	return CheckResult{
		Name:    "Python interpreter",
		Passed:  true,
		Message: interp,
	}
}

// CheckMarker checks if the virtual environment marker directory exists
func CheckMarker(layout pyenv.Layout) CheckResult {
	if !layout.Exists() {
		return CheckResult{
			Name:    "Virtual environment",
			Passed:  false,
			Message: fmt.Sprintf("%s not found (run 'agentup install')", layout.Root),
		}
	}
	return CheckResult{
		Name:    "Virtual environment",
		Passed:  true,
		Message: layout.Root + " present",
	}
}

// CheckVenvInterpreter checks for the interpreter inside the environment.
// Catches a torn venv whose marker directory exists but is incomplete.
func CheckVenvInterpreter(layout pyenv.Layout) CheckResult {
	if !layout.Exists() {
		return CheckResult{
			Name:    "Environment interpreter",
			Passed:  false,
			Message: "no environment to inspect",
		}
	}
	if !layout.InterpreterExists() {
		return CheckResult{
			Name:    "Environment interpreter",
			Passed:  false,
			Message: fmt.Sprintf("%s missing (environment incomplete, run 'agentup clean' then 'agentup install')", layout.Interpreter()),
		}
	}
	return CheckResult{
		Name:    "Environment interpreter",
		Passed:  true,
		Message: layout.Interpreter() + " present",
	}
}

// CheckRequirements checks that the dependency manifest exists
func CheckRequirements(path string) CheckResult {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return CheckResult{
			Name:    "Requirements manifest",
			Passed:  false,
			Message: path + " not found",
		}
	}
	return CheckResult{
		Name:    "Requirements manifest",
		Passed:  true,
		Message: path + " present",
	}
}

// CheckSecrets checks the secrets file exists and the key looks populated
func CheckSecrets(path, keyName string) CheckResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return CheckResult{
			Name:    "Secrets file",
			Passed:  false,
			Message: path + " not found (run 'agentup install')",
		}
	}
	if strings.Contains(string(data), keyName+"="+provision.PlaceholderValue) {
		return CheckResult{
			Name:    "Secrets file",
			Passed:  false,
			Message: fmt.Sprintf("%s still holds the placeholder value, edit %s", keyName, path),
		}
	}
	if !strings.Contains(string(data), keyName+"=") {
		return CheckResult{
			Name:    "Secrets file",
			Passed:  false,
			Message: fmt.Sprintf("%s has no %s entry", path, keyName),
		}
	}
	return CheckResult{
		Name:    "Secrets file",
		Passed:  true,
		Message: path + " configured",
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *Report) string {
	var b strings.Builder
	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&b, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&b, "✗ %s: %s\n", check.Name, check.Message)
		}
	}
	return b.String()
}
