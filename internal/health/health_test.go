package health

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/provision"
	"github.com/hctsai/agentup/internal/pyenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLook map[string]string

func (f fakeLook) LookPath(name string) (string, error) {
	if path, ok := f[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func testConfig(t *testing.T) *config.Configuration {
	t.Helper()
	tmpDir := t.TempDir()
	return &config.Configuration{
		VenvDir:          filepath.Join(tmpDir, "venv"),
		RequirementsFile: filepath.Join(tmpDir, "requirements.txt"),
		EnvFile:          filepath.Join(tmpDir, ".env"),
		APIKeyName:       "GEMINI_API_KEY",
	}
}

func TestCheckInterpreter(t *testing.T) {
	result := CheckInterpreter(fakeLook{"python3": "/usr/bin/python3"}, "")
	assert.True(t, result.Passed)
	assert.Equal(t, "/usr/bin/python3", result.Message)

	result = CheckInterpreter(fakeLook{}, "")
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "not found")
}

func TestCheckMarker(t *testing.T) {
	cfg := testConfig(t)
	layout := pyenv.Layout{Root: cfg.VenvDir}

	result := CheckMarker(layout)
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "agentup install")

	require.NoError(t, os.MkdirAll(cfg.VenvDir, 0755))
	result = CheckMarker(layout)
	assert.True(t, result.Passed)
}

func TestCheckVenvInterpreter(t *testing.T) {
	cfg := testConfig(t)
	layout := pyenv.Layout{Root: cfg.VenvDir}

	t.Run("no environment", func(t *testing.T) {
		result := CheckVenvInterpreter(layout)
		assert.False(t, result.Passed)
	})

	t.Run("torn environment", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(cfg.VenvDir, 0755))
		result := CheckVenvInterpreter(layout)
		assert.False(t, result.Passed)
		assert.Contains(t, result.Message, "incomplete")
	})

	t.Run("complete environment", func(t *testing.T) {
		interp := layout.Interpreter()
		require.NoError(t, os.MkdirAll(filepath.Dir(interp), 0755))
		require.NoError(t, os.WriteFile(interp, []byte("#!/bin/true\n"), 0755))

		result := CheckVenvInterpreter(layout)
		assert.True(t, result.Passed)
	})
}

func TestCheckRequirements(t *testing.T) {
	cfg := testConfig(t)

	result := CheckRequirements(cfg.RequirementsFile)
	assert.False(t, result.Passed)

	require.NoError(t, os.WriteFile(cfg.RequirementsFile, []byte("rich\ngradio\n"), 0644))
	result = CheckRequirements(cfg.RequirementsFile)
	assert.True(t, result.Passed)
}

func TestCheckSecrets(t *testing.T) {
	tests := map[string]struct {
		content     string
		noFile      bool
		wantPassed  bool
		wantMessage string
	}{
		"missing file": {
			noFile:      true,
			wantPassed:  false,
			wantMessage: "not found",
		},
		"placeholder still present": {
			content:     "GEMINI_API_KEY=" + provision.PlaceholderValue + "\n",
			wantPassed:  false,
			wantMessage: "placeholder",
		},
		"key missing from file": {
			content:     "OTHER_KEY=abc\n",
			wantPassed:  false,
			wantMessage: "no GEMINI_API_KEY entry",
		},
		"configured": {
			content:    "GEMINI_API_KEY=sk-real-key\n",
			wantPassed: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := testConfig(t)
			if !tt.noFile {
				require.NoError(t, os.WriteFile(cfg.EnvFile, []byte(tt.content), 0600))
			}

			result := CheckSecrets(cfg.EnvFile, cfg.APIKeyName)
			assert.Equal(t, tt.wantPassed, result.Passed)
			if tt.wantMessage != "" {
				assert.Contains(t, result.Message, tt.wantMessage)
			}
		})
	}
}

func TestRunChecks(t *testing.T) {
	cfg := testConfig(t)

	report := RunChecks(fakeLook{}, cfg)
	assert.False(t, report.Passed)
	assert.Len(t, report.Checks, 5)

	// Provision everything and re-run
	layout := pyenv.Layout{Root: cfg.VenvDir}
	require.NoError(t, os.MkdirAll(filepath.Dir(layout.Interpreter()), 0755))
	require.NoError(t, os.WriteFile(layout.Interpreter(), []byte("#!/bin/true\n"), 0755))
	require.NoError(t, os.WriteFile(cfg.RequirementsFile, []byte("rich\n"), 0644))
	require.NoError(t, os.WriteFile(cfg.EnvFile, []byte("GEMINI_API_KEY=sk-real\n"), 0600))

	report = RunChecks(fakeLook{"python3": "/usr/bin/python3"}, cfg)
	assert.True(t, report.Passed)
}

func TestFormatReport(t *testing.T) {
	report := &Report{
		Checks: []CheckResult{
			{Name: "Python interpreter", Passed: true, Message: "/usr/bin/python3"},
			{Name: "Virtual environment", Passed: false, Message: "venv not found (run 'agentup install')"},
		},
		Passed: false,
	}

	output := FormatReport(report)
	assert.Contains(t, output, "✓ Python interpreter: /usr/bin/python3")
	assert.Contains(t, output, "✗ Virtual environment: venv not found")
	assert.Equal(t, 2, strings.Count(output, "\n"))
}
