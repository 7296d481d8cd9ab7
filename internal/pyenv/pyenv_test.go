package pyenv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLook resolves only the names it knows about.
type fakeLook map[string]string

func (f fakeLook) LookPath(name string) (string, error) {
	if path, ok := f[name]; ok {
		return path, nil
	}
	return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
}

func TestFindInterpreter(t *testing.T) {
	tests := map[string]struct {
		look     fakeLook
		explicit string
		expected string
		wantErr  bool
	}{
		"explicit command wins": {
			look:     fakeLook{"python3.12": "/opt/python3.12", "python3": "/usr/bin/python3"},
			explicit: "python3.12",
			expected: "/opt/python3.12",
		},
		"explicit command missing is an error even with candidates present": {
			look:     fakeLook{"python3": "/usr/bin/python3"},
			explicit: "python3.12",
			wantErr:  true,
		},
		"python3 preferred over python": {
			look:     fakeLook{"python3": "/usr/bin/python3", "python": "/usr/bin/python"},
			expected: "/usr/bin/python3",
		},
		"falls back to python": {
			look:     fakeLook{"python": "/usr/bin/python"},
			expected: "/usr/bin/python",
		},
		"falls back to py launcher": {
			look:     fakeLook{"py": `C:\Windows\py.exe`},
			expected: `C:\Windows\py.exe`,
		},
		"nothing found": {
			look:    fakeLook{},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := FindInterpreter(tt.look, tt.explicit)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInterpreterNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLayoutPaths(t *testing.T) {
	orig := osName
	t.Cleanup(func() { osName = orig })

	osName = "linux"
	l := Layout{Root: "venv"}
	assert.Equal(t, filepath.Join("venv", "bin"), l.BinDir())
	assert.Equal(t, filepath.Join("venv", "bin", "python"), l.Interpreter())

	osName = "windows"
	assert.Equal(t, filepath.Join("venv", "Scripts"), l.BinDir())
	assert.Equal(t, filepath.Join("venv", "Scripts", "python.exe"), l.Interpreter())
}

func TestLayoutExists(t *testing.T) {
	tmpDir := t.TempDir()

	missing := Layout{Root: filepath.Join(tmpDir, "venv")}
	assert.False(t, missing.Exists())

	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "venv"), 0755))
	assert.True(t, missing.Exists())

	// A file at the marker path is not an environment
	filePath := filepath.Join(tmpDir, "notadir")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0644))
	assert.False(t, Layout{Root: filePath}.Exists())
}

func TestActivationEnv(t *testing.T) {
	orig := osName
	osName = "linux"
	t.Cleanup(func() { osName = orig })

	l := Layout{Root: "/srv/app/venv"}
	base := []string{
		"HOME=/home/user",
		"PATH=/usr/local/bin:/usr/bin",
		"PYTHONHOME=/usr",
		"VIRTUAL_ENV=/old/venv",
	}

	env := ActivationEnv(base, l)

	joined := strings.Join(env, "\n")
	assert.Contains(t, joined, "VIRTUAL_ENV=/srv/app/venv")
	assert.NotContains(t, joined, "PYTHONHOME")
	assert.NotContains(t, joined, "/old/venv")
	assert.Contains(t, joined, "HOME=/home/user")

	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			value := strings.TrimPrefix(kv, "PATH=")
			first := strings.Split(value, string(os.PathListSeparator))[0]
			assert.Equal(t, "/srv/app/venv/bin", first, "venv bin dir should be first on PATH")
			assert.Contains(t, value, "/usr/local/bin")
		}
	}
}

func TestActivationEnvWithoutPath(t *testing.T) {
	orig := osName
	osName = "linux"
	t.Cleanup(func() { osName = orig })

	env := ActivationEnv([]string{"HOME=/home/user"}, Layout{Root: "/srv/app/venv"})
	assert.Contains(t, env, "PATH=/srv/app/venv/bin")
}

func TestProbe(t *testing.T) {
	tmpDir := t.TempDir()
	venvDir := filepath.Join(tmpDir, "venv")
	envFile := filepath.Join(tmpDir, ".env")

	t.Run("fresh checkout", func(t *testing.T) {
		status := Probe(fakeLook{"python3": "/usr/bin/python3"}, venvDir, envFile, "")
		assert.False(t, status.EnvironmentReady)
		assert.False(t, status.SecretsPresent)
		assert.Equal(t, "/usr/bin/python3", status.Interpreter)
	})

	t.Run("provisioned checkout", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(venvDir, 0755))
		require.NoError(t, os.WriteFile(envFile, []byte("GEMINI_API_KEY=abc\n"), 0600))

		status := Probe(fakeLook{}, venvDir, envFile, "")
		assert.True(t, status.EnvironmentReady)
		assert.True(t, status.SecretsPresent)
		assert.Empty(t, status.Interpreter)
	})
}
