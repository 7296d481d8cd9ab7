package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration represents the agentup CLI tool configuration
type Configuration struct {
	// PythonCmd is the explicit base interpreter; empty means auto-probe
	// python3/python/py.
	PythonCmd string `koanf:"python_cmd"`

	// VenvDir is the marker directory for the virtual environment.
	VenvDir string `koanf:"venv_dir" validate:"required"`

	// RequirementsFile is the dependency manifest consumed by pip.
	RequirementsFile string `koanf:"requirements_file" validate:"required"`

	// EnvFile is the secrets file scaffolded with a placeholder key.
	EnvFile string `koanf:"env_file" validate:"required"`

	// ConsoleEntry and GUIEntry are the launchable entry programs.
	ConsoleEntry string `koanf:"console_entry" validate:"required"`
	GUIEntry     string `koanf:"gui_entry" validate:"required"`

	// APIKeyName is the key name written to the secrets file.
	APIKeyName string `koanf:"api_key_name" validate:"required"`

	// StateDir holds launch history state.
	StateDir string `koanf:"state_dir" validate:"required"`

	// InstallTimeout bounds the pip install step, in seconds.
	InstallTimeout int `koanf:"install_timeout" validate:"omitempty,min=1,max=86400"`

	// ShowProgress enables spinners during provisioning.
	ShowProgress bool `koanf:"show_progress"`
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	// Load global config if it exists
	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".agentup", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// Load local config if it exists
	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	// Override with environment variables (highest priority)
	k.Load(env.Provider("AGENTUP_", ".", envTransform), nil)

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: AGENTUP_VENV_DIR -> venv_dir
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "AGENTUP_"))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
