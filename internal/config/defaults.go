package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"python_cmd":        "",
		"venv_dir":          "venv",
		"requirements_file": "requirements.txt",
		"env_file":          ".env",
		"console_entry":     "agent.py",
		"gui_entry":         "gui_app.py",
		"api_key_name":      "GEMINI_API_KEY",
		"state_dir":         "~/.agentup/state",
		"install_timeout":   1800,
		"show_progress":     true,
	}
}
