package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/interact",
	}
}

func DefaultUserConfig() *UserConfig {
	return &UserConfig{
		Provider: "ollama",
		MaxTurns: 25,
		Ollama: OllamaConfig{
			Host: "localhost",
			Port: 11434,
		},
		Security: SecurityConfig{
			Method: "plaintext",
		},
	}
}

func GenerateSystemConfigTemplate() string {
	return `# Interact System Configuration
# Location: ~/.config/interact/settings.toml
# This file uses TOML format: https://toml.io

# Directory where screenshots, the audit log and user config are stored
data_directory = "~/.local/share/interact"
`
}

func GenerateUserConfigTemplate() string {
	return `# Interact User Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Which provider runs the automation model: "ollama", "openai", "anthropic"
provider = "ollama"

# Model used when --model is not given (no auto-selection happens)
default_model = ""

# Behavior prompt for the automation assistant (optional)
default_system_prompt = ""

# Ceiling on model turns per instruction
max_turns = 25

[ollama]
# Ollama server; a host without a scheme is treated as plain HTTP
host = "localhost"
port = 11434

[openai]
# Custom OpenAI-compatible endpoint (optional)
# base_url = "https://api.openai.com/v1"

[anthropic]
# Custom Anthropic endpoint (optional)
# base_url = "https://api.anthropic.com"

[security]
# Credential storage: "plaintext" or "ssh_key"
method = "plaintext"
# ssh_key_path = "~/.ssh/id_ed25519"
`
}
