package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type OllamaConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type OpenAIConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

type AnthropicConfig struct {
	BaseURL string `toml:"base_url,omitempty"`
}

type SecurityConfig struct {
	Method     string `toml:"method"` // "plaintext" or "ssh_key"
	SSHKeyPath string `toml:"ssh_key_path,omitempty"`
}

type UserConfig struct {
	Provider            string          `toml:"provider"`
	DefaultModel        string          `toml:"default_model"`
	DefaultSystemPrompt string          `toml:"default_system_prompt,omitempty"`
	MaxTurns            int             `toml:"max_turns,omitempty"`
	Ollama              OllamaConfig    `toml:"ollama"`
	OpenAI              OpenAIConfig    `toml:"openai"`
	Anthropic           AnthropicConfig `toml:"anthropic"`
	Security            SecurityConfig  `toml:"security"`
}

// Config is the resolved runtime configuration.
type Config struct {
	DataDirectory       string
	Provider            string
	DefaultModel        string
	DefaultSystemPrompt string
	MaxTurns            int
	OllamaHost          string
	OllamaPort          int
	OpenAIBaseURL       string
	AnthropicBaseURL    string
	SecurityMethod      string
	SSHKeyPath          string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// ScreenshotDir is where captured window images are persisted for review.
func (c *Config) ScreenshotDir() string {
	return filepath.Join(c.DataDir(), "screenshots")
}

// AuditDBPath is the sqlite database holding the tool-execution log.
func (c *Config) AuditDBPath() string {
	return filepath.Join(c.DataDir(), "automation.db")
}

func (c *Config) applyEnvOverrides() {
	if provider := os.Getenv("INTERACT_PROVIDER"); provider != "" {
		c.Provider = provider
	}
	if modelName := os.Getenv("INTERACT_MODEL"); modelName != "" {
		c.DefaultModel = modelName
	}
	if host := os.Getenv("INTERACT_OLLAMA_HOST"); host != "" {
		c.OllamaHost = host
	}
	if port := os.Getenv("INTERACT_OLLAMA_PORT"); port != "" {
		if n, err := strconv.Atoi(port); err == nil && n > 0 {
			c.OllamaPort = n
		}
	}
	if dataDir := os.Getenv("INTERACT_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
}

func CheckDebug() bool {
	debug := os.Getenv("INTERACT_DEBUG")
	return debug == "true" || debug == "1"
}

// InitDebugLog opens the debug log file when INTERACT_DEBUG is set.
func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: debug output can include prompts and window titles
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started ===")
}

// Load resolves configuration: built-in defaults, then settings files, then
// INTERACT_* environment overrides. Missing files are created from the
// default templates.
func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory:  "~/.local/share/interact",
		Provider:       "ollama",
		OllamaHost:     "localhost",
		OllamaPort:     11434,
		MaxTurns:       25,
		SecurityMethod: "plaintext",
	}

	systemCfg, err := LoadSystemConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load system config: %w", err)
	}
	if systemCfg.DataDirectory != "" {
		cfg.DataDirectory = systemCfg.DataDirectory
	}

	dataDir := cfg.DataDir()
	userCfg, err := LoadUserConfig(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	applyUserConfig(cfg, userCfg)

	cfg.applyEnvOverrides()

	dataDir = cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}

func applyUserConfig(cfg *Config, user *UserConfig) {
	if user.Provider != "" {
		cfg.Provider = user.Provider
	}
	if user.DefaultModel != "" {
		cfg.DefaultModel = user.DefaultModel
	}
	if user.DefaultSystemPrompt != "" {
		cfg.DefaultSystemPrompt = user.DefaultSystemPrompt
	}
	if user.MaxTurns > 0 {
		cfg.MaxTurns = user.MaxTurns
	}
	if user.Ollama.Host != "" {
		cfg.OllamaHost = user.Ollama.Host
	}
	if user.Ollama.Port > 0 {
		cfg.OllamaPort = user.Ollama.Port
	}
	cfg.OpenAIBaseURL = user.OpenAI.BaseURL
	cfg.AnthropicBaseURL = user.Anthropic.BaseURL
	if user.Security.Method != "" {
		cfg.SecurityMethod = user.Security.Method
	}
	cfg.SSHKeyPath = user.Security.SSHKeyPath
}
