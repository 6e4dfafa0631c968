// Package cli wires the command-line interface: running instructions against
// a window, listing windows and models, inspecting the audit log, and
// managing credentials.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"interact/config"
	"interact/model"
	"interact/provider"
)

var rootCmd = &cobra.Command{
	Use:   "interact",
	Short: "Drive a desktop application window with an LLM",
	Long: `interact lets a language model operate one desktop window on your
behalf: it can look at the window, type into it, and send it keyboard
shortcuts, step by step, until your instruction is done.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves configuration and starts debug logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	config.InitDebugLog(cfg.DataDir())
	return cfg, nil
}

// buildProvider creates the backend for a provider ID, pulling its
// credential from the store.
func buildProvider(cfg *config.Config, providerID string) (model.Provider, error) {
	store := config.NewCredentialStore(config.SecurityMethod(cfg.SecurityMethod), config.ExpandPath(cfg.SSHKeyPath))
	if err := store.Load(cfg.DataDir()); err != nil {
		return nil, fmt.Errorf("loading credentials: %w", err)
	}

	pcfg := provider.Config{
		Type:   provider.MapProviderIDToType(providerID),
		Host:   cfg.OllamaHost,
		Port:   cfg.OllamaPort,
		APIKey: store.Get(providerID),
	}
	switch pcfg.Type {
	case provider.TypeOpenAI:
		pcfg.BaseURL = cfg.OpenAIBaseURL
	case provider.TypeAnthropic:
		pcfg.BaseURL = cfg.AnthropicBaseURL
	}

	return provider.NewProvider(pcfg)
}
