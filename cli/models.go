package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var modelsProvider string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the models available on a provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		providerID := cfg.Provider
		if modelsProvider != "" {
			providerID = modelsProvider
		}

		p, err := buildProvider(cfg, providerID)
		if err != nil {
			return err
		}

		models, err := p.ListModels(cmd.Context())
		if err != nil {
			return err
		}

		if len(models) == 0 {
			fmt.Printf("No models available on %s.\n", providerID)
			return nil
		}

		for _, m := range models {
			if m.ContextLength > 0 {
				fmt.Printf("%-40s context %d\n", m.Name, m.ContextLength)
			} else {
				fmt.Println(m.Name)
			}
		}
		return nil
	},
}

func init() {
	modelsCmd.Flags().StringVarP(&modelsProvider, "provider", "p", "", "provider to query (ollama, openai, anthropic)")
	rootCmd.AddCommand(modelsCmd)
}
