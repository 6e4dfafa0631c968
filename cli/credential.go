package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"interact/config"
)

var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Manage provider API credentials",
}

var credentialSetCmd = &cobra.Command{
	Use:   "set <provider> <api-key>",
	Short: "Store an API credential for a provider",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store := config.NewCredentialStore(config.SecurityMethod(cfg.SecurityMethod), config.ExpandPath(cfg.SSHKeyPath))
		if err := store.Load(cfg.DataDir()); err != nil {
			return err
		}
		store.Set(args[0], args[1])
		if err := store.Save(cfg.DataDir()); err != nil {
			return err
		}

		fmt.Printf("Stored credential for %s (%s).\n", args[0], store.Method())
		return nil
	},
}

var credentialDeleteCmd = &cobra.Command{
	Use:   "delete <provider>",
	Short: "Remove a provider's API credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store := config.NewCredentialStore(config.SecurityMethod(cfg.SecurityMethod), config.ExpandPath(cfg.SSHKeyPath))
		if err := store.Load(cfg.DataDir()); err != nil {
			return err
		}
		store.Delete(args[0])
		if err := store.Save(cfg.DataDir()); err != nil {
			return err
		}

		fmt.Printf("Removed credential for %s.\n", args[0])
		return nil
	},
}

func init() {
	credentialCmd.AddCommand(credentialSetCmd)
	credentialCmd.AddCommand(credentialDeleteCmd)
	rootCmd.AddCommand(credentialCmd)
}
