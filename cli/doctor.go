package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"interact/automation"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment: desktop tooling, config, provider reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		ok := true

		for _, name := range automation.RequiredCommands() {
			if _, err := exec.LookPath(name); err != nil {
				fmt.Printf("MISSING  %s (install it to enable window automation)\n", name)
				ok = false
			} else {
				fmt.Printf("ok       %s\n", name)
			}
		}

		cfg, err := loadConfig()
		if err != nil {
			fmt.Printf("MISSING  configuration: %v\n", err)
			return fmt.Errorf("environment not ready")
		}
		fmt.Printf("ok       config (data dir %s)\n", cfg.DataDir())

		p, err := buildProvider(cfg, cfg.Provider)
		if err != nil {
			fmt.Printf("MISSING  provider %s: %v\n", cfg.Provider, err)
			ok = false
		} else if p.CheckAvailability(cmd.Context()) {
			fmt.Printf("ok       provider %s reachable\n", cfg.Provider)
		} else {
			fmt.Printf("WARN     provider %s not reachable\n", cfg.Provider)
			ok = false
		}

		if !ok {
			return fmt.Errorf("environment not ready")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
