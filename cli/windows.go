package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"interact/automation"
)

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List the windows currently on screen",
	RunE: func(cmd *cobra.Command, args []string) error {
		controller := automation.NewExecController()
		windows, err := controller.ListWindows(cmd.Context())
		if err != nil {
			return err
		}

		if len(windows) == 0 {
			fmt.Println("No windows found.")
			return nil
		}

		for _, w := range windows {
			fmt.Printf("%-12s %-20s %dx%d  %s\n", w.ID, w.Owner, w.Bounds.Width, w.Bounds.Height, w.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(windowsCmd)
}
