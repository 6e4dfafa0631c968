package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"interact/storage"
)

var auditLimit int

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Show recent tool executions from the audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := storage.OpenAuditLog(cfg.AuditDBPath())
		if err != nil {
			return err
		}
		defer log.Close()

		records, err := log.Recent(auditLimit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No tool executions recorded yet.")
			return nil
		}

		for _, rec := range records {
			fmt.Printf("%s  %-18s %s\n", rec.CreatedAt.Local().Format("2006-01-02 15:04:05"), rec.Tool, rec.Summary)
		}
		return nil
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 50, "maximum number of records to show")
	rootCmd.AddCommand(auditCmd)
}
