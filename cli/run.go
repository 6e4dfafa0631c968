package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"interact/agent"
	"interact/automation"
	"interact/storage"
	"interact/tools"
)

var (
	runWindow   string
	runProvider string
	runModel    string
	runCopy     bool
)

var runCmd = &cobra.Command{
	Use:   "run [instruction]",
	Short: "Run an instruction against a window",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		instruction := strings.Join(args, " ")

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		providerID := cfg.Provider
		if runProvider != "" {
			providerID = runProvider
		}
		modelName := cfg.DefaultModel
		if runModel != "" {
			modelName = runModel
		}

		p, err := buildProvider(cfg, providerID)
		if err != nil {
			return err
		}

		controller := automation.NewExecController()
		windows, err := controller.ListWindows(cmd.Context())
		if err != nil {
			return err
		}
		target, ok := automation.FindByTitle(windows, runWindow)
		if !ok {
			return fmt.Errorf("no window matches %q", runWindow)
		}
		fmt.Printf("Target window: %s\n", target.Label())

		dispatcher := tools.NewDispatcher(tools.NewRegistry(), controller, cfg.ScreenshotDir())
		dispatcher.SetWindow(target)

		session := agent.NewSession(p, modelName, dispatcher)
		session.SetMaxTurns(cfg.MaxTurns)
		if cfg.DefaultSystemPrompt != "" {
			session.SetSystemPrompt(cfg.DefaultSystemPrompt)
		}

		audit, err := storage.OpenAuditLog(cfg.AuditDBPath())
		if err != nil {
			return err
		}
		defer audit.Close()
		sessionID := uuid.NewString()
		dispatcher.SetRecorder(func(tool string, toolArgs map[string]string, summary string) {
			if recErr := audit.RecordExecution(sessionID, tool, toolArgs, summary); recErr != nil {
				fmt.Printf("warning: audit record failed: %v\n", recErr)
			}
		})

		runErr := session.Start(cmd.Context(), instruction)

		transcript := renderTranscript(session.Transcript())
		fmt.Println(transcript)

		if runCopy {
			if copyErr := clipboard.WriteAll(transcript); copyErr != nil {
				fmt.Printf("warning: clipboard copy failed: %v\n", copyErr)
			}
		}

		return runErr
	},
}

func renderTranscript(entries []agent.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "[%s] %s: %s\n", e.Timestamp.Format("15:04:05"), e.Author, e.Content)
	}
	return b.String()
}

func init() {
	runCmd.Flags().StringVarP(&runWindow, "window", "w", "", "title of the window to automate (required)")
	runCmd.Flags().StringVarP(&runProvider, "provider", "p", "", "provider to use (ollama, openai, anthropic)")
	runCmd.Flags().StringVarP(&runModel, "model", "m", "", "model to use")
	runCmd.Flags().BoolVar(&runCopy, "copy", false, "copy the transcript to the clipboard when done")
	runCmd.MarkFlagRequired("window")
	rootCmd.AddCommand(runCmd)
}
