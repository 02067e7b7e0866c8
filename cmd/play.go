package cmd

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a questionnaire session",
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, _ := cmd.Flags().GetBool("plain")
		return runApp(cmd, plain)
	},
}

func init() {
	playCmd.Flags().Bool("plain", false, "Use line-based prompts instead of the terminal UI")
}
