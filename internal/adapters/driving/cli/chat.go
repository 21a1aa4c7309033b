package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mentorlab/tutor-cli/internal/adapters/driving/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long:  `Opens the interactive chat view over the learning assistant.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		if assistantService == nil {
			return errors.New("assistant not configured")
		}
		return tui.Run(assistantService)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
