package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the learning assistant one question",
	Long: `Sends one question through the adaptive pipeline: the input is
analysed, the learner profile updated, indexed materials retrieved and
an answer assembled at your level. The profile persists across runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if assistantService == nil {
		return errors.New("assistant not configured")
	}

	response, err := assistantService.Respond(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	cmd.Println(response.Message)

	if len(response.Resources) > 0 {
		cmd.Println("\nFrom your materials:")
		for _, res := range response.Resources {
			detail := res.Detail
			if detail != "" {
				detail = ", " + detail
			}
			cmd.Printf("  - [%s%s] %s (%.0f%%)\n", res.Modality, detail, res.Source, res.SimilarityPct)
		}
	}
	if len(response.Exercises) > 0 {
		cmd.Println("\nTry this:")
		for _, ex := range response.Exercises {
			cmd.Printf("  %s\n", ex.Prompt)
			if ex.Hint != "" {
				cmd.Printf("  Hint: %s\n", ex.Hint)
			}
		}
	}
	if len(response.NextSteps) > 0 {
		cmd.Println("\nNext steps:")
		for _, step := range response.NextSteps {
			cmd.Printf("  - %s\n", step)
		}
	}
	if response.FeedbackRequest != "" {
		cmd.Printf("\n%s\n", response.FeedbackRequest)
	}
	return nil
}
