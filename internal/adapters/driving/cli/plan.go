package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var planWeeks int

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study plan",
	Long: `Generates a multi-week study plan from your open knowledge gaps,
falling back to a standard progression when none are recorded.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().IntVarP(&planWeeks, "weeks", "w", 4, "number of weeks to plan")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant not configured")
	}

	plan := assistantService.StudyPlan(planWeeks)

	cmd.Printf("Study plan (%s level):\n\n", plan.Level)
	for _, week := range plan.Weeks {
		cmd.Printf("Week %d: %s\n", week.Week, strings.Join(week.Topics, ", "))
		cmd.Printf("  Goal: %s\n", week.Goal)
	}
	return nil
}
