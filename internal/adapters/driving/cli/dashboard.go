package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show learner progress",
	Long: `Prints the learner profile, open knowledge gaps and study
recommendations.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	if assistantService == nil {
		return errors.New("assistant not configured")
	}

	dash := assistantService.Dashboard()
	profile := dash.Profile

	cmd.Printf("Level: %s (style: %s)\n", profile.OverallLevel, profile.Style)
	cmd.Printf("Interactions: %d total, %d this session\n", profile.Interactions, dash.Interactions)

	if len(profile.Preferences) > 0 {
		prefs := make([]string, len(profile.Preferences))
		for i, p := range profile.Preferences {
			prefs[i] = string(p)
		}
		cmd.Printf("Preferences: %s\n", strings.Join(prefs, ", "))
	}
	if len(profile.StrongTopics) > 0 {
		cmd.Printf("Strong topics: %s\n", strings.Join(profile.StrongTopics, ", "))
	}
	if len(profile.Gaps) > 0 {
		cmd.Println("\nKnowledge gaps:")
		for _, gap := range profile.Gaps {
			cmd.Printf("  - %s (confidence %.1f, seen %d times)\n", gap.Topic, gap.Confidence, len(gap.Evidence))
		}
	}

	rec := dash.Recommendations
	if len(rec.PriorityTopics) > 0 {
		cmd.Printf("\nFocus next: %s\n", strings.Join(rec.PriorityTopics, ", "))
	}
	if len(rec.NextSteps) > 0 {
		cmd.Println("Suggested steps:")
		for _, step := range rec.NextSteps {
			cmd.Printf("  - %s\n", step)
		}
	}
	return nil
}
