package cli

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show index statistics",
	Long:  `Prints per-modality counts and modality-specific aggregates.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	for _, st := range ingestService.Stats() {
		cmd.Printf("%s: %d chunks from %d files\n", st.Modality, st.Documents, st.Files)

		keys := make([]string, 0, len(st.Details))
		for key := range st.Details {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			cmd.Printf("  %s: %s\n", key, fmt.Sprint(st.Details[key]))
		}
	}
	return nil
}
