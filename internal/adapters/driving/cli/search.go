package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

var (
	searchTopics []string
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the content index",
	Long: `Searches every modality index by semantic similarity and merges the
hits into one ranked list. Use --topic to widen the search with
secondary topic queries.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringSliceVar(&searchTopics, "topic", nil, "additional topic queries")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if retrievalService == nil {
		return errors.New("retrieval service not configured")
	}

	results := retrievalService.Retrieve(cmd.Context(), args[0], searchTopics)

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, result := range results {
		label := string(result.Modality)
		if result.TopicDriven {
			label += ", topic match"
		}
		cmd.Printf("  [%d] %.0f%% (%s)\n", i+1, result.Similarity*100, label)
		if source, ok := result.Metadata["source"].(string); ok {
			cmd.Printf("      Source: %s\n", source)
		}
		cmd.Printf("      %s\n", snippet(result.SearchResult))
		cmd.Println()
	}
	return nil
}

func snippet(result domain.SearchResult) string {
	const max = 160
	content := result.Content
	if len(content) > max {
		content = content[:max] + "..."
	}
	return content
}
