package cli

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mentorlab/tutor-cli/internal/core/domain"
)

var indexRecursive bool

var indexCmd = &cobra.Command{
	Use:   "index [path...]",
	Short: "Index study materials",
	Long: `Indexes the given files into the in-process content index.
Directories are expanded; each file is routed to the matching indexer
by extension (.txt/.json, .pdf, images, video). One file failing never
stops the rest.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVarP(&indexRecursive, "recursive", "r", false, "descend into subdirectories")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}

	statuses := ingestService.IndexAll(cmd.Context(), paths)

	var indexed, failed, skipped int
	for _, status := range statuses {
		switch status.Outcome {
		case domain.OutcomeIndexed:
			indexed++
			cmd.Printf("  indexed  %s (%s)\n", status.Path, status.Modality)
		case domain.OutcomeFailed:
			failed++
			cmd.Printf("  failed   %s: %s\n", status.Path, status.Reason)
		case domain.OutcomeSkipped:
			skipped++
			cmd.Printf("  skipped  %s: %s\n", status.Path, status.Reason)
		}
	}
	cmd.Printf("\n%d indexed, %d failed, %d skipped\n", indexed, failed, skipped)
	return nil
}

// expandPaths replaces directories with the files they contain.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			// let ingestion record the missing file as a failure
			paths = append(paths, arg)
			continue
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		if indexRecursive {
			err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() {
					paths = append(paths, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return paths, nil
}
