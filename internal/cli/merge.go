package cli

import (
	"fmt"

	"github.com/ariel-frischer/tinychange/internal/changelog"
	"github.com/spf13/cobra"
)

var (
	mergeKeep   bool
	mergeDryRun bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Merge pending fragments into the changelog",
	Long: `Merge all pending fragments into the "Unreleased" section of the changelog.

Entries are added under the category headings in the configured category
order, next to what the unreleased section already contains. A changelog
without an unreleased section gets one below its "# Changelog" heading, and
a missing changelog is created.

The changelog is written once, after the new content was computed. Merged
fragments are deleted afterwards unless --keep is given. When the changelog
holds content the merge cannot place, nothing is written or deleted.`,
	Example: `  # Merge and delete the merged fragments
  tinychange merge

  # Keep the fragment files, e.g. to merge into a second changelog
  tinychange merge --keep

  # Print the resulting changelog instead of writing it
  tinychange merge --dry-run`,
	Args: noArgs,
	RunE: runMerge,
}

func init() {
	mergeCmd.GroupID = GroupChanges
	mergeCmd.Flags().BoolVar(&mergeKeep, "keep", false, "Keep fragment files after merging")
	mergeCmd.Flags().BoolVar(&mergeDryRun, "dry-run", false, "Print the merged changelog without writing anything")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	p := printerFor(cmd)

	opts, err := loadOptions(p)
	if err != nil {
		return err
	}

	report, err := changelog.MergeFiles(changelog.MergeOptions{
		FragmentsDir: opts.FragmentsDir,
		Changelog:    opts.Changelog,
		Categories:   opts.Categories,
		Keep:         mergeKeep,
		DryRun:       mergeDryRun,
	})
	if err != nil {
		if report != nil && report.Written {
			p.Warn(fmt.Sprintf("%s was updated", displayPath(opts.Changelog)))
		}
		return err
	}

	if len(report.Fragments) == 0 {
		p.Println("No fragments found, nothing to do")
		return nil
	}

	p.Info(strategyMessage(report.Strategy))
	for _, l := range report.Fragments {
		p.Println("  " + changelog.FormatSummary(l, formatOptions(false)))
	}

	if mergeDryRun {
		fmt.Fprint(cmd.OutOrStdout(), report.Content)
		return nil
	}

	p.Success(fmt.Sprintf("Merged %d %s into", len(report.Fragments), plural(len(report.Fragments), "fragment")),
		displayPath(opts.Changelog))
	if len(report.Deleted) > 0 {
		p.Info(fmt.Sprintf("Removed %d merged %s", len(report.Deleted), plural(len(report.Deleted), "fragment")))
	}
	return nil
}

// strategyMessage describes how the fragments are placed in the changelog.
func strategyMessage(s changelog.Strategy) string {
	switch s {
	case changelog.StrategyCreated:
		return "No changelog file found, creating a new one"
	case changelog.StrategyMergedUnreleased:
		return "Found unreleased section, merging changes into it"
	case changelog.StrategyInsertedUnreleased:
		return "No unreleased section found, inserting one"
	default:
		return "Merging changes"
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
