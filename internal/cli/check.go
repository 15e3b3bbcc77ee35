package cli

import (
	"fmt"

	"github.com/ariel-frischer/tinychange/internal/changelog"
	"github.com/spf13/cobra"
)

var checkShow bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate fragments and the changelog without writing",
	Long: `Decode every pending fragment and merge them into the changelog in memory,
without writing the changelog or deleting fragments.

Exits with a non-zero status when a fragment is malformed or the changelog
holds content the merge cannot place. Useful as a CI gate.`,
	Example: `  # Validate in CI
  tinychange check

  # Also print the changelog the next merge would produce
  tinychange check --show`,
	Args: noArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.GroupID = GroupChanges
	checkCmd.Flags().BoolVar(&checkShow, "show", false, "Print the changelog the next merge would produce")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	p := printerFor(cmd)

	opts, err := loadOptions(p)
	if err != nil {
		return err
	}

	report, err := changelog.MergeFiles(changelog.MergeOptions{
		FragmentsDir: opts.FragmentsDir,
		Changelog:    opts.Changelog,
		Categories:   opts.Categories,
		DryRun:       true,
	})
	if err != nil {
		return err
	}

	if len(report.Fragments) == 0 {
		if err := changelog.CheckDocument(opts.Changelog, opts.Categories); err != nil {
			return err
		}
		p.Success("No pending fragments", "")
		return nil
	}

	p.Success(fmt.Sprintf("%d %s can be merged into", len(report.Fragments), plural(len(report.Fragments), "fragment")),
		displayPath(opts.Changelog))
	p.Debugf("[check] strategy: %s", report.Strategy)

	if checkShow {
		fmt.Fprint(cmd.OutOrStdout(), report.Content)
	}
	return nil
}
