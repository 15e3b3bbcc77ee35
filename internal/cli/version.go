package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/build"
	"github.com/ariel-frischer/tinychange/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for tinychange",
	Example: `  # Show version info
  tinychange version

  # Plain output (for scripts)
  tinychange version --plain`,
	Args: noArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
			return
		}
		printPrettyVersion(cmd.OutOrStdout(), output.GetTerminalWidth())
	},
}

func init() {
	versionCmd.GroupID = GroupSetup
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "tinychange %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints the version information in a box
func printPrettyVersion(w io.Writer, termWidth int) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	info := []struct {
		label string
		value string
	}{
		{"Version", build.Version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}

	boxWidth := 40
	if termWidth < boxWidth+4 {
		boxWidth = max(termWidth-4, 24)
	}
	inner := boxWidth - 2

	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+cyan("tinychange"))
	fmt.Fprintln(w, "  ╭"+strings.Repeat("─", inner)+"╮")
	for _, item := range info {
		text := fmt.Sprintf(" %10s  %s", item.label, item.value)
		padding := max(inner-len(text), 0)
		line := fmt.Sprintf(" %s  %s", yellow(fmt.Sprintf("%10s", item.label)), white(item.value))
		fmt.Fprintln(w, "  │"+line+strings.Repeat(" ", padding)+"│")
	}
	fmt.Fprintln(w, "  ╰"+strings.Repeat("─", inner)+"╯")
	fmt.Fprintln(w)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
