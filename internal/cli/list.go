package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/tinychange/internal/changelog"
	"github.com/ariel-frischer/tinychange/internal/config"
	"github.com/ariel-frischer/tinychange/internal/fragment"
	"github.com/ariel-frischer/tinychange/internal/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	listPlain bool
	listWatch bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Show pending fragments grouped by category (ls)",
	Long: `Show the pending fragments as they will appear in the unreleased section,
grouped by category in the configured order.

With --watch the list is redrawn whenever fragments are added, edited or
removed, until interrupted with Ctrl+C.`,
	Example: `  # Show pending fragments
  tinychange list

  # Plain output without colors or icons
  tinychange list --plain

  # Keep the list up to date while editing fragments
  tinychange list --watch`,
	Args: noArgs,
	RunE: runList,
}

func init() {
	listCmd.GroupID = GroupChanges
	listCmd.Flags().BoolVar(&listPlain, "plain", false, "Plain output without colors or icons")
	listCmd.Flags().BoolVarP(&listWatch, "watch", "w", false, "Redraw the list when fragments change")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	p := printerFor(cmd)

	opts, err := loadOptions(p)
	if err != nil {
		return err
	}

	if !listWatch {
		return printPending(cmd.OutOrStdout(), opts)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchPending(ctx, cmd.OutOrStdout(), p, opts)
}

// printPending loads and prints all pending fragments.
func printPending(w io.Writer, opts *config.Options) error {
	loaded, err := fragment.LoadDir(opts.FragmentsDir, opts.Categories)
	if err != nil {
		return err
	}

	if len(loaded) == 0 {
		_, err := io.WriteString(w, "No pending fragments\n")
		return err
	}
	return changelog.FormatPending(w, loaded, opts.Categories, formatOptions(listPlain))
}

// watchPending prints the pending fragments and prints them again after
// every change until ctx is cancelled. Load errors are reported as
// warnings so a half-written fragment does not end the watch.
func watchPending(ctx context.Context, w io.Writer, p *output.Printer, opts *config.Options) error {
	watcher, err := fragment.NewWatcher(opts.FragmentsDir)
	if err != nil {
		return err
	}
	defer watcher.Close()

	changes := watcher.Watch(ctx)

	refresh := func() {
		if err := printPending(w, opts); err != nil {
			p.Warn(err.Error())
		}
	}

	refresh()
	p.Info("Watching " + displayPath(opts.FragmentsDir) + " for changes (Ctrl+C to stop)")

	for range changes {
		io.WriteString(w, "\n")
		refresh()
	}
	return nil
}

// formatOptions returns the preview options, falling back to plain output
// when colors are disabled.
func formatOptions(plain bool) changelog.FormatOptions {
	return changelog.FormatOptions{Plain: plain || color.NoColor}
}

// commandContext returns the command's context, or a background context
// when the command runs without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
