// Package cli implements the tinychange command line interface.
package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/tinychange/internal/changelog"
	"github.com/ariel-frischer/tinychange/internal/config"
	clierrors "github.com/ariel-frischer/tinychange/internal/errors"
	"github.com/ariel-frischer/tinychange/internal/fragment"
	"github.com/ariel-frischer/tinychange/internal/git"
	"github.com/ariel-frischer/tinychange/internal/naming"
	"github.com/ariel-frischer/tinychange/internal/output"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output
const (
	GroupChanges = "changes"
	GroupSetup   = "setup"
)

var (
	configPath     string
	nonInteractive bool
	quiet          bool
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:   "tinychange",
	Short: "Manage changelog fragments and merge them into CHANGELOG.md",
	Long: `tinychange records each change as a small fragment file and later merges
all pending fragments into the "Unreleased" section of a Keep a Changelog
style CHANGELOG.md, grouped by category.

Fragments never conflict in version control, the changelog is only touched
when you run 'tinychange merge'.

Running tinychange without a command creates a new fragment, like 'tinychange new'.`,
	Example: `  # Set up tinychange in the current project
  tinychange init

  # Record a change interactively
  tinychange

  # Record a change without prompts
  tinychange new -k Fixed -m "Crash when the config file is empty"

  # Preview and merge pending fragments
  tinychange list
  tinychange merge`,
	Args:          noArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			git.SetDebugLogger(printerFor(cmd).Debugf)
		} else {
			git.SetDebugLogger(nil)
		}
	},
	RunE: runNew,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupChanges, Title: "Changes:"},
		&cobra.Group{ID: GroupSetup, Title: "Setup:"},
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: tinychange.toml, .yml, .yaml or .json in the current directory)")
	rootCmd.PersistentFlags().BoolVarP(&nonInteractive, "non-interactive", "I", false, "Never prompt, fail when a value is missing")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print errors and warnings")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Print debug information to stderr")

	addNewFlags(rootCmd.Flags())

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			"Run '"+cmd.CommandPath()+" --help' for usage")
	})
}

// Execute runs the root command. Errors are reported on stderr and
// returned as an *ExitError carrying the process exit code.
func Execute() error {
	return execute(rootCmd)
}

func execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err == nil {
		return nil
	}

	cliErr := toCLIError(err)
	clierrors.FprintError(cmd.ErrOrStderr(), cliErr)
	return NewExitError(exitCodeFor(cliErr.Category), cliErr)
}

// noArgs rejects positional arguments as an argument error.
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			"Run '"+cmd.CommandPath()+" --help' for usage")
	}
	return nil
}

// printerFor creates a Printer on the command's writers honoring the
// global --quiet and --debug flags.
func printerFor(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), quiet, debug)
}

// loadOptions loads and resolves the project configuration.
// Without --config, a config file in the current directory wins; when there
// is none, the root of the enclosing git repository is searched as well.
func loadOptions(p *output.Printer) (*config.Options, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigPath: configPath})
	if err != nil && configPath == "" && config.IsNotFoundError(err) {
		if root, rootErr := git.RepositoryRoot("."); rootErr == nil {
			p.Debugf("[config] no config file in working directory, trying %s", root)
			if retry, retryErr := config.Load(config.LoadOptions{Dir: root}); !config.IsNotFoundError(retryErr) {
				cfg, err = retry, retryErr
			}
		}
	}
	if err != nil {
		var validation *config.ValidationError
		if config.IsNotFoundError(err) || errors.As(err, &validation) {
			return nil, err
		}
		return nil, clierrors.ConfigInvalid(configPathOrDefault(), err)
	}
	p.Debugf("[config] loaded %s", cfg.Path)

	opts, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	p.Debugf("[config] fragments: %s, changelog: %s", opts.FragmentsDir, opts.Changelog)
	return opts, nil
}

// toCLIError converts err into a CLIError with remediation steps.
func toCLIError(err error) *clierrors.CLIError {
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		notFound   *config.NotFoundError
		validation *config.ValidationError
		lengthErr  *naming.LengthError
		mergeErr   *changelog.MergeError
		pathErr    *fs.PathError
	)

	switch {
	case errors.As(err, &notFound):
		return clierrors.ConfigFileNotFound(notFound.Path)
	case errors.Is(err, config.ErrConfigExists):
		return clierrors.ConfigAlreadyExists(configPathOrDefault())
	case errors.As(err, &validation):
		return clierrors.ConfigValueInvalid(err)
	case errors.As(err, &lengthErr):
		return clierrors.FilenameTooLong(err)
	case errors.As(err, &mergeErr):
		return clierrors.ChangelogStructure(err)
	case errors.Is(err, fragment.ErrUnexpectedDirectory):
		return clierrors.NewContentError(err, "Move the directory out of the fragments directory")
	case fragment.IsFormatError(err):
		return clierrors.MalformedFragment(err)
	case errors.As(err, &pathErr) && errors.Is(err, fs.ErrPermission):
		return clierrors.FileNotWritable(pathErr.Path, err)
	default:
		return clierrors.Wrap(err, clierrors.Runtime)
	}
}

// configPathOrDefault returns the --config value or the default file name.
func configPathOrDefault() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultConfigName
}

// displayPath shortens path relative to the working directory when it lies
// below it.
func displayPath(path string) string {
	wd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(wd, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
