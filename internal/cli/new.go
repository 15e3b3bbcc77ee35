package cli

import (
	"os"
	"strings"

	clierrors "github.com/ariel-frischer/tinychange/internal/errors"
	"github.com/ariel-frischer/tinychange/internal/fragment"
	"github.com/ariel-frischer/tinychange/internal/git"
	"github.com/ariel-frischer/tinychange/internal/naming"
	"github.com/ariel-frischer/tinychange/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	newKind    string
	newMessage string
	newAuthor  string
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a new change fragment",
	Long: `Create a new change fragment in the fragments directory.

Values not given as flags are asked for interactively:
  - author: --author, else git config author.name, GIT_AUTHOR_NAME or
    git config user.name, else a prompt
  - kind: --kind (one of the configured categories), else a numbered list
  - message: --message, else a prompt

With --non-interactive a missing kind or message is an error.`,
	Example: `  # Prompt for everything that is missing
  tinychange new

  # Fully non-interactive, e.g. from a script
  tinychange new -I -k Added -m "Support for YAML config files"`,
	Args: noArgs,
	RunE: runNew,
}

func init() {
	newCmd.GroupID = GroupChanges
	addNewFlags(newCmd.Flags())
	rootCmd.AddCommand(newCmd)
}

// addNewFlags registers the fragment flags. They are shared by the new
// command and the root command, which creates a fragment when run alone.
func addNewFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&newKind, "kind", "k", "", "Kind of change, one of the configured categories")
	fs.StringVarP(&newMessage, "message", "m", "", "Description of the change")
	fs.StringVarP(&newAuthor, "author", "a", "", "Author of the change (default: from git config)")
}

func runNew(cmd *cobra.Command, args []string) error {
	p := printerFor(cmd)

	opts, err := loadOptions(p)
	if err != nil {
		return err
	}

	prompt := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	interactive := isInteractive(cmd)

	author, err := resolveAuthor(p, prompt, interactive)
	if err != nil {
		return err
	}

	kind, err := resolveKind(prompt, interactive, opts.Categories)
	if err != nil {
		return err
	}

	message, err := resolveMessage(prompt, interactive, kind)
	if err != nil {
		return err
	}

	change := fragment.Change{Kind: kind, Message: message, Author: author}
	if err := fragment.Validate(change, opts.Categories); err != nil {
		return clierrors.NewArgumentError(err.Error())
	}

	path, err := fragment.Write(opts.FragmentsDir, change, naming.New(opts.Naming, opts.MaxFilenameLength))
	if err != nil {
		return err
	}

	p.Success("Created change fragment", displayPath(path))
	return nil
}

// isInteractive reports whether prompts may be shown. Input that is a file
// but not a terminal, such as a pipe, counts as non-interactive.
func isInteractive(cmd *cobra.Command) bool {
	if nonInteractive {
		return false
	}
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return output.IsTerminal(f)
	}
	return true
}

// resolveAuthor returns the --author value, the author configured for git,
// or asks for one.
func resolveAuthor(p *output.Printer, prompt *prompter, interactive bool) (string, error) {
	if author := strings.TrimSpace(newAuthor); author != "" {
		return author, nil
	}

	if author, source, ok := git.FindAuthor("."); ok {
		p.Info("Found author " + author + " from " + string(source))
		return author, nil
	}

	if interactive {
		if author := prompt.promptText("Who is the author of this change?"); author != "" {
			return author, nil
		}
	}
	return "", clierrors.MissingAuthor()
}

// resolveKind returns the --kind value in its configured spelling, or asks
// for one of the categories.
func resolveKind(prompt *prompter, interactive bool, categories []string) (string, error) {
	if newKind != "" {
		kind, ok := matchOption(strings.TrimSpace(newKind), categories)
		if !ok {
			return "", clierrors.UnknownKind(newKind, categories)
		}
		return kind, nil
	}

	if interactive {
		if kind := prompt.promptSelect("What kind of change is this?", categories); kind != "" {
			return kind, nil
		}
	}
	return "", clierrors.MissingKind(categories)
}

// resolveMessage returns the --message value or asks for one.
func resolveMessage(prompt *prompter, interactive bool, kind string) (string, error) {
	if message := strings.TrimSpace(newMessage); message != "" {
		return message, nil
	}

	if interactive {
		if message := prompt.promptText(messageQuestion(kind)); message != "" {
			return message, nil
		}
	}
	return "", clierrors.MissingMessage()
}

// messageQuestion phrases the message prompt after the kind, e.g.
// "What got fixed?" for Fixed.
func messageQuestion(kind string) string {
	if strings.HasSuffix(strings.ToLower(kind), "ed") {
		return "What got " + strings.ToLower(kind) + "?"
	}
	return "Describe the change"
}
