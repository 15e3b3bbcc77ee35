package errors

import (
	"fmt"
	"strings"
)

// Common error messages for the tinychange CLI.
// These templates ensure consistent, actionable error messages.

// ConfigFileNotFound creates an error for a missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'tinychange init' to initialize tinychange in your project",
		"Or point to an existing file with --config <path>",
	)
}

// ConfigInvalid creates an error for a config file that failed to load.
func ConfigInvalid(path string, err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		fmt.Sprintf("invalid config file %s", path),
		"Check the file for syntax errors",
		"Compare with the defaults written by 'tinychange init --config <other path>'",
	)
}

// ConfigValueInvalid creates an error for a config file that loaded but
// holds an invalid value. err already names the file and field.
func ConfigValueInvalid(err error) *CLIError {
	return Wrap(err, Configuration,
		"Fix the value in the config file",
		"Run 'tinychange init --config <other path>' to see the defaults",
	)
}

// ConfigAlreadyExists creates an error when init would overwrite a config file.
func ConfigAlreadyExists(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("configuration file already exists: %s", path),
		"Edit the existing file instead",
		"Or remove it and run 'tinychange init' again",
	)
}

// MissingAuthor creates an error when no author could be determined.
func MissingAuthor() *CLIError {
	return NewArgumentErrorWithUsage(
		"could not determine the change author",
		"tinychange new --author <name>",
		"Pass the author with --author",
		"Or set it once with: git config --global author.name \"Your Name\"",
		"Or export GIT_AUTHOR_NAME",
	)
}

// MissingKind creates an error when no change kind was given in
// non-interactive mode.
func MissingKind(categories []string) *CLIError {
	return NewArgumentErrorWithUsage(
		"change kind is required",
		"tinychange new --kind <kind> --message <message>",
		"Valid kinds: "+strings.Join(categories, ", "),
	)
}

// UnknownKind creates an error for a kind outside the configured categories.
func UnknownKind(kind string, categories []string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("unknown change kind: %s", kind),
		"Valid kinds: "+strings.Join(categories, ", "),
		"Add new kinds to 'categories' in the config file",
	)
}

// MissingMessage creates an error when no change message was given.
func MissingMessage() *CLIError {
	return NewArgumentErrorWithUsage(
		"change message is required",
		"tinychange new --kind <kind> --message <message>",
		"Pass the message with --message",
		"Or run without --non-interactive to be prompted",
	)
}

// MalformedFragment creates an error for a fragment file that cannot be decoded.
func MalformedFragment(err error) *CLIError {
	return NewContentError(err,
		"Fix or delete the fragment file, then run the command again",
		"Fragments look like:\n      - Author: <name>\n      - Kind: <kind>\n      ---\n      <message>",
	)
}

// ChangelogStructure creates an error for a changelog the merger refuses to modify.
func ChangelogStructure(err error) *CLIError {
	return NewContentError(err,
		"Move the offending line under a known category heading or remove it",
		"Category headings must match the configured categories",
		"Nothing was written and no fragments were deleted",
	)
}

// FilenameTooLong creates an error when no fragment file name fits the limit.
func FilenameTooLong(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"could not generate a fragment file name",
		"Raise 'max_filename_length' in the config file",
		"Or switch 'naming' to a shorter style such as hash",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
