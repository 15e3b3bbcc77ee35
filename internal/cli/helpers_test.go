package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ariel-frischer/tinychange/internal/fragment"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// Commands share package-level flag variables and the root command, so
// tests in this package do not run in parallel.

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// executeCommand runs the root command with args and stdin, returning what
// was written to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := execute(rootCmd)
	return stdout.String(), stderr.String(), err
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// newProject creates a project directory with a tinychange.toml holding
// content, makes it the working directory and hides any git identity of
// the machine running the tests.
func newProject(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tinychange.toml"), []byte(content), 0o644))
	t.Chdir(dir)
	isolateGit(t)
	return dir
}

// isolateGit points git's global configuration at an empty home directory.
func isolateGit(t *testing.T) {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("GIT_AUTHOR_NAME", "")
}

// addFragment writes an encoded fragment into the project's fragments dir.
func addFragment(t *testing.T, dir, name string, c fragment.Change) string {
	t.Helper()

	fragmentsDir := filepath.Join(dir, ".tinychange")
	require.NoError(t, os.MkdirAll(fragmentsDir, 0o755))
	path := filepath.Join(fragmentsDir, name)
	require.NoError(t, os.WriteFile(path, []byte(fragment.Encode(c)), 0o644))
	return path
}

// loadFragments returns the fragments currently in the project.
func loadFragments(t *testing.T, dir string) []fragment.Loaded {
	t.Helper()

	loaded, err := fragment.LoadDir(filepath.Join(dir, ".tinychange"), []string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"})
	require.NoError(t, err)
	return loaded
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
