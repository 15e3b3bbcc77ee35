package cli

import (
	"github.com/ariel-frischer/tinychange/internal/config"
	clierrors "github.com/ariel-frischer/tinychange/internal/errors"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a tinychange config file",
	Long: `Create a config file with the default settings in the current directory.

The format follows the file extension: tinychange.toml (default),
tinychange.yml, tinychange.yaml or tinychange.json. Use the global --config
flag to pick another name. An existing file is never overwritten.`,
	Example: `  # Create tinychange.toml
  tinychange init

  # Create a YAML config instead
  tinychange init --config tinychange.yml`,
	Args: noArgs,
	RunE: runInit,
}

func init() {
	initCmd.GroupID = GroupSetup
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	p := printerFor(cmd)
	path := configPathOrDefault()

	if _, err := config.DefaultTemplate(path); err != nil {
		return clierrors.NewArgumentError(err.Error(), "Use a .toml, .yml, .yaml or .json file name")
	}

	if err := config.WriteDefault(path); err != nil {
		return err
	}

	p.Success("Created config file", displayPath(path))
	p.Println("")
	p.Println("Next steps:")
	p.Println("  1. Adjust the categories and paths in " + displayPath(path) + " if needed")
	p.Println("  2. Record a change with: tinychange new")
	p.Println("  3. Merge pending changes into the changelog with: tinychange merge")
	return nil
}
