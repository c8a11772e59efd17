package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiro-lang/shiro/internal/driver"
)

var buildCmd = &cobra.Command{
	Use:   "build <project-root>",
	Short: "Run the full build pipeline over a shiro.toml project",
	Long: `build reads the project's shiro.toml manifest, parses and type-checks
every module in dependency order, and invokes the link step for binary
modules.

This tool does not implement code generation or linking itself (that is an
external collaborator); build reports which binary modules would be
linked and exits non-zero if any phase recorded an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, args []string) error {
	root := args[0]

	result, buildErr := driver.Build(root, driver.Options{Verbose: verbose, Out: os.Stderr})
	if result == nil {
		return buildErr
	}

	linkErr := driver.Link(result, nil)

	printDiagnostics(result)

	if buildErr != nil {
		return fmt.Errorf("build failed: %w", buildErr)
	}
	if linkErr != nil {
		return fmt.Errorf("link failed: %w", linkErr)
	}

	for _, mod := range result.Modules {
		if mod.Binary {
			fmt.Printf("would link binary module '%s'\n", mod.Name)
		}
	}
	fmt.Printf("built project '%s' (%d module(s))\n", result.Project, len(result.Modules))
	return nil
}
