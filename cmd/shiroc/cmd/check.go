package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shiro-lang/shiro/internal/driver"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check <project-root>",
	Short: "Parse, declare, and type-check a project without linking",
	Long: `check runs the same pipeline as build (manifest read, parse, declare,
export merge, type-check) but never invokes the link step, even for binary
modules. Useful for editor integration or CI where only diagnostics
matter.

With --json, diagnostics are emitted as a JSON array of
{file, line, column, severity, message} objects instead of plain text,
for tooling that wants to consume them structurally.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit diagnostics as a JSON array")
}

func runCheck(_ *cobra.Command, args []string) error {
	root := args[0]

	result, buildErr := driver.Build(root, driver.Options{Verbose: verbose, Out: os.Stderr})
	if result == nil {
		return buildErr
	}

	if checkJSON {
		doc, err := result.Diagnostics.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding diagnostics as JSON: %w", err)
		}
		fmt.Println(doc)
	} else {
		printDiagnostics(result)
	}

	if buildErr != nil {
		return buildErr
	}
	if !checkJSON {
		fmt.Printf("project '%s' checks clean (%d module(s))\n", result.Project, len(result.Modules))
	}
	return nil
}

func printDiagnostics(result *driver.Result) {
	for _, d := range result.Diagnostics.All() {
		fmt.Fprintln(os.Stderr, d.String())
	}
}
