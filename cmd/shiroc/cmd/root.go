package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "shiroc",
	Short: "shiro front-end: parse, analyze, and build shiro projects",
	Long: `shiroc is the front-end toolchain for shiro, a small statically-typed
systems language.

It lexes and parses .shiro source into an AST, runs declaration collection
and type-checking, and drives multi-module builds described by a shiro.toml
manifest. Code generation and linking are out of scope for this tool; it
stops at a fully type-checked AST per module.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
