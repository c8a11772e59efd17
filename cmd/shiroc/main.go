// Command shiroc is the shiro front-end: lexer, parser, semantic
// analyzer, and multi-module build driver, exposed as a CLI.
package main

import (
	"fmt"
	"os"

	"github.com/shiro-lang/shiro/cmd/shiroc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
