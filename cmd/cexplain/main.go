package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cexplain",
	Short: "cexplain — C declaration reader",
	Long: `cexplain reads C variable declarations and says what they mean in
plain English.

Commands:
  explain  Translate declarations from files or standard input
  repl     Interactive declaration prompt
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(explainCmd, replCmd)
}
