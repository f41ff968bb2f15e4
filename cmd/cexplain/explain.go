package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cexplain/cexplain/cdecl"
)

var explainCmd = &cobra.Command{
	Use:   "explain [file...]",
	Short: "Translate declarations from files or standard input",
	Long: `Translate every C declaration in the given files to English, one line
per declaration. With no arguments, declarations are read from standard
input until end of input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return explainStream("stdin", os.Stdin, cmd.OutOrStdout())
		}
		for _, path := range args {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			err = explainStream(path, f, cmd.OutOrStdout())
			f.Close()
			if err != nil {
				return err
			}
		}
		return nil
	},
}

// explainStream translates declarations from r until the stream ends or a
// declaration fails. Running out of input between declarations is a clean
// stop; anywhere else it is an error like any other.
func explainStream(name string, r io.Reader, w io.Writer) error {
	lx := cdecl.NewLexer(r)
	for {
		var errinfo cdecl.ErrInfo
		status := cdecl.ParseWith(lx, w, &errinfo)
		switch {
		case status == cdecl.ParseOK:
		case status == cdecl.ParseLexerErr && errinfo.Lexer.Status == cdecl.LexEOF:
			return nil
		default:
			return fmt.Errorf("%s: %w", name, errinfo.Err())
		}
	}
}
