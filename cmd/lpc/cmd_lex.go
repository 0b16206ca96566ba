package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/lpc/lex"
	"github.com/dhamidi/lpc/parse"
	"github.com/dhamidi/lpc/source"
	"github.com/spf13/cobra"
)

func newLexCmd() *cobra.Command {
	var tablePath string
	var skip []string
	var strict bool

	cmd := &cobra.Command{
		Use:           "lex <file>",
		Short:         "Tokenize a file with a pattern table and print one token per line",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			table, err := lex.LoadTable(tablePath)
			if err != nil {
				return reportError(cmd, fmt.Errorf("load table: %w", err))
			}
			table.Skip = append(table.Skip, skip...)

			lexer, err := table.Lexer()
			if err != nil {
				printErrors(cmd, err)
				return err
			}
			log.Infof("table %s: %d patterns", table.Name, len(lexer.Patterns()))

			data, err := os.ReadFile(filename)
			if err != nil {
				return reportError(cmd, fmt.Errorf("read input: %w", err))
			}

			c := source.New(string(data), source.WithName(filename))
			tokens := table.Tokens(lexer)
			out := cmd.OutOrStdout()
			for {
				r, err := parse.Run(tokens, c)
				if err != nil {
					if f, ok := parse.AsFailure(err); ok {
						fmt.Fprintln(cmd.ErrOrStderr(), f.Report())
						return fmt.Errorf("lex %s: %w", filename, err)
					}
					return reportError(cmd, fmt.Errorf("lex %s: %w", filename, err))
				}

				tok := r.Value
				if strict && tok.IsUnknown() {
					return reportError(cmd, fmt.Errorf("unrecognized token %q at %s", tok.Text, tok.Location))
				}
				fmt.Fprintln(out, tok)
				if tok.IsEOS() {
					log.Debugf("%s: %d tokens cached", filename, c.CachedTokens())
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVarP(&tablePath, "table", "t", "", "pattern table file (TOML or YAML)")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "pattern ids to leave out of the output")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on characters no pattern recognizes")
	cmd.MarkFlagRequired("table")

	return cmd
}
