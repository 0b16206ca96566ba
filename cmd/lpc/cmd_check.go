package main

import (
	"fmt"

	"github.com/dhamidi/lpc/lex"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "check <table>",
		Short:         "Load a pattern table and verify that it builds a lexer",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := lex.LoadTable(args[0])
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			lexer, err := table.Lexer()
			if err != nil {
				printErrors(cmd, err)
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d patterns\n", table.Name, len(lexer.Patterns()))
			return nil
		},
	}

	return cmd
}

// reportError prints err to the command's stderr and returns it.
func reportError(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	return err
}

func printErrors(cmd *cobra.Command, err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			fmt.Fprintln(cmd.ErrOrStderr(), e)
		}
		return
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err)
}
