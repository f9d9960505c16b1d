package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newUnaliasCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "unalias TABLE [ALIAS...]",
		Short: "Resolve aliases through a vocabulary table",
		Long: `Resolve aliases through a vocabulary table. Unknown aliases are printed
unchanged. With --list the available tables are printed instead.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list {
				return cobra.NoArgs(cmd, args)
			}

			return cobra.MinimumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list {
				tables, err := a.vocab.Tables()
				if err != nil {
					return err
				}

				fmt.Fprintln(out, strings.Join(tables, "\n"))

				return nil
			}

			table := args[0]

			ok, err := a.vocab.Has(table)
			if err != nil {
				return err
			}

			if !ok {
				return fmt.Errorf("unknown vocabulary table %q", table)
			}

			for _, alias := range args[1:] {
				fmt.Fprintf(out, "%s\t%s\n", alias, a.vocab.Unalias(table, alias))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "list vocabulary tables")

	return cmd
}
