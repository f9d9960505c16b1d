package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"argnorm/internal/analyze"
	"argnorm/internal/binder"
	"argnorm/internal/normalize"
)

func newSignatureCmd(a *app) *cobra.Command {
	var goSigs bool

	cmd := &cobra.Command{
		Use:   "signature [OPERATION...]",
		Short: "Show the rules and pipeline of every argument",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.declarations()
			if err != nil {
				return err
			}

			c, err := a.compile()
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = c.Operations()
			}

			var index *analyze.SignatureIndex
			if goSigs && f.Package != "" {
				index, err = analyze.NewAnalyzer().LoadPackages(f.Package)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()

			for _, name := range names {
				sig, ok := c.Operation(name)
				if !ok {
					return unknownOperation(name, c.Operations())
				}

				header := name
				if index != nil {
					if params, found := index.Params(f.Package, c.Func(name)); found {
						header += fmt.Sprintf(" -> %s.%s(%s)", f.Package, c.Func(name), strings.Join(params, ", "))
					}
				}

				fmt.Fprintln(out, header)
				printSignature(out, sig)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&goSigs, "go", false, "show the Go function parameters")

	return cmd
}

func printSignature(w io.Writer, sig *binder.Signature) {
	for _, arg := range sig.Arguments() {
		p, err := arg.Pipeline()
		if err != nil {
			fmt.Fprintf(w, "  %s: %v\n", arg.Name(), err)
			continue
		}

		fmt.Fprintf(w, "  %s: %s\n", arg.Name(), p)

		for _, src := range arg.Sources() {
			fmt.Fprintf(w, "    %s\n", describeSource(src))
		}
	}
}

func describeSource(c normalize.Constraint) string {
	parts := []string{c.Variant.String()}

	if c.Type != nil {
		parts = append(parts, "type="+c.Type.Name())
	}

	if len(c.Values) > 0 {
		parts = append(parts, "values=["+strings.Join(c.Values, ", ")+"]")
	}

	if c.Aliases != nil {
		parts = append(parts, fmt.Sprintf("aliases=%v", c.Aliases))
	}

	if c.Multiple != normalize.Unspecified {
		parts = append(parts, "multiple="+c.Multiple.String())
	}

	return strings.Join(parts, " ")
}
