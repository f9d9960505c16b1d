package main

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"argnorm/internal/analyze"
	"argnorm/internal/declare"
	"argnorm/internal/diagnostic"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		dump   bool
		goSigs bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a declaration file",
		Long: `Validate a declaration file: schema, vocabulary tables and every argument
pipeline. With --go the declared arguments are also checked against the
parameters of the Go functions named by the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := a.declarations()
			if err != nil {
				return err
			}

			diags := declare.Validate(f, a.vocab)

			if goSigs && f.Package != "" {
				index, err := analyze.NewAnalyzer().LoadPackages(f.Package)
				if err != nil {
					return err
				}

				diags.Merge(*analyze.CheckDeclared(index, f))
			}

			out := cmd.OutOrStdout()
			printDiagnostics(out, diags)

			if dump && diags.IsValid() {
				c, err := declare.Compile(f, a.vocab)
				if err != nil {
					return err
				}

				dumpPipelines(out, c)
			}

			if err := diags.Error(); err != nil {
				return fmt.Errorf("%d error(s) in declarations", len(diags.Errors))
			}

			fmt.Fprintf(out, "ok: %d operation(s)\n", len(f.Operations))

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump the compiled pipelines")
	cmd.Flags().BoolVar(&goSigs, "go", false, "check argument names against Go function signatures")

	return cmd
}

func printDiagnostics(w io.Writer, d *diagnostic.Diagnostics) {
	for _, item := range d.All() {
		fmt.Fprintf(w, "%s: %s\n", item.Severity, item)
	}
}

func dumpPipelines(w io.Writer, c *declare.Catalog) {
	cfg := spew.ConfigState{Indent: "  ", MaxDepth: 3, DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

	for _, name := range c.Operations() {
		sig, _ := c.Operation(name)

		for _, arg := range sig.Arguments() {
			p, err := arg.Pipeline()
			if err != nil {
				continue
			}

			fmt.Fprintf(w, "%s.%s: %s\n", name, arg.Name(), p)
			cfg.Fdump(w, arg.Sources())
		}
	}
}
