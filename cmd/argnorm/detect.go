package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"argnorm/internal/reader"
)

func newDetectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "detect PATH...",
		Short: "Pick a reader for files or directories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			for _, path := range args {
				r, err := reader.Open(a.fs, path)
				if err != nil {
					return err
				}

				fmt.Fprintf(out, "%s\t%s%s\n", r.Path(), r.Format(), detail(r))
			}

			return nil
		},
	}
}

func detail(r reader.Reader) string {
	switch rd := r.(type) {
	case *reader.GRIB:
		return fmt.Sprintf("\tedition=%d", rd.Edition)
	case *reader.NetCDF:
		return "\t" + rd.Variant
	case *reader.DirectoryReader:
		return fmt.Sprintf("\t%d entries", len(rd.Entries))
	case *reader.Unknown:
		return "\t" + rd.MIME
	default:
		return ""
	}
}
