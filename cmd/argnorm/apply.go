package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"gopkg.in/yaml.v3"

	"argnorm/catalog"
	"argnorm/internal/binder"
	"argnorm/internal/normalize"
	"argnorm/internal/vocabulary"
)

func newApplyCmd(a *app) *cobra.Command {
	var (
		run   bool
		color bool
	)

	cmd := &cobra.Command{
		Use:   "apply OPERATION [VALUE...] [NAME=VALUE...]",
		Short: "Normalize arguments for an operation",
		Long: `Normalize arguments for an operation and print them as JSON.

Values are YAML: 2t is a string, 131 a number, [u, v] a list and (u) a
one-element tuple. Bare values are assigned to arguments in declaration
order. With --run the built-in catalog operation is called with the
normalized arguments and its result is printed instead.`,
		Example: `  argnorm apply retrieve param=2t levtype=surface
  argnorm apply retrieve "[u, v]" pl levelist=500`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.compile()
			if err != nil {
				return err
			}

			sig, ok := c.Operation(args[0])
			if !ok {
				return unknownOperation(args[0], c.Operations())
			}

			positional, kw, err := parseValues(args[1:])
			if err != nil {
				return err
			}

			kw, err = sig.Kwargs(positional, kw)
			if err != nil {
				return err
			}

			var result any

			if run {
				op, ok := catalog.Operations()[args[0]]
				if !ok {
					return fmt.Errorf("operation %q has no implementation", args[0])
				}

				bound, err := binder.Bind(sig, op)
				if err != nil {
					return err
				}

				result, err = bound(vocabulary.WithRegistry(cmd.Context(), a.vocab), kw)
				if err != nil {
					return err
				}
			} else {
				result, err = sig.Normalize(kw)
				if err != nil {
					return err
				}
			}

			return writeJSON(cmd, result, color)
		},
	}

	cmd.Flags().BoolVar(&run, "run", false, "call the operation with the normalized arguments")
	cmd.Flags().BoolVar(&color, "color", false, "colorize JSON output")

	return cmd
}

// parseValues splits NAME=VALUE pairs from bare values.
func parseValues(args []string) ([]any, binder.Kwargs, error) {
	var positional []any

	kw := binder.Kwargs{}

	for _, arg := range args {
		name, raw, isKeyword := strings.Cut(arg, "=")
		if !isKeyword {
			raw = arg
		}

		v, err := parseValue(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("value %q: %w", raw, err)
		}

		if !isKeyword {
			positional = append(positional, v)
			continue
		}

		if _, dup := kw[name]; dup {
			return nil, nil, fmt.Errorf("argument %q given twice", name)
		}

		kw[name] = v
	}

	return positional, kw, nil
}

func parseValue(raw string) (any, error) {
	if inner, ok := strings.CutPrefix(raw, "("); ok && strings.HasSuffix(inner, ")") {
		var items []any
		if err := yaml.Unmarshal([]byte("["+strings.TrimSuffix(inner, ")")+"]"), &items); err != nil {
			return nil, err
		}

		return normalize.Tuple(items), nil
	}

	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
		return nil, err
	}

	return v, nil
}

func writeJSON(cmd *cobra.Command, v any, color bool) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	data = pretty.PrettyOptions(data, &pretty.Options{Indent: "  ", SortKeys: true})
	if color {
		data = pretty.Color(data, nil)
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
