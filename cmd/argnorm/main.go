// Package main provides the CLI entrypoint for argnorm.
//
// argnorm checks and exercises argument normalization declarations:
//   - check: validate a declaration file and cross-check Go signatures
//   - apply: normalize keyword arguments for an operation
//   - unalias: resolve aliases through a vocabulary table
//   - detect: pick a reader for files on disk
//   - signature: show the rules and pipeline of every argument
package main

import (
	"os"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
