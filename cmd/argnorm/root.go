package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"argnorm/catalog"
	"argnorm/internal/config"
	"argnorm/internal/declare"
	"argnorm/internal/logger"
	"argnorm/internal/match"
	"argnorm/internal/vocabulary"
)

// app carries the state shared by subcommands once flags are parsed.
type app struct {
	cfgFile string
	cfg     *config.Config
	fs      afero.Fs
	vocab   *vocabulary.Registry
	stderr  io.Writer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{fs: afero.NewOsFs(), stderr: stderr}

	root := &cobra.Command{
		Use:           "argnorm",
		Short:         "Check and apply argument normalization declarations",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: ./argnorm.yaml)")
	flags.String("log-level", "", "log level: debug, info, warn, error or disabled")
	flags.Bool("log-json", false, "log as JSON")
	flags.String("vocabulary-dir", "", "directory of extra vocabulary tables")
	flags.StringP("declarations", "d", "", "declaration file (default: built-in catalog)")

	root.AddCommand(
		newCheckCmd(a),
		newApplyCmd(a),
		newUnaliasCmd(a),
		newDetectCmd(a),
		newSignatureCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	v, err := config.New(a.cfgFile)
	if err != nil {
		return err
	}

	if err := bindFlags(v, cmd); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger.Init(cfg.Logger(a.stderr))

	a.cfg = cfg
	a.vocab = vocabulary.NewRegistry(cfg.VocabularyLoader(a.fs))

	logger.Debug("config loaded", "file", v.ConfigFileUsed(), "vocabulary", cfg.Vocabulary.Dir)

	return nil
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	bindings := map[string]string{
		"log.level":      "log-level",
		"log.json":       "log-json",
		"vocabulary.dir": "vocabulary-dir",
		"declarations":   "declarations",
	}

	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}

		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	return nil
}

// declarations loads the configured declaration file, or the built-in
// catalog when none is configured.
func (a *app) declarations() (*declare.File, error) {
	if a.cfg.Declarations == "" {
		return declare.Parse(catalog.Declarations)
	}

	return declare.LoadFile(a.fs, a.cfg.Declarations)
}

func (a *app) compile() (*declare.Catalog, error) {
	f, err := a.declarations()
	if err != nil {
		return nil, err
	}

	return declare.Compile(f, a.vocab)
}

func unknownOperation(name string, known []string) error {
	if suggestions := match.Suggest(name, known, 3); len(suggestions) > 0 {
		return fmt.Errorf("unknown operation %q (did you mean %s?)", name, strings.Join(suggestions, ", "))
	}

	return fmt.Errorf("unknown operation %q (have %s)", name, strings.Join(known, ", "))
}
