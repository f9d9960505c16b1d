// Package config loads argnorm settings from flags, environment variables
// (prefix ARGNORM_) and an optional argnorm.yaml, in that precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"argnorm/internal/logger"
	"argnorm/internal/vocabulary"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ARGNORM"

// Config holds the settings of the argnorm command.
type Config struct {
	Log          LogConfig        `mapstructure:"log"`
	Vocabulary   VocabularyConfig `mapstructure:"vocabulary"`
	Declarations string           `mapstructure:"declarations"`
}

// LogConfig configures the process-wide logger.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error disabled"`
	JSON  bool   `mapstructure:"json"`
}

// VocabularyConfig configures extra alias tables.
type VocabularyConfig struct {
	// Dir holds *.yaml tables merged over the embedded ones.
	Dir string `mapstructure:"dir"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Log: LogConfig{Level: string(logger.WarnLevel)},
	}
}

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("vocabulary.dir", d.Vocabulary.Dir)
	v.SetDefault("declarations", d.Declarations)
}

// New returns a viper instance reading the environment and, when present,
// cfgFile or ./argnorm.yaml.
func New(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("argnorm")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return v, nil
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Defaults()
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)

	validateOnce.Do(func() {
		validate = validator.New()
	})

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

// Logger returns the logger configuration writing to out.
func (c *Config) Logger(out io.Writer) *logger.Config {
	return &logger.Config{
		Level:  logger.LogLevel(c.Log.Level),
		Output: out,
		JSON:   c.Log.JSON,
	}
}

// VocabularyLoader returns the loader for the configured tables. Tables in
// Vocabulary.Dir take precedence over the embedded ones.
func (c *Config) VocabularyLoader(fs afero.Fs) vocabulary.Loader {
	if c.Vocabulary.Dir == "" {
		return vocabulary.EmbeddedLoader{}
	}

	return vocabulary.MultiLoader{
		vocabulary.DirLoader{Fs: fs, Dir: c.Vocabulary.Dir},
		vocabulary.EmbeddedLoader{},
	}
}
