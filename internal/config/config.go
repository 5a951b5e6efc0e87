// Package config loads ez settings from .ez.yml, EZ_* environment variables
// and command-line flags.
//
// Precedence, highest first: flag, environment, config file, prompt/default.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	envPrefix = "EZ"

	// FileName is the config file looked up in the working directory, then $HOME.
	FileName = ".ez.yml"
)

// Keys that can come from any source. Flags with the same name are bound to them.
const (
	KeyStack     = "stack"
	KeyModule    = "module"
	KeySchema    = "schema"
	KeyOutput    = "output"
	KeyPrefix    = "prefix"
	KeySuffix    = "suffix"
	KeyTemplates = "templates"
	KeyConflict  = "conflict"
)

var keys = []string{KeyStack, KeyModule, KeySchema, KeyOutput, KeyPrefix, KeySuffix, KeyTemplates, KeyConflict}

// Conflict strategies accepted by the conflict key.
const (
	ConflictOverwrite = "overwrite"
	ConflictSkip      = "skip"
	ConflictDiff      = "diff"
	ConflictAsk       = "ask"
)

// ErrInvalidConfig reports a config value outside its allowed set.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the merged configuration for one invocation.
type Config struct {
	Stack     string `mapstructure:"stack"`
	Module    string `mapstructure:"module"`
	Schema    string `mapstructure:"schema"`
	Output    string `mapstructure:"output"`
	Prefix    string `mapstructure:"prefix"`
	Suffix    string `mapstructure:"suffix"`
	Templates string `mapstructure:"templates"`
	Conflict  string `mapstructure:"conflict"`
}

// Validate checks values that have a fixed set of choices.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Conflict) {
	case "", ConflictOverwrite, ConflictSkip, ConflictDiff, ConflictAsk:
		return nil
	default:
		return fmt.Errorf("%w: conflict must be one of overwrite, skip, diff, ask (got %q)", ErrInvalidConfig, c.Conflict)
	}
}

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with EZ_* environment bindings.
func NewLoader() *Loader {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	return &Loader{v: v}
}

// BindFlags binds every flag in fs whose name is a config key.
func (l *Loader) BindFlags(fs *pflag.FlagSet) error {
	for _, k := range keys {
		f := fs.Lookup(k)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(k, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", k, err)
		}
	}
	return nil
}

// Load reads configFile, or .ez.yml from the working directory or $HOME
// when configFile is empty. A missing default config file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
		l.v.SetConfigType("yaml")
	} else {
		l.v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			l.v.AddConfigPath(home)
		}
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsSet reports whether key was given by a flag, the environment or the
// config file. Unset keys are asked for interactively.
func (l *Loader) IsSet(key string) bool {
	return l.v.IsSet(key)
}

// ConfigFileUsed returns the path of the config file read, or "".
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}
