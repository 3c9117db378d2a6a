package csvtojs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/csvtojs/pkg/adapters/csvsource"
	"github.com/aretw0/csvtojs/pkg/adapters/jsemit"
	"github.com/aretw0/csvtojs/pkg/watch"
)

// Config is the on-disk configuration, usually csvtojs.yaml.
// Command-line flags override the values it holds.
type Config struct {
	Out      string      `yaml:"out"`
	VarName  string      `yaml:"var_name"`
	Compact  bool        `yaml:"compact"`
	Encoding string      `yaml:"encoding"`
	Batch    BatchConfig `yaml:"batch"`
	Watch    WatchConfig `yaml:"watch"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	// OutDir receives the generated files. Empty means next to each input.
	OutDir string `yaml:"out_dir"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Out:      jsemit.DefaultOutput,
		VarName:  jsemit.DefaultVarName,
		Encoding: csvsource.EncodingUTF8,
		Watch:    WatchConfig{Debounce: watch.DefaultDebounce},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that cannot be caught by decoding.
func (c Config) Validate() error {
	if c.Out == "" {
		return errors.New("out cannot be empty")
	}
	if c.VarName == "" {
		return errors.New("var_name cannot be empty")
	}
	if c.Watch.Debounce < 0 {
		return errors.New("watch.debounce cannot be negative")
	}
	return csvsource.ValidateEncoding(c.Encoding)
}

// Options converts the config into service options.
func (c Config) Options() []Option {
	return []Option{
		WithVarName(c.VarName),
		WithCompact(c.Compact),
		WithEncoding(c.Encoding),
	}
}
