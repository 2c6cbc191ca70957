package binding

import (
	"fmt"
	"os"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

// LoadConfig loads and parses an attrbind.yaml file from the given path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return ParseConfig(data)
}

// ParseConfig parses YAML data into a Config and applies defaults.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}

	for i := range cfg.Transforms {
		t := &cfg.Transforms[i]
		if t.Func == "" {
			t.Func = t.Name
		}
	}

	return &cfg, nil
}

// DefaultConfig returns the configuration used when no attrbind.yaml exists.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// Defaults are all literals; this cannot fail.
		panic(err)
	}

	return cfg
}
