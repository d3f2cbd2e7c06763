package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds importer configuration loadable from a YAML file. CLI flags
// take precedence over file values; file values take precedence over the
// built-in defaults.
type Config struct {
	BatchSize  int      `yaml:"batch_size" json:"batch_size"`
	Extensions []string `yaml:"extensions" json:"extensions"`
	Encodings  []string `yaml:"encodings" json:"encodings"`
	DebugSQL   bool     `yaml:"debug_sql" json:"debug_sql"`
}

// Default returns sensible defaults.
func Default() Config {
	return Config{
		BatchSize:  100,
		Extensions: []string{".pgn"},
		Encodings:  []string{"utf-8", "latin-1", "iso-8859-1"},
	}
}

// Load parses YAML bytes into a Config with defaults applied.
func Load(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return applyDefaults(cfg), nil
}

// LoadFile reads and parses a YAML config file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Load(data)
}

func applyDefaults(cfg Config) Config {
	def := Default()
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = def.BatchSize
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = def.Extensions
	}
	if len(cfg.Encodings) == 0 {
		cfg.Encodings = def.Encodings
	}
	return cfg
}
