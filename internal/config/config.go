// Package config loads and saves the coinkit configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/klingon-exchange/coinkit/internal/chain"
	"github.com/klingon-exchange/coinkit/pkg/logging"
)

// DefaultPath is where the CLI looks for its configuration file.
const DefaultPath = "~/.coinkit/config.yaml"

// Config holds all configuration for coinkit.
type Config struct {
	// Network is the default network (mainnet, testnet or regtest).
	Network chain.Network `yaml:"network"`

	Logging    LoggingConfig    `yaml:"logging"`
	Altcoins   AltcoinConfig    `yaml:"altcoins"`
	Generation GenerationConfig `yaml:"generation"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the log level (debug, info, warn, error).
	Level string `yaml:"level"`

	// TimeFormat is a Go time layout. Empty disables timestamps.
	TimeFormat string `yaml:"time_format"`
}

// AltcoinConfig controls the extended altcoin table.
type AltcoinConfig struct {
	// Enabled registers the table's coins next to the built-in ones.
	Enabled bool `yaml:"enabled"`

	// Table is the path of an external table. Empty selects the embedded one.
	Table string `yaml:"table,omitempty"`

	// Verify checks the table's leading symbols and its agreement with the
	// built-in coins at startup.
	Verify bool `yaml:"verify"`
}

// GenerationConfig holds key generation settings.
type GenerationConfig struct {
	// MinTrust is the trust level below which key generation warns.
	MinTrust int `yaml:"min_trust"`

	// MnemonicBits is the entropy size of new mnemonics.
	MnemonicBits int `yaml:"mnemonic_bits"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Network: chain.Mainnet,
		Logging: LoggingConfig{
			Level: "info",
		},
		Altcoins: AltcoinConfig{
			Enabled: false,
			Verify:  true,
		},
		Generation: GenerationConfig{
			MinTrust:     1,
			MnemonicBits: 256,
		},
	}
}

// Load reads the configuration at path on top of the defaults. A missing
// file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ExpandPath(path))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	header := []byte("# coinkit configuration\n\n")
	data = append(header, data...)

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks every field that has a fixed set of values and normalizes
// the network name.
func (c *Config) Validate() error {
	n, err := chain.ParseNetwork(string(c.Network))
	if err != nil {
		return err
	}
	c.Network = n
	if err := logging.ValidateLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Generation.MinTrust < chain.TrustDisabled || c.Generation.MinTrust > chain.TrustMax {
		return fmt.Errorf("min_trust %d outside [%d, %d]", c.Generation.MinTrust, chain.TrustDisabled, chain.TrustMax)
	}
	switch c.Generation.MnemonicBits {
	case 128, 160, 192, 224, 256:
	default:
		return fmt.Errorf("mnemonic_bits %d is not one of 128, 160, 192, 224, 256", c.Generation.MnemonicBits)
	}
	return nil
}

// Logger builds a logger from the logging section.
func (c *Config) Logger() *logging.Logger {
	return logging.New(&logging.Config{
		Level:      c.Logging.Level,
		TimeFormat: c.Logging.TimeFormat,
	})
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
