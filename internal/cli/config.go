package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Config describes the partition a command operates on.
type Config struct {
	// Blocks is the partition size in blocks.
	Blocks uint32 `yaml:"blocks"`

	// Store is the directory holding the block files.
	Store string `yaml:"store"`
}

const defaultConfigFile = "octofs.yaml"

// defaultConfig matches the boot partition the reference harness
// uses.
func defaultConfig() *Config {
	return &Config{
		Blocks: 200000,
		Store:  "blocks",
	}
}

// LoadConfig reads a yaml config, layering it over the defaults. A
// missing file at the default path is fine; an explicitly requested
// file must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Blocks == 0 {
		return nil, fmt.Errorf("config %s: blocks must be positive", path)
	}
	if cfg.Store == "" {
		return nil, fmt.Errorf("config %s: store must be set", path)
	}

	return cfg, nil
}

// configFlags wires the shared --config/--store/--blocks flags and
// resolves them into a Config.
type configFlags struct {
	configFile string
	store      string
	blocks     uint32
}

func (cf *configFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cf.configFile, "config", "", "path to the partition config (default octofs.yaml if present)")
	cmd.Flags().StringVar(&cf.store, "store", "", "directory holding the block files (overrides config)")
	cmd.Flags().Uint32Var(&cf.blocks, "blocks", 0, "partition size in blocks (overrides config)")
}

func (cf *configFlags) resolve() (*Config, error) {
	cfg, err := LoadConfig(cf.configFile)
	if err != nil {
		return nil, err
	}

	if cf.store != "" {
		cfg.Store = cf.store
	}
	if cf.blocks != 0 {
		cfg.Blocks = cf.blocks
	}

	return cfg, nil
}
