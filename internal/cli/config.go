package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/dbgtools/closetig/pkg/errors"
)

// Config holds settings that can be supplied in a TOML file instead of flags.
// Flags always win over file values; file values win over built-in defaults.
type Config struct {
	Workers       int   `toml:"workers"`
	Check         bool  `toml:"check"`
	SortBySupport *bool `toml:"sort_by_support"`
}

const configFileName = "closetig.toml"

// loadConfig reads a TOML config file. With an explicit path a missing or
// malformed file is an error; without one the default locations are tried in
// order and a missing file yields the zero Config.
func loadConfig(path string) (Config, error) {
	var cfg Config
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", path)
		}
		return cfg, nil
	}
	for _, candidate := range defaultConfigPaths() {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(candidate, &cfg); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config %s", candidate)
		}
		return cfg, nil
	}
	return Config{}, nil
}

// defaultConfigPaths returns the config lookup order: working directory
// first, then the per-user config directory.
func defaultConfigPaths() []string {
	paths := []string{configFileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "closetig", "config.toml"))
	}
	return paths
}
