package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	apperrors "github.com/vivekpd15/qr2scad/pkg/errors"
)

// Config holds optional defaults loaded from qr2scad.toml. All fields
// are pointers so an absent key is distinguishable from an explicit
// zero (border = 0 disables the quiet zone).
type Config struct {
	Block struct {
		Size    *float64 `toml:"size"`
		Padding *float64 `toml:"padding"`
	} `toml:"block"`

	Detect struct {
		PDPSide *int `toml:"pdp_side"`
	} `toml:"detect"`

	Generate struct {
		Level   *string `toml:"level"`
		BoxSize *int    `toml:"box_size"`
		Border  *int    `toml:"border"`
	} `toml:"generate"`
}

// loadConfig reads the config file at path, or the default location
// when path is empty. A missing default file is not an error; an
// explicitly named file must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath()
		if path == "" {
			return cfg, nil
		}
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return cfg, nil
}

// defaultConfigPath returns the XDG config location
// (~/.config/qr2scad/qr2scad.toml) or empty when no home is known.
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, appName+".toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, appName+".toml")
}
