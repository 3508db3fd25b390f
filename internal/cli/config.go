package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config holds optional flag defaults loaded from a YAML file.
type config struct {
	// Width is the default output text width.
	Width int `mapstructure:"width"`
	// Log turns the log scale on by default.
	Log bool `mapstructure:"log"`
	// BinType is the default age-bin unit.
	BinType string `mapstructure:"bin_type"`
	// BinSize is the default age-bin size.
	BinSize int `mapstructure:"bin_size"`
	// MinAge is the default minimum age in bin units.
	MinAge int `mapstructure:"min_age"`
}

// defaultConfigPath returns the per-user defaults file location.
func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".duhist.yaml")
}

// loadConfig reads flag defaults from path. The default file is optional;
// a file named explicitly must exist.
func loadConfig(path string, explicit bool) (*config, error) {
	if path == "" {
		return &config{}, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &config{}, nil
		}

		return nil, err
	}

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// apply overrides flag defaults with config values for every flag the user
// did not set. Flags the command does not define are ignored.
func (c *config) apply(flags *pflag.FlagSet) {
	set := func(name, value string) {
		if f := flags.Lookup(name); f != nil && !f.Changed {
			_ = flags.Set(name, value)
		}
	}

	if c.Width > 0 {
		set("width", strconv.Itoa(c.Width))
	}

	if c.Log {
		set("log", "true")
	}

	if c.BinType != "" {
		set("type", c.BinType)
	}

	if c.BinSize > 0 {
		set("size", strconv.Itoa(c.BinSize))
	}

	if c.MinAge > 0 {
		set("age", strconv.Itoa(c.MinAge))
	}
}
