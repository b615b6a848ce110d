package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

const currentVersion = 1

type Config struct {
	Version   int      `json:"version"`
	Frequency *float64 `json:"frequency"`
	Spread    *float64 `json:"spread"`
	Force     *bool    `json:"force"`
	ColorMode *string  `json:"color-mode"`
}

var DefaultConfig = Config{
	Version:   currentVersion,
	Frequency: ptr(0.04),
	Spread:    ptr(4.0),
	Force:     ptr(false),
	ColorMode: ptr("auto"),
}

func GetDefaultConfigFilepath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("$HOME not set, can't determine a config file path")
	}
	configDirpath := filepath.Join(home, ".config", "rainbowcat")
	configFilepath := filepath.Join(configDirpath, "config.json")
	dfi, err := os.Stat(configDirpath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("config dir %q can't be read: %v", configDirpath, err)
	}
	if errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(configDirpath, 0700); err != nil {
			return "", fmt.Errorf("config dir %q can't be created: %v", configDirpath, err)
		}
	} else if !dfi.IsDir() {
		return "", fmt.Errorf("config dir %q isn't a directory", configDirpath)
	}
	ffi, err := os.Stat(configFilepath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("can't stat config file: %v", err)
	}
	if errors.Is(err, os.ErrNotExist) {
		// do nothing
	} else if !ffi.Mode().IsRegular() {
		return "", fmt.Errorf("config file %q isn't a regular file", configFilepath)
	}
	return configFilepath, nil
}

// ReadConfigFile reads the config at path, filling unset fields from dflt.
// A missing file is created with dflt's content.
func ReadConfigFile(path string, dflt *Config) (*Config, error) {
	configFile, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("opening config file %q: %v", path, err)
		}
		if err := WriteConfigFile(path, dflt); err != nil {
			return nil, err
		}
		return dflt, nil
	}
	defer configFile.Close()

	data, err := io.ReadAll(configFile)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := readConfigAndUpdate(data)
	if err != nil {
		return nil, fmt.Errorf("decoding config file: %w", err)
	}
	if cfg == nil {
		cfg = new(Config)
	}
	return cfg.populateEmpty(dflt), nil
}

func WriteConfigFile(path string, cfg *Config) error {
	cfgContent, err := json.MarshalIndent(cfg, "", "\t")
	if err != nil {
		return fmt.Errorf("marshaling config file: %v", err)
	}
	if err := os.WriteFile(path, cfgContent, 0600); err != nil {
		return fmt.Errorf("writing config file %q: %v", path, err)
	}
	return nil
}

func readConfigAndUpdate(data []byte) (*Config, error) {
	var versionCheck *ConfigVersioner
	if err := json.Unmarshal(data, &versionCheck); err != nil {
		return nil, fmt.Errorf("verifying config version: %w", err)
	}
	if versionCheck == nil {
		return nil, nil
	}
	switch versionCheck.Version {
	case 1:
		var v1 Config
		return &v1, json.Unmarshal(data, &v1)
	default:
		return nil, nil
	}
}

type ConfigVersioner struct {
	Version int `json:"version"`
}

func (cfg Config) populateEmpty(other *Config) *Config {
	out := cfg
	if out.Version == 0 {
		out.Version = other.Version
	}
	if out.Frequency == nil && other.Frequency != nil {
		out.Frequency = other.Frequency
	}
	if out.Spread == nil && other.Spread != nil {
		out.Spread = other.Spread
	}
	if out.Force == nil && other.Force != nil {
		out.Force = other.Force
	}
	if out.ColorMode == nil && other.ColorMode != nil {
		out.ColorMode = other.ColorMode
	}
	return &out
}

type ColorMode int

const (
	ColorModeOff ColorMode = iota
	ColorModeOn
	ColorModeAuto
	ColorModeTrueColor
	ColorMode256
)

func GrokColorMode(colorMode string) (ColorMode, error) {
	switch strings.ToLower(colorMode) {
	case "on", "always", "force", "true", "yes", "1":
		return ColorModeOn, nil
	case "off", "never", "none", "false", "no", "0":
		return ColorModeOff, nil
	case "auto", "tty", "maybe", "":
		return ColorModeAuto, nil
	case "truecolor", "24bit", "24-bit", "rgb":
		return ColorModeTrueColor, nil
	case "256", "256color", "256-color", "ansi256":
		return ColorMode256, nil
	default:
		return ColorModeAuto, fmt.Errorf("'%s' is not a color mode (try 'auto', 'always', 'never', 'truecolor' or '256')", colorMode)
	}
}

func ptr[T any](v T) *T {
	return &v
}
