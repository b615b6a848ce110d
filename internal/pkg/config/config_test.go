package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfig_populateEmpty(t *testing.T) {

	tests := []struct {
		name  string
		input Config
		other *Config
		want  *Config
	}{
		{
			name:  "takes unset values from other",
			input: Config{},
			other: &Config{
				Frequency: ptr(0.5),
			},
			want: &Config{
				Frequency: ptr(0.5),
			},
		},
		{
			name: "keeps set values when other is empty",
			input: Config{
				Spread: ptr(2.0),
			},
			other: &Config{},
			want: &Config{
				Spread: ptr(2.0),
			},
		},
		{
			name: "set values win over other",
			input: Config{
				ColorMode: ptr("never"),
			},
			other: &Config{
				ColorMode: ptr("auto"),
			},
			want: &Config{
				ColorMode: ptr("never"),
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			originput, err := json.Marshal(tt.input)
			require.NoError(t, err)

			origother, err := json.Marshal(tt.other)
			require.NoError(t, err)

			got := tt.input.populateEmpty(tt.other)
			require.Equal(t, tt.want, got)

			afterinput, err := json.Marshal(tt.input)
			require.NoError(t, err)
			require.Equal(t, originput, afterinput, "input shouldn't be changed")

			afterother, err := json.Marshal(tt.other)
			require.NoError(t, err)
			require.Equal(t, origother, afterother, "other shouldn't be changed")
		})
	}
}

func TestReadConfigFileWritesDefaultsWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg, err := ReadConfigFile(path, &DefaultConfig)
	require.NoError(t, err)
	require.Equal(t, &DefaultConfig, cfg)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var onDisk Config
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Equal(t, DefaultConfig, onDisk)
}

func TestReadConfigFileFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"spread":9.5}`), 0600))

	cfg, err := ReadConfigFile(path, &DefaultConfig)
	require.NoError(t, err)
	require.Equal(t, 9.5, *cfg.Spread)
	require.Equal(t, *DefaultConfig.Frequency, *cfg.Frequency)
	require.Equal(t, *DefaultConfig.ColorMode, *cfg.ColorMode)
}

func TestReadConfigFileUnknownVersionUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":42,"spread":9.5}`), 0600))

	cfg, err := ReadConfigFile(path, &DefaultConfig)
	require.NoError(t, err)
	require.Equal(t, *DefaultConfig.Spread, *cfg.Spread)
}

func TestReadConfigFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version":`), 0600))

	_, err := ReadConfigFile(path, &DefaultConfig)
	require.Error(t, err)
}

func TestGrokColorMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{in: "", want: ColorModeAuto},
		{in: "auto", want: ColorModeAuto},
		{in: "Always", want: ColorModeOn},
		{in: "force", want: ColorModeOn},
		{in: "never", want: ColorModeOff},
		{in: "none", want: ColorModeOff},
		{in: "truecolor", want: ColorModeTrueColor},
		{in: "24bit", want: ColorModeTrueColor},
		{in: "256", want: ColorMode256},
		{in: "sometimes", want: ColorModeAuto, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := GrokColorMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.want, got)
		})
	}
}
