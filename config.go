package rainbowcat

import (
	"math"
	"os"
)

const (
	DefaultFrequency = 0.04
	DefaultSpread    = 4.0
)

// Config is the immutable configuration of one run.
type Config struct {
	frequency  float64
	spread     float64
	offset     float64
	forceColor bool
}

// NewConfig validates frequency and spread and picks this process's random
// starting offset.
//
// frequency is the number of full color cycles per 2π of stream position and
// spread the number of glyphs it takes to advance the position by one.
func NewConfig(frequency, spread float64, forceColor bool) (*Config, error) {
	if !finitePositive(frequency) {
		return nil, &ConfigError{Field: "frequency", Value: frequency}
	}
	if !finitePositive(spread) {
		return nil, &ConfigError{Field: "spread", Value: spread}
	}
	return &Config{
		frequency:  frequency,
		spread:     spread,
		offset:     randomOffset(uint32(os.Getpid())),
		forceColor: forceColor,
	}, nil
}

// DefaultConfig returns a config with the default frequency and spread.
func DefaultConfig() *Config {
	cfg, err := NewConfig(DefaultFrequency, DefaultSpread, false)
	if err != nil {
		panic(err)
	}
	return cfg
}

// WithOffset returns a copy of c starting at a fixed stream position instead
// of a random one. Two runs with the same offset color the same input
// identically.
func (c *Config) WithOffset(offset float64) (*Config, error) {
	if math.IsNaN(offset) || math.IsInf(offset, 0) || offset < 0 {
		return nil, &ConfigError{Field: "offset", Value: offset}
	}
	cp := *c
	cp.offset = offset
	return &cp, nil
}

func (c *Config) Frequency() float64 { return c.frequency }
func (c *Config) Spread() float64    { return c.spread }
func (c *Config) Offset() float64    { return c.offset }
func (c *Config) ForceColor() bool   { return c.forceColor }

func finitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// randomOffset spreads a process id over [0, 1000] with Knuth's
// multiplicative hash, so that consecutive runs start on different colors
// without asking the OS for entropy.
func randomOffset(pid uint32) float64 {
	hash := pid * 2654435769
	return float64(hash) / float64(math.MaxUint32) * 1000
}
