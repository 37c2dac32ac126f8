// Package config loads the settings the public client applies to logging, identifiers,
// construction and the membership journal.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"spikenet/internal/journal"
	"spikenet/internal/logging"
	"spikenet/internal/uid"
)

type Config struct {
	Log          LogConfig          `yaml:"log"`
	UID          UIDConfig          `yaml:"uid"`
	Construction ConstructionConfig `yaml:"construction"`
	Journal      JournalConfig      `yaml:"journal"`
}

type LogConfig struct {
	Mode  string `yaml:"mode"`
	Level string `yaml:"level"`
}

// UIDConfig selects the UID generator. The sequential generator is shared by the whole
// process; Start is the lowest value it will issue from then on. The random generator
// ignores Start.
type UIDConfig struct {
	Generator string `yaml:"generator"`
	Start     uint64 `yaml:"start"`
}

type ConstructionConfig struct {
	Workers int `yaml:"workers"`
}

type JournalConfig struct {
	Store      string `yaml:"store"`
	SQLitePath string `yaml:"sqlite_path"`
}

func Default() Config {
	return Config{
		Log:          LogConfig{Mode: logging.ModeNop},
		UID:          UIDConfig{Generator: uid.GeneratorRandom, Start: 1},
		Construction: ConstructionConfig{Workers: 1},
		Journal:      JournalConfig{Store: journal.StoreNone, SQLitePath: "spikenet.db"},
	}
}

// Load reads a YAML (or JSON) file on top of Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default and validates the result. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Log.Mode = strings.ToLower(strings.TrimSpace(c.Log.Mode))
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.UID.Generator = strings.ToLower(strings.TrimSpace(c.UID.Generator))
	c.Journal.Store = strings.ToLower(strings.TrimSpace(c.Journal.Store))
}

func (c Config) Validate() error {
	switch c.Log.Mode {
	case "", logging.ModeNop, logging.ModeDevelopment, logging.ModeProduction:
	default:
		return fmt.Errorf("log.mode: unsupported value %q", c.Log.Mode)
	}
	switch c.UID.Generator {
	case "", uid.GeneratorRandom, uid.GeneratorSequential:
	default:
		return fmt.Errorf("uid.generator: unsupported value %q", c.UID.Generator)
	}
	if c.Construction.Workers < 0 {
		return fmt.Errorf("construction.workers: must be non-negative, got %d", c.Construction.Workers)
	}
	switch c.Journal.Store {
	case "", journal.StoreNone, journal.StoreMemory:
	case journal.StoreSQLite:
		if strings.TrimSpace(c.Journal.SQLitePath) == "" {
			return errors.New("journal.sqlite_path: required for the sqlite store")
		}
	default:
		return fmt.Errorf("journal.store: unsupported value %q", c.Journal.Store)
	}
	return nil
}

// Generator returns the UID generator selected by the config.
func (c Config) Generator() uid.Generator {
	if c.UID.Generator == uid.GeneratorSequential {
		return uid.ProcessSequentialGenerator(c.UID.Start)
	}
	return uid.RandomGenerator{}
}
