package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/netdata/hostsmerge/pipeline/clean"
	"github.com/netdata/hostsmerge/pipeline/export"
	"github.com/netdata/hostsmerge/pipeline/fetch"
	"github.com/netdata/hostsmerge/pkg/metrics"

	"github.com/ilyam8/hashstructure"
	"gopkg.in/yaml.v2"
)

const DefaultName = "default"

type Config struct {
	Pipeline *PipelineConfig
	Source   string
}

type PipelineConfig struct {
	Name    string         `yaml:"name"`
	Sources []string       `yaml:"sources"`
	Fetch   fetch.Config   `yaml:"fetch"`
	Clean   clean.Config   `yaml:"clean"`
	Export  export.Config  `yaml:"export"`
	Metrics metrics.Config `yaml:"metrics"`
}

func (c PipelineConfig) Hash() uint64 { hash, _ := hashstructure.Hash(c, nil); return hash }

// Default returns the configuration used when no config source is given.
func Default() PipelineConfig {
	var cfg PipelineConfig
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills the fields left empty. Stage level defaults (timeout,
// comment prefixes) are owned by the stages themselves.
func (c *PipelineConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = DefaultName
	}
	if len(c.Sources) == 0 {
		c.Sources = append([]string(nil), DefaultSources...)
	}
	if c.Export.Filename == "" {
		c.Export.Filename = export.DefaultFilename
	}
}

func (c PipelineConfig) Validate() error {
	for i, src := range c.Sources {
		if strings.TrimSpace(src) == "" {
			return fmt.Errorf("'sources' empty url [%d]", i+1)
		}
	}
	return nil
}

// Parse decodes a YAML pipeline config, fills in the defaults and validates
// the result. Unknown keys are rejected. A document without content yields
// a nil config.
func Parse(data []byte) (*PipelineConfig, error) {
	var cfg *PipelineConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, nil
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads a YAML pipeline config. An empty file yields the defaults.
func Load(path string) (PipelineConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PipelineConfig{}, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return PipelineConfig{}, fmt.Errorf("'%s': %v", path, err)
	}
	if cfg == nil {
		return Default(), nil
	}
	return *cfg, nil
}
