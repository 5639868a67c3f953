package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// layer is one configuration source. Earlier layers take precedence.
type layer struct {
	name string
	cfg  *StructuredConfig
}

type configBuilder struct {
	layers []layer
	err    error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{layers: make([]layer, 0, 3)}
}

// add loads a layer. A failing source is recorded and reported by build.
func (b *configBuilder) add(name string, load func() (*StructuredConfig, error)) *configBuilder {
	cfg, err := load()
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", name, err))
		return b
	}
	b.layers = append(b.layers, layer{name: name, cfg: cfg})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	return b.add("env", func() (*StructuredConfig, error) {
		cfg := &StructuredConfig{}
		return cfg, parseEnv(cfg)
	})
}

// parseEnv fills cfg from the env and envPrefix tags of [StructuredConfig].
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	return b.add("flags", func() (*StructuredConfig, error) {
		return parseFlags(args)
	})
}

// withJSON loads the file named by the first layer that sets a JSON path.
func (b *configBuilder) withJSON() *configBuilder {
	for _, l := range b.layers {
		if path := l.cfg.JSONFilePath; path != "" {
			return b.add("json "+path, func() (*StructuredConfig, error) {
				return parseJSON(path)
			})
		}
	}
	return b
}

// build merges the layers, fills defaults and validates the result.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, l := range b.layers {
		if err := mergo.Merge(merged, l.cfg); err != nil {
			return nil, fmt.Errorf("error merging %s config: %w", l.name, err)
		}
	}
	merged.applyDefaults()

	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}
