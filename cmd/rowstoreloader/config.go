package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"rowstore/pkg/schema"
)

// loaderConfig is the TOML schema for this harness: the relation to
// build, the fixed region size every sub-block gets, and the load
// parameters for the random-tuple generator.
type loaderConfig struct {
	RegionSizeBytes int               `toml:"region_size_bytes"`
	NumTuples       int               `toml:"num_tuples"`
	BatchSize       int               `toml:"batch_size"`
	Workers         int               `toml:"workers"`
	Attribute       []attributeConfig `toml:"attribute"`
}

type attributeConfig struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Width    int    `toml:"width"`
	Nullable bool   `toml:"nullable"`
}

func loadConfig(path string) (*loaderConfig, error) {
	var cfg loaderConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("rowstoreloader: reading config: %w", err)
	}
	if len(cfg.Attribute) == 0 {
		return nil, fmt.Errorf("rowstoreloader: config declares no attributes")
	}
	if cfg.RegionSizeBytes <= 0 {
		cfg.RegionSizeBytes = 1 << 20
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 512
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	return &cfg, nil
}

func (c *loaderConfig) buildRelation() (*schema.Relation, error) {
	b := schema.NewBuilder()
	for _, a := range c.Attribute {
		tag, err := parseTypeTag(a.Type)
		if err != nil {
			return nil, fmt.Errorf("rowstoreloader: attribute %q: %w", a.Name, err)
		}
		b.Add(a.Name, tag, a.Width, a.Nullable)
	}
	return b.Build()
}

func parseTypeTag(name string) (schema.TypeTag, error) {
	switch name {
	case "int32":
		return schema.Int32, nil
	case "int64":
		return schema.Int64, nil
	case "float64":
		return schema.Float64, nil
	case "char":
		return schema.CharN, nil
	default:
		return 0, fmt.Errorf("unknown attribute type %q", name)
	}
}
