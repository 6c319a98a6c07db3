// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Coordinate space partitioning modes: one shared space, one space per
// structural type, or one space per labeling-offset and type pair.
const (
	PartitionUnified    = "unified"
	PartitionType       = "type"
	PartitionOffsetType = "offset-type"
)

// Config is the root-level settings struct, populated from defaults
// and the executing command's flags.
type Config struct {
	// decimal places used when rounding continuous coordinates before
	// deduplication; absorbs float jitter while preserving intended
	// distinctness
	Precision int `mapstructure:"precision"`

	// how the batch is split into independent coordinate spaces:
	// unified, type, or offset-type
	Partition string `mapstructure:"partition"`

	// restrict a type-partitioned run to a single structural type
	// ("type1" or "type2")
	OnlyType string `mapstructure:"type"`

	// write output even when global index collisions are found; loud
	// opt-in for exploratory runs, never the default
	AllowCollisions bool `mapstructure:"allow-collisions"`

	// comma separated identity keywords excluded in addition to the
	// built-in incompatible classes
	Exclude string `mapstructure:"exclude"`

	// top of the canonical structural numbering range
	CanonicalMax int `mapstructure:"canonical-max"`
}

// New returns a Config populated by Viper from defaults and the given
// flag set. Commands share flag names like precision, so the bind
// happens here at run time: an init-time bind would leave every shared
// key pointing at whichever command registered last.
func New(flags *pflag.FlagSet) *Config {
	if flags != nil {
		if err := viper.BindPFlags(flags); err != nil {
			log.Fatalf("unable to bind settings: %v", err)
		}
	}

	viper.SetDefault("precision", 6)
	viper.SetDefault("partition", PartitionUnified)
	viper.SetDefault("canonical-max", 76)

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings: %v", err)
	}

	return &c
}

// Exclusions splits the exclude setting into a list of keywords to run
// against molecule identities.
func (c *Config) Exclusions() []string {
	splitFunc := func(r rune) bool {
		return r == ' ' || r == ',' // space or comma separated
	}

	return strings.FieldsFunc(strings.ToUpper(c.Exclude), splitFunc)
}
