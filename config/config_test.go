// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"reflect"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func TestNew(t *testing.T) {
	viper.Reset()

	c := New(nil)

	if c.Precision != 6 {
		t.Errorf("New().Precision = %d, want 6", c.Precision)
	}
	if c.Partition != PartitionUnified {
		t.Errorf("New().Partition = %q, want %q", c.Partition, PartitionUnified)
	}
	if c.CanonicalMax != 76 {
		t.Errorf("New().CanonicalMax = %d, want 76", c.CanonicalMax)
	}
	if c.AllowCollisions {
		t.Error("New().AllowCollisions = true, want false")
	}
}

// a command's own flag values must reach the config even when another
// command registered flags with the same names
func TestNew_flags(t *testing.T) {
	viper.Reset()

	// an earlier command binds the same keys but is never run
	earlier := pflag.NewFlagSet("unify", pflag.ContinueOnError)
	earlier.IntP("precision", "p", 6, "")
	earlier.StringP("exclude", "x", "", "")
	New(earlier)

	flags := pflag.NewFlagSet("reindex", pflag.ContinueOnError)
	flags.IntP("precision", "p", 6, "")
	flags.BoolP("allow-collisions", "c", false, "")
	flags.StringP("exclude", "x", "", "")
	if err := flags.Set("precision", "3"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("allow-collisions", "true"); err != nil {
		t.Fatal(err)
	}
	if err := flags.Set("exclude", "his"); err != nil {
		t.Fatal(err)
	}

	c := New(flags)

	if c.Precision != 3 {
		t.Errorf("New().Precision = %d, want 3", c.Precision)
	}
	if !c.AllowCollisions {
		t.Error("New().AllowCollisions = false, want true")
	}
	if got := c.Exclusions(); !reflect.DeepEqual(got, []string{"HIS"}) {
		t.Errorf("New().Exclusions() = %v, want [HIS]", got)
	}
}

func TestConfig_Exclusions(t *testing.T) {
	tests := []struct {
		name    string
		exclude string
		want    []string
	}{
		{
			"empty",
			"",
			nil,
		},
		{
			"comma separated",
			"his,phe",
			[]string{"HIS", "PHE"},
		},
		{
			"spaces and commas",
			"his, phe gly",
			[]string{"HIS", "PHE", "GLY"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{Exclude: tt.exclude}
			got := c.Exclusions()
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Config.Exclusions() = %v, want %v", got, tt.want)
			}
		})
	}
}
