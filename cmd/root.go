// Package cmd is for command line interactions with the trnaspace application
package cmd

import (
	"log"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "trnaspace",
	Short: `Unify heterogeneous tRNA molecules onto one shared structural coordinate axis.
Consumes per-residue Sprinzl annotations and emits equal-spaced global coordinates`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
