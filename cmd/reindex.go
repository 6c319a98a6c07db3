package cmd

import (
	"log"

	"github.com/lkwhite/tRNAs-in-space/config"
	"github.com/lkwhite/tRNAs-in-space/internal/trnaspace"
	"github.com/spf13/cobra"
)

// reindexCmd recomputes the derived coordinate columns of an existing
// table, e.g. after the label ordering changed.
var reindexCmd = &cobra.Command{
	Use:   "reindex [in_tsv] [out_tsv]",
	Short: "Recompute ordinals, continuous coordinates and global indices for an existing table",
	Long: `Reprocess a previously written coordinate table: rebuild the global label
order, reinterpolate each molecule's continuous coordinates, reassign global
indices and region tags, and write the corrected table.`,
	Args: cobra.ExactArgs(2),
	Run:  runReindex,
}

func runReindex(cmd *cobra.Command, args []string) {
	conf := config.New(cmd.Flags())

	if _, err := trnaspace.Reindex(args[0], args[1], conf); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	reindexCmd.Flags().IntP("precision", "p", 6, "decimal places for rounding continuous coordinates")
	reindexCmd.Flags().BoolP("allow-collisions", "c", false, "write output despite global index collisions (exploratory runs only)")

	RootCmd.AddCommand(reindexCmd)
}
