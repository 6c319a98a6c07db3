package cmd

import (
	"log"

	"github.com/lkwhite/tRNAs-in-space/config"
	"github.com/lkwhite/tRNAs-in-space/internal/trnaspace"
	"github.com/spf13/cobra"
)

// unifyCmd builds the shared coordinate axis from a directory of
// annotator output and writes one coordinate table per partition.
var unifyCmd = &cobra.Command{
	Use:   "unify [annotation_dir] [out_tsv]",
	Short: "Build global equal-spaced coordinates from enriched annotations",
	Long: `Build a unified coordinate table from a directory of *.enriched.json
annotator drawings (searched recursively).

For every molecule the raw per-residue Sprinzl metadata is extracted, missing
structural indices are inferred monotonically, incompatible molecules (SeC,
mitochondrial, initiator Met) are excluded, and every residue is mapped onto a
shared, strictly increasing global index. A global index claimed by two
different structural positions aborts the run unless --allow-collisions is set.

With --partition the batch is split into independent coordinate spaces (by
structural type, or by labeling offset and type); each space gets its own
output file, suffixed like _type1 or _offset+1_type2.`,
	Args: cobra.ExactArgs(2),
	Run:  runUnify,
}

func runUnify(cmd *cobra.Command, args []string) {
	conf := config.New(cmd.Flags())

	if _, err := trnaspace.Unify(args[0], args[1], conf); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	unifyCmd.Flags().IntP("precision", "p", 6, "decimal places for rounding continuous coordinates")
	unifyCmd.Flags().BoolP("allow-collisions", "c", false, "write output despite global index collisions (exploratory runs only)")
	unifyCmd.Flags().StringP("partition", "s", config.PartitionUnified, "coordinate space partitioning: unified, type, or offset-type")
	unifyCmd.Flags().StringP("type", "t", "", "restrict a type partition to one structural type (type1 or type2)")
	unifyCmd.Flags().StringP("exclude", "x", "", "comma separated identity keywords to exclude")

	RootCmd.AddCommand(unifyCmd)
}
