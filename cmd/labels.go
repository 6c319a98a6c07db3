package cmd

import (
	"fmt"
	"log"

	"github.com/lkwhite/tRNAs-in-space/config"
	"github.com/lkwhite/tRNAs-in-space/internal/trnaspace"
	"github.com/spf13/cobra"
)

// labelsCmd is for listing the global label order a unified run over a
// directory would use. Useful for inspecting where insertions and the
// extended variable arm land before committing to a coordinate system.
var labelsCmd = &cobra.Command{
	Use:   "labels [annotation_dir]",
	Short: "List the global label order for a directory of annotations",
	Long: `Lists every distinct structural label across the annotations under the
directory, in canonical order, with the ordinal each would be assigned.

	<Ordinal>: <Label>`,
	Args: cobra.ExactArgs(1),
	Run:  runLabels,
}

func runLabels(cmd *cobra.Command, args []string) {
	conf := config.New(cmd.Flags())

	batch, err := trnaspace.LoadAnnotations(args[0], conf)
	if err != nil {
		log.Fatalf("%v", err)
	}

	order := trnaspace.BuildOrder(batch.Molecules, conf.CanonicalMax)
	for i, label := range order.Labels {
		fmt.Printf("%4d: %s\n", i+1, label)
	}
}

// set flags
func init() {
	labelsCmd.Flags().StringP("exclude", "x", "", "comma separated identity keywords to exclude")

	RootCmd.AddCommand(labelsCmd)
}
