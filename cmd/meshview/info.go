package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"meshview/internal/config"
	"meshview/internal/loader"
	"meshview/internal/stats"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Print mesh statistics",
	Long:  "Load a mesh the same way view does and print its kind, counts, bounding box and surface area.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	_, log, err := setup(config.Flags{})
	if err != nil {
		return err
	}
	defer log.Sync()

	path := args[0]
	geom, err := loader.New(log).Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "file:        %s\n", path)
	return stats.Compute(geom).Write(out)
}
