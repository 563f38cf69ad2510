package cmd

import (
	"fmt"
	"runtime"

	"github.com/sarchlab/cachesim/simulation"
	"github.com/spf13/cobra"
)

var parallelism int

var batchCmd = &cobra.Command{
	Use:   "batch -s <num> -E <num> -b <num> <trace>...",
	Short: "Replay several traces, each on its own cache.",
	Long: `batch replays every trace given on the command line concurrently ` +
		`and prints one summary line per trace, in the order given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := geometryArgs.geometry()
		if err != nil {
			return usageError(cmd, err)
		}

		s, err := simulation.MakeBuilder().WithGeometry(g).Build()
		if err != nil {
			return err
		}

		results, err := s.RunAll(args, parallelism)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "cache: %s\n", g)

		for _, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", res.Trace, res.Stats)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVarP(&parallelism, "jobs", "j", runtime.NumCPU(),
		"Number of traces replayed at the same time.")
}
