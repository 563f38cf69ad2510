// Package cmd provides the command-line interface of csim.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/sim"
	"github.com/sarchlab/cachesim/simulation"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// errMissingArgument is returned when s, b, E or the trace file is not given.
var errMissingArgument = errors.New("missing required command line argument")

// commandLineError is a problem with the arguments. The usage has already
// been printed when it is returned.
type commandLineError struct {
	err error
}

func (e *commandLineError) Error() string { return e.err.Error() }

func (e *commandLineError) Unwrap() error { return e.err }

type geometryFlags struct {
	setBits   int
	blockBits int
	numWays   int
}

// geometry applies csim's argument rules. A zero value means the argument is
// missing.
func (f geometryFlags) geometry() (cache.Geometry, error) {
	if f.setBits <= 0 || f.blockBits <= 0 || f.numWays <= 0 {
		return cache.Geometry{}, errMissingArgument
	}

	return cache.NewGeometry(f.setBits, f.blockBits, f.numWays)
}

var (
	geometryArgs    geometryFlags
	traceFile       string
	verbose         bool
	breakdown       bool
	resultsFile     string
	recordName      string
	metricsTextfile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "csim -s <num> -E <num> -b <num> -t <file>",
	Short: "Cache simulator that replays valgrind memory traces.",
	Long: `csim replays a valgrind memory trace against a set-associative ` +
		`cache with LRU replacement and reports hits, misses and evictions.`,
	Example: `  csim -s 4 -E 1 -b 4 -t traces/yi.trace
  csim -v -s 8 -E 2 -b 4 -t traces/yi.trace`,
	Args:          cobra.NoArgs,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := geometryArgs.geometry()
		if err == nil && traceFile == "" {
			err = errMissingArgument
		}

		if err != nil {
			return usageError(cmd, err)
		}

		return runTrace(cmd, g)
	},
}

func runTrace(cmd *cobra.Command, g cache.Geometry) error {
	b := simulation.MakeBuilder().WithGeometry(g)

	if verbose {
		b = b.WithVerboseOutput(cmd.OutOrStdout())
	}

	if recordName != "" {
		recorder, err := datarecording.New(recordName)
		if err != nil {
			return err
		}
		defer recorder.Close()

		b = b.WithDataRecorder(recorder)
	}

	if metricsTextfile != "" {
		b = b.WithMetricsTextfile(metricsTextfile)
	}

	s, err := b.Build()
	if err != nil {
		return err
	}

	res, err := s.Run(traceFile)
	if err != nil {
		return err
	}

	if breakdown {
		if err := res.Breakdown.Report(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	return simulation.PrintSummary(cmd.OutOrStdout(), resultsFile, res.Stats)
}

// usageError prints err followed by the usage of cmd.
func usageError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", cmd.CommandPath(), err)
	fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())

	return &commandLineError{err: err}
}

func init() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	flags := rootCmd.PersistentFlags()
	flags.IntVarP(&geometryArgs.setBits, "sets", "s", envInt("CSIM_S"),
		"Number of set index bits.")
	flags.IntVarP(&geometryArgs.numWays, "lines", "E", envInt("CSIM_E"),
		"Number of lines per set.")
	flags.IntVarP(&geometryArgs.blockBits, "block", "b", envInt("CSIM_B"),
		"Number of block offset bits.")

	rootCmd.Flags().StringVarP(&traceFile, "trace", "t", os.Getenv("CSIM_TRACE"),
		"Trace file.")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Optional verbose flag that displays trace info.")
	rootCmd.Flags().BoolVar(&breakdown, "breakdown", false,
		"Print hits, misses and evictions per opcode.")
	rootCmd.Flags().StringVar(&resultsFile, "results",
		envString("CSIM_RESULTS", simulation.DefaultResultsFile),
		"File to leave the counters in. Empty disables it.")
	rootCmd.Flags().StringVar(&recordName, "record", os.Getenv("CSIM_RECORD"),
		"Record every access into <name>.sqlite3.")
	rootCmd.Flags().StringVar(&metricsTextfile, "metrics-textfile", "",
		"Write Prometheus metrics to this file.")
}

func envInt(key string) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return 0
	}

	return v
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}

	return fallback
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	sim.UseParallelIDGenerator()

	err := rootCmd.Execute()
	if err != nil {
		var cmdLineErr *commandLineError
		if !errors.As(err, &cmdLineErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}

		atexit.Exit(1)
	}

	atexit.Exit(0)
}
