package simulation

import (
	"golang.org/x/sync/errgroup"
)

// RunAll replays every trace in paths, at most parallelism at a time, and
// returns the results in the order of paths. Each trace gets its own cache.
//
// RunAll must only be used on simulations whose runs can proceed
// concurrently.
func (s *Simulation) RunAll(paths []string, parallelism int) ([]Result, error) {
	if s.verboseOutput != nil || s.dataRecorder != nil || s.metricsFile != "" {
		panic("simulation with shared outputs cannot run traces concurrently")
	}

	results := make([]Result, len(paths))

	var g errgroup.Group
	if parallelism > 0 {
		g.SetLimit(parallelism)
	}

	for i, path := range paths {
		g.Go(func() error {
			res, err := s.Run(path)
			if err != nil {
				return err
			}

			results[i] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
