// Package simulation replays memory traces against a simulated cache.
package simulation

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/metrics/prom"
	"github.com/sarchlab/cachesim/trace"
	"github.com/sarchlab/cachesim/tracing"
)

// Result is what a run produces.
type Result struct {
	RunID      string
	Trace      string
	Stats      cache.Stats
	NumLines   int
	NumOps     int
	NumSkipped int
	Breakdown  *tracing.OpCountHook
}

// A Simulation replays traces. Every run gets a cache of its own.
//
// Runs of a simulation without verbose output, data recorder or metrics file
// can proceed concurrently.
type Simulation struct {
	id            string
	geometry      cache.Geometry
	victimFinder  cache.VictimFinder
	verboseOutput io.Writer
	dataRecorder  datarecording.DataRecorder
	dbHook        *tracing.DBHook
	metricsFile   string
}

// ID returns the unique ID of the simulation.
func (s *Simulation) ID() string {
	return s.id
}

// Geometry returns the geometry of the simulated cache.
func (s *Simulation) Geometry() cache.Geometry {
	return s.geometry
}

// Run replays the trace file at path. The trace is opened before the cache
// is allocated, so an unreadable trace costs nothing.
func (s *Simulation) Run(path string) (Result, error) {
	f, err := trace.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	return s.RunReader(path, f)
}

// RunReader replays a trace read from r. The name identifies the trace in
// errors and records.
func (s *Simulation) RunReader(name string, r io.Reader) (Result, error) {
	c := cache.NewCache("Cache", s.geometry, s.victimFinder)
	replayer := trace.NewReplayer("Replayer", c)

	breakdown := tracing.NewOpCountHook()
	replayer.AcceptHook(breakdown)

	if s.verboseOutput != nil {
		replayer.AcceptHook(tracing.NewVerboseHook(s.verboseOutput))
	}

	if s.dbHook != nil {
		replayer.AcceptHook(s.dbHook)
	}

	var metrics *prom.Hook
	if s.metricsFile != "" {
		metrics = prom.New("csim", prometheus.Labels{"trace": name})
		c.AcceptHook(metrics)
	}

	err := replayer.Replay(r)
	if err != nil {
		return Result{}, &trace.TraceSourceError{Path: name, Err: err}
	}

	res := Result{
		RunID:      s.id,
		Trace:      name,
		Stats:      c.Stats(),
		NumLines:   replayer.NumLines(),
		NumOps:     replayer.NumOps(),
		NumSkipped: replayer.NumSkipped(),
		Breakdown:  breakdown,
	}

	if s.dbHook != nil {
		s.dbHook.RecordSummary(name, s.geometry, res.Stats, res.NumSkipped)
		s.dataRecorder.Flush()
	}

	if metrics != nil {
		if err := metrics.WriteTextfile(s.metricsFile); err != nil {
			return res, fmt.Errorf("writing metrics: %w", err)
		}
	}

	return res, nil
}
