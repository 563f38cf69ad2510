package simulation

import (
	"errors"
	"io"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/sim"
	"github.com/sarchlab/cachesim/tracing"
)

// Builder can be used to build a simulation.
type Builder struct {
	geometry      cache.Geometry
	victimFinder  cache.VictimFinder
	verboseOutput io.Writer
	dataRecorder  datarecording.DataRecorder
	metricsFile   string
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{
		victimFinder: cache.NewLRUVictimFinder(),
	}
}

// WithGeometry sets the shape of the simulated cache.
func (b Builder) WithGeometry(g cache.Geometry) Builder {
	b.geometry = g
	return b
}

// WithVictimFinder sets the replacement policy. LRU is used by default.
func (b Builder) WithVictimFinder(vf cache.VictimFinder) Builder {
	b.victimFinder = vf
	return b
}

// WithVerboseOutput echoes each evaluated trace line and its outcomes to w.
func (b Builder) WithVerboseOutput(w io.Writer) Builder {
	b.verboseOutput = w
	return b
}

// WithDataRecorder stores every access into the given recorder.
func (b Builder) WithDataRecorder(r datarecording.DataRecorder) Builder {
	b.dataRecorder = r
	return b
}

// WithMetricsTextfile writes Prometheus metrics to path after each run.
func (b Builder) WithMetricsTextfile(path string) Builder {
	b.metricsFile = path
	return b
}

func (b Builder) parametersMustBeValid() error {
	if b.geometry.NumWays() < 1 {
		return errors.New("cache geometry is not set")
	}

	if b.victimFinder == nil {
		return errors.New("victim finder is not set")
	}

	return nil
}

// Build builds the simulation.
func (b Builder) Build() (*Simulation, error) {
	if err := b.parametersMustBeValid(); err != nil {
		return nil, err
	}

	s := &Simulation{
		id:            sim.GetIDGenerator().Generate(),
		geometry:      b.geometry,
		victimFinder:  b.victimFinder,
		verboseOutput: b.verboseOutput,
		dataRecorder:  b.dataRecorder,
		metricsFile:   b.metricsFile,
	}

	if s.dataRecorder != nil {
		s.dbHook = tracing.NewDBHook(s.id, s.dataRecorder)
	}

	return s, nil
}
