// Package trace parses memory traces and replays them against a cache.
package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/sim"
)

// HookPosOperation is triggered after every evaluated trace line. The hook
// item is an OpRecord.
var HookPosOperation = &sim.HookPos{Name: "TraceOperation"}

// HookPosMalformedLine is triggered when a line is skipped. The hook item is
// a *MalformedLineError.
var HookPosMalformedLine = &sim.HookPos{Name: "TraceMalformedLine"}

// TraceSourceError reports a trace that cannot be opened or read.
type TraceSourceError struct {
	Path string
	Err  error
}

func (e *TraceSourceError) Error() string {
	return fmt.Sprintf("cannot read trace %s: %v", e.Path, e.Err)
}

func (e *TraceSourceError) Unwrap() error {
	return e.Err
}

// Open opens a trace file for replaying.
func Open(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TraceSourceError{Path: path, Err: err}
	}

	return f, nil
}

// Accessor is what the replayer drives. *cache.Cache implements it.
type Accessor interface {
	Access(addr uint64) cache.AccessRecord
}

// An OpRecord is an evaluated trace line together with the accesses it caused.
type OpRecord struct {
	LineNo   int
	Op       Op
	Accesses []cache.AccessRecord
}

// Outcomes returns the outcome of each access in order.
func (r OpRecord) Outcomes() []cache.Outcome {
	outcomes := make([]cache.Outcome, len(r.Accesses))
	for i, a := range r.Accesses {
		outcomes[i] = a.Outcome
	}

	return outcomes
}

// Replayer feeds trace lines to a cache in file order.
type Replayer struct {
	*sim.HookableBase

	name     string
	target   Accessor
	numLines int
	numOps   int
	skipped  int
}

// NewReplayer creates a replayer that drives target.
func NewReplayer(name string, target Accessor) *Replayer {
	return &Replayer{
		HookableBase: sim.NewHookableBase(),
		name:         name,
		target:       target,
	}
}

// Name returns the name of the replayer.
func (r *Replayer) Name() string {
	return r.name
}

// NumLines returns the number of lines read so far.
func (r *Replayer) NumLines() int {
	return r.numLines
}

// NumOps returns the number of lines that caused cache accesses.
func (r *Replayer) NumOps() int {
	return r.numOps
}

// NumSkipped returns the number of malformed lines that were skipped.
func (r *Replayer) NumSkipped() int {
	return r.skipped
}

// Replay reads the whole trace from reader. Malformed lines are skipped,
// whatever their length. The returned error, if any, comes from reading the
// source.
func (r *Replayer) Replay(reader io.Reader) error {
	br := bufio.NewReader(reader)

	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			r.numLines++
			r.ReplayLine(r.numLines, strings.TrimRight(line, "\r\n"))
		}

		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("reading trace after line %d: %w", r.numLines, err)
		}
	}
}

// ReplayLine evaluates a single trace line.
func (r *Replayer) ReplayLine(lineNo int, line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	op, err := ParseLine(line)
	if err != nil {
		r.skip(lineNo, err)
		return
	}

	if op.Kind == OpInstruction {
		return
	}

	rec := OpRecord{
		LineNo:   lineNo,
		Op:       op,
		Accesses: make([]cache.AccessRecord, 0, op.Kind.NumAccesses()),
	}

	for i := 0; i < op.Kind.NumAccesses(); i++ {
		rec.Accesses = append(rec.Accesses, r.target.Access(op.Address))
	}

	if op.Kind == OpModify && rec.Accesses[1].Outcome != cache.Hit {
		panic(fmt.Sprintf("line %d: store half of %s missed", lineNo, op))
	}

	r.numOps++
	r.invokeHook(HookPosOperation, rec)
}

func (r *Replayer) skip(lineNo int, err error) {
	r.skipped++

	var malformed *MalformedLineError
	if errors.As(err, &malformed) {
		malformed.LineNo = lineNo
	}

	r.invokeHook(HookPosMalformedLine, malformed)
}

func (r *Replayer) invokeHook(pos *sim.HookPos, item any) {
	if r.NumHooks() == 0 {
		return
	}

	r.InvokeHook(sim.HookCtx{
		Domain: r,
		Pos:    pos,
		Item:   item,
	})
}
