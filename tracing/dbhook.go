package tracing

import (
	"fmt"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/sim"
	"github.com/sarchlab/cachesim/trace"
)

const (
	accessTableName  = "cache_accesses"
	summaryTableName = "run_summary"
)

// accessEntry is a cache access in the database. Addresses and tags are hex
// strings as SQLite integers cannot hold every uint64.
type accessEntry struct {
	RunID      string
	Clock      int64
	LineNo     int
	Op         string
	SubAccess  int
	Address    string
	SetID      int
	WayID      int
	Tag        string
	Outcome    string
	EvictedTag string
}

// summaryEntry is the final counters of a run in the database.
type summaryEntry struct {
	RunID     string
	Trace     string
	SetBits   int
	BlockBits int
	NumWays   int
	Hits      int64
	Misses    int64
	Evictions int64
	Skipped   int
}

// DBHook stores every cache access caused by a trace line into a data
// recorder.
type DBHook struct {
	runID    string
	recorder datarecording.DataRecorder
}

// NewDBHook creates a DBHook and the tables that it writes to.
func NewDBHook(runID string, recorder datarecording.DataRecorder) *DBHook {
	h := &DBHook{
		runID:    runID,
		recorder: recorder,
	}

	recorder.CreateTable(accessTableName, accessEntry{})
	recorder.CreateTable(summaryTableName, summaryEntry{})

	return h
}

// Func records the accesses of an evaluated trace line.
func (h *DBHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != trace.HookPosOperation {
		return
	}

	rec, ok := ctx.Item.(trace.OpRecord)
	if !ok {
		return
	}

	for i, a := range rec.Accesses {
		entry := accessEntry{
			RunID:     h.runID,
			Clock:     int64(a.Clock),
			LineNo:    rec.LineNo,
			Op:        rec.Op.Kind.String(),
			SubAccess: i,
			Address:   hex(a.Address),
			SetID:     a.SetID,
			WayID:     a.WayID,
			Tag:       hex(a.Decoded.Tag),
			Outcome:   a.Outcome.String(),
		}

		if evicted, ok := a.EvictedTag(); ok {
			entry.EvictedTag = hex(evicted)
		}

		h.recorder.InsertData(accessTableName, entry)
	}
}

// RecordSummary stores the final counters of the run.
func (h *DBHook) RecordSummary(
	tracePath string,
	g cache.Geometry,
	stats cache.Stats,
	skipped int,
) {
	h.recorder.InsertData(summaryTableName, summaryEntry{
		RunID:     h.runID,
		Trace:     tracePath,
		SetBits:   g.SetBits(),
		BlockBits: g.BlockBits(),
		NumWays:   g.NumWays(),
		Hits:      int64(stats.Hits),
		Misses:    int64(stats.Misses),
		Evictions: int64(stats.Evictions),
		Skipped:   skipped,
	})
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
