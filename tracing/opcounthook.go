package tracing

import (
	"fmt"
	"io"
	"sort"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/sim"
	"github.com/sarchlab/cachesim/trace"
)

// OpCountHook breaks the cache statistics down by trace opcode.
type OpCountHook struct {
	kinds []trace.OpKind
	stats map[trace.OpKind]*cache.StatsCollector
	ops   map[trace.OpKind]uint64
}

// NewOpCountHook creates a new OpCountHook.
func NewOpCountHook() *OpCountHook {
	return &OpCountHook{
		stats: make(map[trace.OpKind]*cache.StatsCollector),
		ops:   make(map[trace.OpKind]uint64),
	}
}

// Func counts the outcomes of an evaluated trace line.
func (h *OpCountHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != trace.HookPosOperation {
		return
	}

	rec, ok := ctx.Item.(trace.OpRecord)
	if !ok {
		return
	}

	collector, found := h.stats[rec.Op.Kind]
	if !found {
		collector = &cache.StatsCollector{}
		h.stats[rec.Op.Kind] = collector
		h.kinds = append(h.kinds, rec.Op.Kind)
	}

	h.ops[rec.Op.Kind]++
	for _, o := range rec.Outcomes() {
		collector.Record(o)
	}
}

// Kinds returns the opcodes seen so far, sorted.
func (h *OpCountHook) Kinds() []trace.OpKind {
	kinds := append([]trace.OpKind(nil), h.kinds...)
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

// NumOps returns how many lines with the given opcode were evaluated.
func (h *OpCountHook) NumOps(kind trace.OpKind) uint64 {
	return h.ops[kind]
}

// Stats returns the counters of the accesses caused by the given opcode.
func (h *OpCountHook) Stats(kind trace.OpKind) cache.Stats {
	collector, found := h.stats[kind]
	if !found {
		return cache.Stats{}
	}

	return collector.Snapshot()
}

// Report writes one line per opcode.
func (h *OpCountHook) Report(w io.Writer) error {
	for _, kind := range h.Kinds() {
		stats := h.Stats(kind)

		_, err := fmt.Fprintf(w, "%s ops:%d %s hit-rate:%.2f\n",
			kind, h.NumOps(kind), stats, stats.HitRate())
		if err != nil {
			return err
		}
	}

	return nil
}
