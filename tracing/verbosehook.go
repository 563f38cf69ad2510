// Package tracing provides hooks that observe a trace replay.
package tracing

import (
	"io"
	"log"
	"strings"

	"github.com/sarchlab/cachesim/sim"
	"github.com/sarchlab/cachesim/trace"
)

// VerboseHook echoes every evaluated trace line together with its outcomes,
// for example "M 20,1 miss eviction hit".
type VerboseHook struct {
	*log.Logger
}

// NewVerboseHook creates a VerboseHook that writes to w.
func NewVerboseHook(w io.Writer) *VerboseHook {
	return &VerboseHook{Logger: log.New(w, "", 0)}
}

// Func prints the operation if the hook is triggered after a trace line.
func (h *VerboseHook) Func(ctx sim.HookCtx) {
	if ctx.Pos != trace.HookPosOperation {
		return
	}

	rec, ok := ctx.Item.(trace.OpRecord)
	if !ok {
		return
	}

	h.Println(FormatOpRecord(rec))
}

// FormatOpRecord formats an evaluated trace line the way csim prints it in
// verbose mode.
func FormatOpRecord(rec trace.OpRecord) string {
	var b strings.Builder

	b.WriteString(rec.Op.String())
	for _, o := range rec.Outcomes() {
		b.WriteByte(' ')
		b.WriteString(o.String())
	}

	return b.String()
}
