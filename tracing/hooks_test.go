package tracing

import (
	"bytes"
	"database/sql"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/datarecording"
	"github.com/sarchlab/cachesim/trace"
)

var _ = Describe("Hooks", func() {
	var (
		c        *cache.Cache
		replayer *trace.Replayer
	)

	BeforeEach(func() {
		c = cache.NewCache("Cache", cache.MustNewGeometry(4, 4, 1), nil)
		replayer = trace.NewReplayer("Replayer", c)
	})

	Context("verbose hook", func() {
		It("should echo lines like csim", func() {
			buf := new(bytes.Buffer)
			replayer.AcceptHook(NewVerboseHook(buf))

			t := " L 10,1\n M 20,1\nI  30,4\n L 22,1\n S 18,1\n L 110,1\n" +
				" L 210,1\n M 12,1\n"
			Expect(replayer.Replay(strings.NewReader(t))).To(Succeed())

			Expect(buf.String()).To(Equal(
				"L 10,1 miss\n" +
					"M 20,1 miss hit\n" +
					"L 22,1 hit\n" +
					"S 18,1 hit\n" +
					"L 110,1 miss eviction\n" +
					"L 210,1 miss eviction\n" +
					"M 12,1 miss eviction hit\n"))
		})
	})

	Context("op count hook", func() {
		It("should break down counters by opcode", func() {
			hook := NewOpCountHook()
			replayer.AcceptHook(hook)

			t := " M 20,1\n L 20,1\n S 120,1\n L 20,1\n Z 1,1\n"
			Expect(replayer.Replay(strings.NewReader(t))).To(Succeed())

			Expect(hook.Kinds()).To(Equal(
				[]trace.OpKind{trace.OpLoad, trace.OpModify, trace.OpStore}))
			Expect(hook.NumOps(trace.OpLoad)).To(Equal(uint64(2)))
			Expect(hook.Stats(trace.OpModify)).To(Equal(
				cache.Stats{Hits: 1, Misses: 1}))
			Expect(hook.Stats(trace.OpLoad)).To(Equal(
				cache.Stats{Hits: 1, Misses: 1, Evictions: 1}))
			Expect(hook.Stats(trace.OpInstruction)).To(BeZero())

			buf := new(bytes.Buffer)
			Expect(hook.Report(buf)).To(Succeed())
			Expect(buf.String()).To(Equal(
				"L ops:2 hits:1 misses:1 evictions:1 hit-rate:0.50\n" +
					"M ops:1 hits:1 misses:1 evictions:0 hit-rate:0.50\n" +
					"S ops:1 hits:0 misses:1 evictions:1 hit-rate:0.00\n"))
		})
	})

	Context("db hook", func() {
		var (
			db       *sql.DB
			recorder datarecording.DataRecorder
		)

		BeforeEach(func() {
			var err error
			db, err = sql.Open("sqlite3",
				filepath.Join(GinkgoT().TempDir(), "hook.sqlite3"))
			Expect(err).NotTo(HaveOccurred())

			recorder = datarecording.NewWithDB(db)
		})

		AfterEach(func() {
			Expect(recorder.Close()).To(Succeed())
		})

		It("should store every access", func() {
			hook := NewDBHook("run1", recorder)
			replayer.AcceptHook(hook)

			t := " L 10,1\n M 110,1\n"
			Expect(replayer.Replay(strings.NewReader(t))).To(Succeed())
			hook.RecordSummary("t.trace", c.Geometry(), c.Stats(), 0)
			recorder.Flush()

			var n int
			Expect(db.QueryRow("SELECT COUNT(*) FROM cache_accesses").
				Scan(&n)).To(Succeed())
			Expect(n).To(Equal(3))

			var op, outcome, evicted string
			Expect(db.QueryRow(
				"SELECT Op, Outcome, EvictedTag FROM cache_accesses "+
					"WHERE Clock = 2").Scan(&op, &outcome, &evicted)).
				To(Succeed())
			Expect(op).To(Equal("M"))
			Expect(outcome).To(Equal("miss eviction"))
			Expect(evicted).To(Equal("0x0"))

			var hits, misses, evictions int64
			Expect(db.QueryRow(
				"SELECT Hits, Misses, Evictions FROM run_summary "+
					"WHERE RunID = 'run1'").Scan(&hits, &misses, &evictions)).
				To(Succeed())
			Expect([]int64{hits, misses, evictions}).To(Equal([]int64{1, 2, 1}))
		})
	})
})
