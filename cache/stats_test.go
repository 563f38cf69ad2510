package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("StatsCollector", func() {
	var c *StatsCollector

	BeforeEach(func() {
		c = &StatsCollector{}
	})

	It("should start at zero", func() {
		Expect(c.Snapshot()).To(BeZero())
	})

	It("should count each outcome", func() {
		c.Record(Hit)
		c.Record(MissNoEvict)
		c.Record(MissWithEvict)
		c.Record(Hit)

		Expect(c.Snapshot()).To(Equal(Stats{Hits: 2, Misses: 2, Evictions: 1}))
	})

	It("should not change an earlier snapshot", func() {
		c.Record(Hit)
		s := c.Snapshot()

		c.Record(MissWithEvict)

		Expect(s).To(Equal(Stats{Hits: 1}))
	})

	It("should panic on an unknown outcome", func() {
		Expect(func() { c.Record(Outcome(42)) }).To(Panic())
	})

	It("should compute the hit rate", func() {
		Expect(Stats{}.HitRate()).To(BeZero())
		Expect(Stats{Hits: 3, Misses: 1}.HitRate()).To(Equal(0.75))
	})

	It("should format like csim", func() {
		s := Stats{Hits: 4, Misses: 5, Evictions: 3}

		Expect(s.String()).To(Equal("hits:4 misses:5 evictions:3"))
	})

	It("should print outcomes the way verbose mode does", func() {
		Expect(Hit.String()).To(Equal("hit"))
		Expect(MissNoEvict.String()).To(Equal("miss"))
		Expect(MissWithEvict.String()).To(Equal("miss eviction"))
	})
})
