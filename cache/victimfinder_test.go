package cache

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LRU Victim Finder", func() {
	var victimFinder *LRUVictimFinder

	BeforeEach(func() {
		victimFinder = NewLRUVictimFinder()
	})

	It("should find the least recently used line", func() {
		set := Set{Lines: []Line{
			{Valid: true, Tag: 1, Recency: 7},
			{Valid: true, Tag: 2, Recency: 3},
			{Valid: true, Tag: 3, Recency: 9},
			{Valid: true, Tag: 4, Recency: 5},
		}}

		Expect(victimFinder.FindVictim(set)).To(Equal(1))
	})

	It("should break ties with the lowest way", func() {
		set := Set{Lines: []Line{
			{Valid: true, Tag: 1, Recency: 4},
			{Valid: true, Tag: 2, Recency: 2},
			{Valid: true, Tag: 3, Recency: 2},
		}}

		Expect(victimFinder.FindVictim(set)).To(Equal(1))
	})

	It("should panic if a line is invalid", func() {
		set := Set{Lines: []Line{
			{Valid: true, Tag: 1, Recency: 4},
			{Valid: false},
		}}

		Expect(func() { victimFinder.FindVictim(set) }).To(Panic())
	})

	It("should panic on an empty set", func() {
		Expect(func() { victimFinder.FindVictim(Set{}) }).To(Panic())
	})
})
