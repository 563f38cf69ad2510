package cache

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Geometry", func() {
	It("should derive set count and block size", func() {
		g, err := NewGeometry(4, 5, 2)

		Expect(err).NotTo(HaveOccurred())
		Expect(g.NumSets()).To(Equal(16))
		Expect(g.BlockSize()).To(Equal(uint64(32)))
		Expect(g.NumWays()).To(Equal(2))
		Expect(g.TagBits()).To(Equal(55))
		Expect(g.NumLines()).To(Equal(32))
		Expect(g.TotalSize()).To(Equal(uint64(1024)))
		Expect(g.String()).To(Equal("s=4 b=5 E=2 (S=16 B=32, 1024 bytes)"))
	})

	It("should allow zero set and offset bits", func() {
		g, err := NewGeometry(0, 0, 2)

		Expect(err).NotTo(HaveOccurred())
		Expect(g.NumSets()).To(Equal(1))
		Expect(g.BlockSize()).To(Equal(uint64(1)))
	})

	DescribeTable("should reject out-of-range parameters",
		func(s, b, e int, field string) {
			_, err := NewGeometry(s, b, e)

			var confErr *ConfigurationError
			Expect(errors.As(err, &confErr)).To(BeTrue())
			Expect(confErr.Field).To(Equal(field))
		},
		Entry("negative s", -1, 4, 1, "s"),
		Entry("too many set bits", 33, 4, 1, "s"),
		Entry("negative b", 4, -1, 1, "b"),
		Entry("s+b wider than an address", 32, 33, 1, "b"),
		Entry("zero lines per set", 4, 4, 0, "E"),
		Entry("negative lines per set", 4, 4, -2, "E"),
		Entry("line count overflowing an int", 32, 1, 1<<31, "E"),
		Entry("more lines than can be allocated", 20, 1, 1<<13, "E"),
	)

	It("should accept the largest line count", func() {
		g, err := NewGeometry(16, 4, 1<<16)

		Expect(err).NotTo(HaveOccurred())
		Expect(g.NumLines()).To(Equal(1 << 32))
	})

	It("should panic in MustNewGeometry on bad input", func() {
		Expect(func() { MustNewGeometry(1, 1, 0) }).To(Panic())
	})
})
