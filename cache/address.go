package cache

import "fmt"

// Address is a memory address split into the fields a cache looks at.
type Address struct {
	Offset   uint64
	SetIndex uint64
	Tag      uint64
}

func (a Address) String() string {
	return fmt.Sprintf("tag=0x%x set=%d offset=%d", a.Tag, a.SetIndex, a.Offset)
}

// Decode splits addr into block offset, set index and tag.
func (g Geometry) Decode(addr uint64) Address {
	return Address{
		Offset:   addr & lowMask(g.blockBits),
		SetIndex: (addr >> g.blockBits) & lowMask(g.setBits),
		Tag:      addr >> (g.setBits + g.blockBits),
	}
}

// Compose is the inverse of Decode.
func (g Geometry) Compose(a Address) uint64 {
	return a.Tag<<(g.setBits+g.blockBits) | a.SetIndex<<g.blockBits | a.Offset
}

// lowMask returns a mask with the lowest n bits set. Shifting a uint64 by 64
// yields 0, so n == 64 gives an all-ones mask.
func lowMask(n int) uint64 {
	return (uint64(1) << n) - 1
}
