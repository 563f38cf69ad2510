package cache

import "fmt"

const (
	addressLength = 64
	maxSetBits    = 32

	// maxLines bounds S*E so that the line count fits in an int and the
	// storage can be allocated.
	maxLines int64 = 1 << 32
)

// ConfigurationError reports a geometry parameter that is out of range. It is
// returned before any cache storage is allocated.
type ConfigurationError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid cache geometry: %s=%d %s",
		e.Field, e.Value, e.Reason)
}

// Geometry describes the shape of a set-associative cache. A Geometry is
// immutable once created; the derived set count and block size are computed
// at construction time.
type Geometry struct {
	setBits   int
	blockBits int
	numWays   int

	numSets   int
	blockSize uint64
}

// NewGeometry validates s (set-index bits), b (block-offset bits) and e (lines
// per set) and returns the resulting Geometry.
func NewGeometry(s, b, e int) (Geometry, error) {
	switch {
	case s < 0:
		return Geometry{}, &ConfigurationError{"s", s, "must not be negative"}
	case s > maxSetBits:
		return Geometry{}, &ConfigurationError{
			"s", s, fmt.Sprintf("must not exceed %d", maxSetBits)}
	case b < 0:
		return Geometry{}, &ConfigurationError{"b", b, "must not be negative"}
	case s+b > addressLength:
		return Geometry{}, &ConfigurationError{
			"b", b, fmt.Sprintf("leaves no room in a %d-bit address with s=%d",
				addressLength, s)}
	case e < 1:
		return Geometry{}, &ConfigurationError{"E", e, "must be at least 1"}
	case int64(e) > maxLines>>s:
		return Geometry{}, &ConfigurationError{
			"E", e, fmt.Sprintf("makes more than %d lines with s=%d",
				maxLines, s)}
	}

	g := Geometry{
		setBits:   s,
		blockBits: b,
		numWays:   e,
		numSets:   1 << s,
	}

	if b < addressLength {
		g.blockSize = 1 << b
	}

	return g, nil
}

// MustNewGeometry is like NewGeometry but panics on invalid parameters.
func MustNewGeometry(s, b, e int) Geometry {
	g, err := NewGeometry(s, b, e)
	if err != nil {
		panic(err)
	}

	return g
}

// SetBits returns s.
func (g Geometry) SetBits() int { return g.setBits }

// BlockBits returns b.
func (g Geometry) BlockBits() int { return g.blockBits }

// NumWays returns E, the number of lines in each set.
func (g Geometry) NumWays() int { return g.numWays }

// NumSets returns S = 2^s.
func (g Geometry) NumSets() int { return g.numSets }

// BlockSize returns B = 2^b. It is 0 when b is 64, as the value would not fit.
func (g Geometry) BlockSize() uint64 { return g.blockSize }

// TagBits returns the number of address bits that make up the tag.
func (g Geometry) TagBits() int { return addressLength - g.setBits - g.blockBits }

// NumLines returns S*E.
func (g Geometry) NumLines() int { return g.numSets * g.numWays }

// TotalSize returns the number of bytes the cache can hold.
func (g Geometry) TotalSize() uint64 {
	return uint64(g.NumLines()) * g.blockSize
}

func (g Geometry) String() string {
	return fmt.Sprintf("s=%d b=%d E=%d (S=%d B=%d, %d bytes)",
		g.setBits, g.blockBits, g.numWays, g.numSets, g.blockSize,
		g.TotalSize())
}
