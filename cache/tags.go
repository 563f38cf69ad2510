package cache

// A Line is one storage slot of a set.
type Line struct {
	Valid   bool
	Tag     uint64
	Recency uint64
}

// A Set is the group of lines that a given set index maps to. The Lines slice
// is a view into the cache storage and has exactly E elements.
type Set struct {
	ID    int
	Lines []Line
}

// NumValid returns how many lines of the set hold a block.
func (s Set) NumValid() int {
	n := 0

	for _, l := range s.Lines {
		if l.Valid {
			n++
		}
	}

	return n
}

// lookup returns the way that holds tag.
func (s Set) lookup(tag uint64) (int, bool) {
	for i, l := range s.Lines {
		if l.Valid && l.Tag == tag {
			return i, true
		}
	}

	return 0, false
}

// firstInvalid returns the lowest way that has never been filled.
func (s Set) firstInvalid() (int, bool) {
	for i, l := range s.Lines {
		if !l.Valid {
			return i, true
		}
	}

	return 0, false
}

// tagArray owns all the lines of a cache in a single backing slice, set after
// set.
type tagArray struct {
	numWays int
	lines   []Line
}

func newTagArray(g Geometry) tagArray {
	return tagArray{
		numWays: g.NumWays(),
		lines:   make([]Line, g.NumLines()),
	}
}

func (t *tagArray) set(setID int) Set {
	start := setID * t.numWays

	return Set{
		ID:    setID,
		Lines: t.lines[start : start+t.numWays : start+t.numWays],
	}
}

func (t *tagArray) numSets() int {
	return len(t.lines) / t.numWays
}
