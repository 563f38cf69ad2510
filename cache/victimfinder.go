package cache

import "fmt"

// A VictimFinder decides which line of a full set should be evicted.
type VictimFinder interface {
	// FindVictim returns the way to evict. It is only called when every line
	// of the set is valid.
	FindVictim(set Set) int
}

// LRUVictimFinder evicts the least recently used line.
type LRUVictimFinder struct {
}

// NewLRUVictimFinder returns a newly constructed lru evictor
func NewLRUVictimFinder() *LRUVictimFinder {
	e := new(LRUVictimFinder)
	return e
}

// FindVictim returns the way with the smallest recency stamp. Ties go to the
// lowest way.
func (e *LRUVictimFinder) FindVictim(set Set) int {
	if len(set.Lines) == 0 {
		panic("cannot find a victim in an empty set")
	}

	victim := 0

	for i, l := range set.Lines {
		if !l.Valid {
			panic(fmt.Sprintf(
				"set %d way %d is invalid, no eviction is needed", set.ID, i))
		}

		if l.Recency < set.Lines[victim].Recency {
			victim = i
		}
	}

	return victim
}
