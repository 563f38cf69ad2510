package cache

import "fmt"

// Outcome is the result of a single cache access.
type Outcome int

// The possible outcomes of an access.
const (
	Hit Outcome = iota
	MissNoEvict
	MissWithEvict
)

// IsHit tells if the block was resident.
func (o Outcome) IsHit() bool { return o == Hit }

// IsMiss tells if the block had to be brought in.
func (o Outcome) IsMiss() bool { return o != Hit }

// IsEviction tells if another block was displaced.
func (o Outcome) IsEviction() bool { return o == MissWithEvict }

// String returns the outcome the way csim prints it in verbose mode.
func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case MissNoEvict:
		return "miss"
	case MissWithEvict:
		return "miss eviction"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Stats is a snapshot of the access counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Accesses returns hits + misses.
func (s Stats) Accesses() uint64 {
	return s.Hits + s.Misses
}

// HitRate returns the ratio of hits over all accesses, or 0 if there were no
// accesses.
func (s Stats) HitRate() float64 {
	if s.Accesses() == 0 {
		return 0
	}

	return float64(s.Hits) / float64(s.Accesses())
}

func (s Stats) String() string {
	return fmt.Sprintf("hits:%d misses:%d evictions:%d",
		s.Hits, s.Misses, s.Evictions)
}

// StatsCollector accumulates access outcomes. Counters only ever grow.
type StatsCollector struct {
	stats Stats
}

// Record counts one access outcome.
func (c *StatsCollector) Record(o Outcome) {
	switch o {
	case Hit:
		c.stats.Hits++
	case MissNoEvict:
		c.stats.Misses++
	case MissWithEvict:
		c.stats.Misses++
		c.stats.Evictions++
	default:
		panic(fmt.Sprintf("unknown outcome %d", int(o)))
	}
}

// Snapshot returns the counters at call time.
func (c *StatsCollector) Snapshot() Stats {
	return c.stats
}
