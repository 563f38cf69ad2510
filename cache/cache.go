// Package cache models the hit, miss and eviction behavior of a
// set-associative cache.
package cache

import (
	"github.com/sarchlab/cachesim/sim"
)

// HookPosAccess is triggered after every access. The hook item is an
// AccessRecord.
var HookPosAccess = &sim.HookPos{Name: "CacheAccess"}

// An AccessRecord describes how one access changed the cache.
type AccessRecord struct {
	Address  uint64
	Decoded  Address
	SetID    int
	WayID    int
	Outcome  Outcome
	Clock    uint64
	PrevTag  uint64
	PrevUsed bool
}

// EvictedTag returns the tag that the access displaced.
func (r AccessRecord) EvictedTag() (uint64, bool) {
	if r.Outcome != MissWithEvict {
		return 0, false
	}

	return r.PrevTag, true
}

// Cache is a set-associative cache that tracks which blocks are resident. It
// does not store data.
//
// A Cache is owned by a single simulation run and is not safe for concurrent
// use.
type Cache struct {
	*sim.HookableBase

	name         string
	geometry     Geometry
	tags         tagArray
	victimFinder VictimFinder
	clock        uint64
	stats        StatsCollector
}

// NewCache allocates a cache of the given geometry. All lines start invalid.
func NewCache(name string, g Geometry, victimFinder VictimFinder) *Cache {
	if g.NumWays() < 1 {
		panic("cache geometry is not initialized")
	}

	if victimFinder == nil {
		victimFinder = NewLRUVictimFinder()
	}

	return &Cache{
		HookableBase: sim.NewHookableBase(),
		name:         name,
		geometry:     g,
		tags:         newTagArray(g),
		victimFinder: victimFinder,
	}
}

// Name returns the name of the cache.
func (c *Cache) Name() string {
	return c.name
}

// Geometry returns the geometry that the cache was built with.
func (c *Cache) Geometry() Geometry {
	return c.geometry
}

// Access looks up addr, installing its block on a miss.
func (c *Cache) Access(addr uint64) AccessRecord {
	decoded := c.geometry.Decode(addr)
	c.clock++

	set := c.tags.set(int(decoded.SetIndex))
	rec := AccessRecord{
		Address: addr,
		Decoded: decoded,
		SetID:   set.ID,
		Clock:   c.clock,
	}

	if way, found := set.lookup(decoded.Tag); found {
		rec.WayID = way
		rec.Outcome = Hit
	} else if way, found := set.firstInvalid(); found {
		rec.WayID = way
		rec.Outcome = MissNoEvict
	} else {
		rec.WayID = c.victimFinder.FindVictim(set)
		rec.Outcome = MissWithEvict
	}

	line := &set.Lines[rec.WayID]
	rec.PrevTag = line.Tag
	rec.PrevUsed = line.Valid

	line.Valid = true
	line.Tag = decoded.Tag
	line.Recency = c.clock

	c.stats.Record(rec.Outcome)
	c.invokeAccessHook(rec)

	return rec
}

func (c *Cache) invokeAccessHook(rec AccessRecord) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosAccess,
		Item:   rec,
	})
}

// Stats returns the counters accumulated so far.
func (c *Cache) Stats() Stats {
	return c.stats.Snapshot()
}

// NumSets returns the number of sets in the cache.
func (c *Cache) NumSets() int {
	return c.tags.numSets()
}

// GetSet returns a copy of the lines of the given set.
func (c *Cache) GetSet(setID int) Set {
	set := c.tags.set(setID)
	set.Lines = append([]Line(nil), set.Lines...)

	return set
}

// NumResident returns the number of valid lines in the whole cache.
func (c *Cache) NumResident() int {
	n := 0
	for i := 0; i < c.tags.numSets(); i++ {
		n += c.tags.set(i).NumValid()
	}

	return n
}
