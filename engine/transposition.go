package engine

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Bound flags for cached scores. An alpha-beta search rarely proves an exact
// value for every node; most entries only bound it from one side.
const (
	AlphaFlag int8 = iota // upper bound: real score <= Score
	BetaFlag              // lower bound: real score >= Score
	ExactFlag
)

// DefaultCacheSize bounds the transposition cache, in entries.
const DefaultCacheSize = 1 << 18

type ttKey struct {
	pos        Position
	depth      int8
	maximizing bool
}

// TTEntry is a memoized search result for one (position, depth, maximizing)
// key. Mate scores are stored relative to the entry's own node so that a hit
// at a different ply still yields the value a fresh search would compute.
type TTEntry struct {
	Score Score
	Move  Move
	Flag  int8
}

// TransTable is the transposition cache. It is the only shared mutable state
// in the engine: the LRU is safe for concurrent use, and because search is
// deterministic the same key always stores the same value, so racing writes
// are harmless.
type TransTable struct {
	entries *lru.Cache[ttKey, TTEntry]
}

// NewTransTable builds a bounded cache. capacity <= 0 selects
// DefaultCacheSize.
func NewTransTable(capacity int) (*TransTable, error) {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	entries, err := lru.New[ttKey, TTEntry](capacity)
	if err != nil {
		return nil, fmt.Errorf("transposition cache: %w", err)
	}
	return &TransTable{entries: entries}, nil
}

// Probe returns the entry stored for the key, with mate scores rebased to
// the probing ply.
func (tt *TransTable) Probe(pos Position, depth int8, maximizing bool, ply int8) (TTEntry, bool) {
	entry, ok := tt.entries.Get(ttKey{pos: pos, depth: depth, maximizing: maximizing})
	if !ok {
		return TTEntry{}, false
	}
	if entry.Score > MateScore-Score(MaxDepth) {
		entry.Score -= Score(ply)
	} else if entry.Score < -MateScore+Score(MaxDepth) {
		entry.Score += Score(ply)
	}
	return entry, true
}

// Store records a search result. Mate scores have the ply folded out before
// storing, the inverse of the Probe adjustment.
func (tt *TransTable) Store(pos Position, depth int8, maximizing bool, ply int8, move Move, score Score, flag int8) {
	if score > MateScore-Score(MaxDepth) {
		score += Score(ply)
	} else if score < -MateScore+Score(MaxDepth) {
		score -= Score(ply)
	}
	tt.entries.Add(ttKey{pos: pos, depth: depth, maximizing: maximizing}, TTEntry{
		Score: score,
		Move:  move,
		Flag:  flag,
	})
}

// Len reports the number of cached entries.
func (tt *TransTable) Len() int {
	return tt.entries.Len()
}

// Purge drops every entry, e.g. between games.
func (tt *TransTable) Purge() {
	tt.entries.Purge()
}
