package engine

import (
	"fmt"
	"testing"
)

func TestTransTableStoreProbe(t *testing.T) {
	tt, err := NewTransTable(16)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	move := Move{UCI: "e2e4"}
	tt.Store(StartPos, 3, true, 0, move, 42, ExactFlag)

	entry, ok := tt.Probe(StartPos, 3, true, 0)
	if !ok {
		t.Fatalf("expected a hit for the stored key")
	}
	if entry.Score != 42 || entry.Flag != ExactFlag || entry.Move.UCI != "e2e4" {
		t.Fatalf("entry mismatch: %+v", entry)
	}

	// Depth and side are part of the key.
	if _, ok := tt.Probe(StartPos, 2, true, 0); ok {
		t.Fatalf("unexpected hit at a different depth")
	}
	if _, ok := tt.Probe(StartPos, 3, false, 0); ok {
		t.Fatalf("unexpected hit for the other side")
	}
}

func TestTransTableMateScoreRebasing(t *testing.T) {
	tt, err := NewTransTable(16)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	// A mate found 4 plies into the search, stored from ply 4 and probed
	// from ply 2: the probe sees the mate 2 plies closer.
	tt.Store(mateInOneFEN, 5, true, 4, Move{}, MateScore-4, ExactFlag)
	entry, ok := tt.Probe(mateInOneFEN, 5, true, 2)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if entry.Score != MateScore-2 {
		t.Fatalf("expected rebased score %d, got %d", MateScore-2, entry.Score)
	}

	tt.Store(stalemateFEN, 5, false, 4, Move{}, -(MateScore - 4), ExactFlag)
	entry, ok = tt.Probe(stalemateFEN, 5, false, 2)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if entry.Score != -(MateScore - 2) {
		t.Fatalf("expected rebased score %d, got %d", -(MateScore - 2), entry.Score)
	}

	// Heuristic scores pass through untouched.
	tt.Store(StartPos, 5, true, 4, Move{}, 130, ExactFlag)
	entry, ok = tt.Probe(StartPos, 5, true, 2)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if entry.Score != 130 {
		t.Fatalf("heuristic score changed on probe: %d", entry.Score)
	}
}

func TestTransTableBoundedCapacity(t *testing.T) {
	tt, err := NewTransTable(4)
	if err != nil {
		t.Fatalf("new table: %v", err)
	}

	for i := 0; i < 32; i++ {
		pos := Position(fmt.Sprintf("fen-%d", i))
		tt.Store(pos, 1, true, 0, Move{}, Score(i), ExactFlag)
	}
	if tt.Len() > 4 {
		t.Fatalf("cache exceeded its capacity: %d entries", tt.Len())
	}

	tt.Purge()
	if tt.Len() != 0 {
		t.Fatalf("purge left %d entries", tt.Len())
	}
}
