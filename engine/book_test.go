package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBookSourceProposesBookedMove(t *testing.T) {
	book := NewBookSource(map[Position][]string{
		StartPos: {"e2e4"},
	}, nil)

	move, err := book.ProposeMove(context.Background(), StartPos)
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if move != "e2e4" {
		t.Fatalf("expected the booked move, got %s", move)
	}

	if _, err := book.ProposeMove(context.Background(), foolsMateFEN); !errors.Is(err, ErrOutOfBook) {
		t.Fatalf("expected ErrOutOfBook, got %v", err)
	}
}

func TestLoadBookSourceFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.csv")
	contents := "\"" + string(StartPos) + "\",e2e4\n" +
		"\"" + string(StartPos) + "\",d2d4\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write book: %v", err)
	}

	book, err := LoadBookSource(path, nil)
	if err != nil {
		t.Fatalf("load book: %v", err)
	}
	if book.Len() != 1 {
		t.Fatalf("expected one booked position, got %d", book.Len())
	}

	// Without randomness the first alternative wins.
	move, err := book.ProposeMove(context.Background(), StartPos)
	if err != nil {
		t.Fatalf("propose: %v", err)
	}
	if move != "e2e4" {
		t.Fatalf("expected the first book line, got %s", move)
	}
}

func TestLoadBookSourceMissingFile(t *testing.T) {
	if _, err := LoadBookSource(filepath.Join(t.TempDir(), "absent.csv"), nil); err == nil {
		t.Fatalf("expected an error for a missing book file")
	}
}

func TestBookBackedAdvisedMove(t *testing.T) {
	eng := newTestEngine(t)
	book := NewBookSource(map[Position][]string{
		StartPos: {"e2e4"},
	}, nil)

	move, prov, err := eng.AdvisedMove(context.Background(), book, StartPos, MaxTier)
	if err != nil {
		t.Fatalf("advised move: %v", err)
	}
	if prov.Origin != OriginExternal || move.UCI != "e2e4" {
		t.Fatalf("book move not used: origin %q, move %s", prov.Origin, move.UCI)
	}

	// Out of book after the reply: the engine takes over.
	_, prov, err = eng.AdvisedMove(context.Background(), book, move.After, 3)
	if err != nil {
		t.Fatalf("fallback: %v", err)
	}
	if prov.Origin != OriginEngine {
		t.Fatalf("expected engine fallback out of book, got %q", prov.Origin)
	}
}
