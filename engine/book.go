package engine

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
)

// ErrOutOfBook reports that a position has no book entry. AdvisedMove
// treats it like any other source failure and falls back to the search.
var ErrOutOfBook = errors.New("position not in opening book")

// BookSource serves opening moves from a prepared book. It implements
// MoveSource, so it plugs straight into AdvisedMove as an external source.
// The book never validates its own lines; the engine re-checks every
// proposal against the rules like any other untrusted input.
type BookSource struct {
	lines map[Position][]string
	rng   *rand.Rand
}

// NewBookSource builds a book from in-memory lines. A nil rng plays the
// first listed move for each position, which keeps games reproducible.
func NewBookSource(lines map[Position][]string, rng *rand.Rand) *BookSource {
	return &BookSource{lines: lines, rng: rng}
}

// LoadBookSource reads a CSV book file of `fen,move` records, one move per
// line. Repeated positions accumulate alternatives.
func LoadBookSource(path string, rng *rand.Rand) (*BookSource, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening book: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2

	lines := make(map[Position][]string)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("opening book %s: %w", path, err)
		}
		pos := Position(record[0])
		lines[pos] = append(lines[pos], record[1])
	}
	return &BookSource{lines: lines, rng: rng}, nil
}

// ProposeMove returns a book move for pos or ErrOutOfBook.
func (b *BookSource) ProposeMove(_ context.Context, pos Position) (string, error) {
	moves, ok := b.lines[pos]
	if !ok || len(moves) == 0 {
		return "", fmt.Errorf("%w: %q", ErrOutOfBook, string(pos))
	}
	if b.rng == nil || len(moves) == 1 {
		return moves[0], nil
	}
	return moves[b.rng.Intn(len(moves))], nil
}

// Len reports the number of booked positions.
func (b *BookSource) Len() int {
	return len(b.lines)
}
