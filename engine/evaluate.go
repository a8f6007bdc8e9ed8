package engine

import (
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Score is a position evaluation in centipawns, always from the
// white-positive viewpoint: positive favors white no matter whose turn it
// is. Callers flip the sign themselves when they need the mover's
// perspective.
type Score int

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	// MateScore is the sentinel for a checkmated position. It dominates
	// every heuristic score.
	MateScore Score = 10000
	DrawScore Score = 0

	// heuristicCap bounds non-terminal scores strictly below the mate
	// window, so the sentinel dominates every heuristic sum no matter how
	// much material is on the board.
	heuristicCap = MateScore - Score(MaxDepth) - 1
)

// IsMateScore reports whether s encodes a forced mate. Search shortens the
// sentinel by one per ply so that faster mates compare higher, hence the
// window below the raw sentinel.
func IsMateScore(s Score) bool {
	return Abs(s) > MateScore-Score(MaxDepth)
}

// EvalWeights holds the positional term weights in centipawns. A zero weight
// disables its term; material is always counted.
type EvalWeights struct {
	CenterBonus         int // per piece on d4/e4/d5/e5
	ExtendedCenterBonus int // per piece on the ring around the core
	DoubledPawnPenalty  int // per extra pawn stacked on a file
	KingSafetyPenalty   int // uncastled king past the move limit
	KingSafetyMoveLimit int // fullmove number after which the penalty applies
	MobilityWeight      int // per legal move for the side to move
}

// DefaultEvalWeights returns the tuned defaults. CenterBonus deliberately
// outweighs the ~20-move opening mobility swing so that sound central play
// is never scored as a loss out of the start position.
func DefaultEvalWeights() EvalWeights {
	return EvalWeights{
		CenterBonus:         50,
		ExtendedCenterBonus: 15,
		DoubledPawnPenalty:  30,
		KingSafetyPenalty:   60,
		KingSafetyMoveLimit: 10,
		MobilityWeight:      1,
	}
}

// Board masks, square index 0 = a1 .. 63 = h8.
const (
	fileA uint64 = 0x0101010101010101

	squareE1 = 4
	squareE8 = 60
)

var (
	centerMask = mask(27, 28, 35, 36) // d4 e4 d5 e5

	extendedCenterMask = mask(
		18, 19, 20, 21, // c3 d3 e3 f3
		26, 29, // c4 f4
		34, 37, // c5 f5
		42, 43, 44, 45, // c6 d6 e6 f6
	)
)

func mask(squares ...uint) uint64 {
	var m uint64
	for _, sq := range squares {
		m |= 1 << sq
	}
	return m
}

// Evaluator is the static position scorer: a pure function of the position,
// O(board) plus one legal-move enumeration for the mobility term. Terminal
// states come from the Rules adapter, never inferred from material.
type Evaluator struct {
	rules   Rules
	weights EvalWeights
}

func NewEvaluator(rules Rules, weights EvalWeights) *Evaluator {
	return &Evaluator{rules: rules, weights: weights}
}

// Evaluate scores pos white-positive. Checkmate returns the mate sentinel
// signed against the mated side; stalemate scores as a draw.
func (e *Evaluator) Evaluate(pos Position) (Score, error) {
	mate, err := e.rules.IsCheckmate(pos)
	if err != nil {
		return 0, err
	}
	if mate {
		if pos.WhiteToMove() {
			return -MateScore, nil
		}
		return MateScore, nil
	}
	drawn, err := e.rules.IsStalemateOrDraw(pos)
	if err != nil {
		return 0, err
	}
	if drawn {
		return DrawScore, nil
	}

	// The FEN already passed rules validation above.
	board := dragontoothmg.ParseFen(string(pos))

	score := materialScore(&board)
	score += e.centerScore(&board)
	score += e.pawnStructureScore(&board)
	score += e.kingSafetyScore(&board)
	score += e.mobilityScore(&board)
	return Clamp(score, -heuristicCap, heuristicCap), nil
}

func materialScore(b *dragontoothmg.Board) Score {
	return sideMaterial(&b.White) - sideMaterial(&b.Black)
}

func sideMaterial(bb *dragontoothmg.Bitboards) Score {
	total := pawnValue * bits.OnesCount64(bb.Pawns)
	total += knightValue * bits.OnesCount64(bb.Knights)
	total += bishopValue * bits.OnesCount64(bb.Bishops)
	total += rookValue * bits.OnesCount64(bb.Rooks)
	total += queenValue * bits.OnesCount64(bb.Queens)
	return Score(total)
}

func occupancy(bb *dragontoothmg.Bitboards) uint64 {
	return bb.Pawns | bb.Knights | bb.Bishops | bb.Rooks | bb.Queens | bb.Kings
}

func (e *Evaluator) centerScore(b *dragontoothmg.Board) Score {
	if e.weights.CenterBonus == 0 && e.weights.ExtendedCenterBonus == 0 {
		return 0
	}
	white := occupancy(&b.White)
	black := occupancy(&b.Black)

	core := bits.OnesCount64(white&centerMask) - bits.OnesCount64(black&centerMask)
	ring := bits.OnesCount64(white&extendedCenterMask) - bits.OnesCount64(black&extendedCenterMask)
	return Score(core*e.weights.CenterBonus + ring*e.weights.ExtendedCenterBonus)
}

func (e *Evaluator) pawnStructureScore(b *dragontoothmg.Board) Score {
	if e.weights.DoubledPawnPenalty == 0 {
		return 0
	}
	var score Score
	for file := 0; file < 8; file++ {
		fm := fileA << uint(file)
		if n := bits.OnesCount64(b.White.Pawns & fm); n > 1 {
			score -= Score((n - 1) * e.weights.DoubledPawnPenalty)
		}
		if n := bits.OnesCount64(b.Black.Pawns & fm); n > 1 {
			score += Score((n - 1) * e.weights.DoubledPawnPenalty)
		}
	}
	return score
}

// kingSafetyScore penalizes a king still sitting on its start square once
// the opening should be over. A castled king has left e1/e8, so the start
// square is the uncastled proxy.
func (e *Evaluator) kingSafetyScore(b *dragontoothmg.Board) Score {
	if e.weights.KingSafetyPenalty == 0 {
		return 0
	}
	if int(b.Fullmoveno) <= e.weights.KingSafetyMoveLimit {
		return 0
	}
	var score Score
	if b.White.Kings&(1<<squareE1) != 0 {
		score -= Score(e.weights.KingSafetyPenalty)
	}
	if b.Black.Kings&(1<<squareE8) != 0 {
		score += Score(e.weights.KingSafetyPenalty)
	}
	return score
}

func (e *Evaluator) mobilityScore(b *dragontoothmg.Board) Score {
	if e.weights.MobilityWeight == 0 {
		return 0
	}
	moves := len(b.GenerateLegalMoves())
	bonus := Score(moves * e.weights.MobilityWeight)
	if !b.Wtomove {
		bonus = -bonus
	}
	return bonus
}
