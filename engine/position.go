package engine

import (
	"strconv"
	"strings"
)

// Position is an opaque, canonical FEN serialization of the full game state:
// board, side to move, castling rights, en-passant square and clocks.
// Positions are immutable values; new ones are produced only by the Rules
// adapter when a move is applied.
type Position string

// StartPos is the standard initial position.
const StartPos Position = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// WhiteToMove reports whether white is the side to move. The side-to-move
// field is the second field of the FEN.
func (p Position) WhiteToMove() bool {
	fields := strings.Fields(string(p))
	if len(fields) < 2 {
		return true
	}
	return fields[1] == "w"
}

// fullmoveNumber reads the fullmove counter (sixth FEN field). Returns 1 when
// the field is missing or malformed.
func (p Position) fullmoveNumber() int {
	fields := strings.Fields(string(p))
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PieceType identifies a kind of chessman, independent of color.
type PieceType int8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Material values in centipawns.
const (
	pawnValue   = 100
	knightValue = 320
	bishopValue = 330
	rookValue   = 500
	queenValue  = 900
	kingValue   = 0
)

func pieceValue(p PieceType) int {
	switch p {
	case Pawn:
		return pawnValue
	case Knight:
		return knightValue
	case Bishop:
		return bishopValue
	case Rook:
		return rookValue
	case Queen:
		return queenValue
	default:
		return kingValue
	}
}

// Move is a validated, applied move. Moves are produced only by the Rules
// adapter; everything here is a value, including the resulting position.
type Move struct {
	From     string
	To       string
	Piece    PieceType
	Promo    PieceType
	Captured PieceType
	After    Position
	SAN      string
	UCI      string
}

// Rules is the external rules collaborator. It owns legal-move generation,
// move application and terminal-state detection; the engine never
// reimplements these.
type Rules interface {
	// LegalMoves enumerates every legal move from pos, in a stable order.
	LegalMoves(pos Position) ([]Move, error)
	// Apply validates a candidate in UCI notation against pos and returns
	// the applied move, or ErrIllegalMove.
	Apply(pos Position, uci string) (Move, error)
	IsCheck(pos Position) (bool, error)
	IsCheckmate(pos Position) (bool, error)
	IsStalemateOrDraw(pos Position) (bool, error)
	MoveNumber(pos Position) (int, error)
}
