package engine

import (
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// GameRules is the default Rules adapter, backed by notnil/chess. It is
// stateless; every call parses the FEN, so values can be shared freely
// between goroutines.
type GameRules struct{}

func (GameRules) position(pos Position) (*chess.Position, error) {
	fen, err := chess.FEN(string(pos))
	if err != nil {
		return nil, fmt.Errorf("parse position %q: %w", string(pos), err)
	}
	return chess.NewGame(fen).Position(), nil
}

func (r GameRules) LegalMoves(pos Position) ([]Move, error) {
	p, err := r.position(pos)
	if err != nil {
		return nil, err
	}
	valid := p.ValidMoves()
	moves := make([]Move, 0, len(valid))
	for _, m := range valid {
		moves = append(moves, buildMove(p, m))
	}
	return moves, nil
}

func (r GameRules) Apply(pos Position, uci string) (Move, error) {
	p, err := r.position(pos)
	if err != nil {
		return Move{}, err
	}
	candidate, err := chess.UCINotation{}.Decode(p, uci)
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q is not a move", ErrIllegalMove, uci)
	}
	for _, m := range p.ValidMoves() {
		if m.S1() == candidate.S1() && m.S2() == candidate.S2() && m.Promo() == candidate.Promo() {
			return buildMove(p, m), nil
		}
	}
	return Move{}, fmt.Errorf("%w: %q in %q", ErrIllegalMove, uci, string(pos))
}

func (r GameRules) IsCheck(pos Position) (bool, error) {
	if _, err := r.position(pos); err != nil {
		return false, err
	}
	b := dragontoothmg.ParseFen(string(pos))
	return b.OurKingInCheck(), nil
}

func (r GameRules) IsCheckmate(pos Position) (bool, error) {
	p, err := r.position(pos)
	if err != nil {
		return false, err
	}
	return p.Status() == chess.Checkmate, nil
}

// IsStalemateOrDraw reports position-level draws: stalemate and dead
// positions with insufficient mating material. Repetition and fifty-move
// draws live at the game level, outside the adapter's position view.
func (r GameRules) IsStalemateOrDraw(pos Position) (bool, error) {
	p, err := r.position(pos)
	if err != nil {
		return false, err
	}
	if p.Status() == chess.Stalemate {
		return true, nil
	}
	return insufficientMaterial(pos), nil
}

// insufficientMaterial reports bare-king endings no side can win: K vs K,
// K+B vs K and K+N vs K.
func insufficientMaterial(pos Position) bool {
	b := dragontoothmg.ParseFen(string(pos))
	heavy := b.White.Pawns | b.Black.Pawns |
		b.White.Rooks | b.Black.Rooks |
		b.White.Queens | b.Black.Queens
	if heavy != 0 {
		return false
	}
	minors := b.White.Knights | b.White.Bishops | b.Black.Knights | b.Black.Bishops
	return bits.OnesCount64(minors) <= 1
}

func (r GameRules) MoveNumber(pos Position) (int, error) {
	if _, err := r.position(pos); err != nil {
		return 0, err
	}
	return pos.fullmoveNumber(), nil
}

func buildMove(p *chess.Position, m *chess.Move) Move {
	captured := NoPieceType
	if m.HasTag(chess.EnPassant) {
		captured = Pawn
	} else if target := p.Board().Piece(m.S2()); target != chess.NoPiece {
		captured = fromChessPieceType(target.Type())
	}
	after := p.Update(m)
	return Move{
		From:     m.S1().String(),
		To:       m.S2().String(),
		Piece:    fromChessPieceType(p.Board().Piece(m.S1()).Type()),
		Promo:    fromChessPieceType(m.Promo()),
		Captured: captured,
		After:    Position(after.String()),
		SAN:      chess.AlgebraicNotation{}.Encode(p, m),
		UCI:      chess.UCINotation{}.Encode(p, m),
	}
}

func fromChessPieceType(t chess.PieceType) PieceType {
	switch t {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	default:
		return NoPieceType
	}
}
