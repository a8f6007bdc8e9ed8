package engine

import "sort"

// Most Valuable Victim - Least Valuable Aggressor; used to score & sort
// captures so tactical shots are searched first and cutoffs come early.
var mvvLva = [7][7]int{
	{0, 0, 0, 0, 0, 0, 0},
	{0, 14, 13, 12, 11, 10, 9},  // victim Pawn
	{0, 24, 23, 22, 21, 20, 19}, // victim Knight
	{0, 34, 33, 32, 31, 30, 29}, // victim Bishop
	{0, 44, 43, 42, 41, 40, 39}, // victim Rook
	{0, 54, 53, 52, 51, 50, 49}, // victim Queen
	{0, 0, 0, 0, 0, 0, 0},       // victim King
}

// Promotions above captures, captures above quiet moves.
const (
	promotionOffset = 20000
	captureOffset   = 15000
)

func moveOrderScore(m Move) int {
	score := 0
	if m.Promo != NoPieceType {
		score += promotionOffset + pieceValue(m.Promo)
	}
	if m.Captured != NoPieceType {
		score += captureOffset + mvvLva[m.Captured][m.Piece]
	}
	return score
}

// orderMoves sorts in place, best candidates first. The sort is stable so
// quiet moves keep the generator's order and the search stays deterministic.
func orderMoves(moves []Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return moveOrderScore(moves[i]) > moveOrderScore(moves[j])
	})
}
