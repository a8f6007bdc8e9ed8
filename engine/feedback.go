package engine

import (
	"fmt"
	"math/bits"

	"github.com/dylhunn/dragontoothmg"
)

// Phase is the coarse stage of the game, used to pick advice.
type Phase int8

const (
	PhaseOpening Phase = iota
	PhaseMiddlegame
	PhaseEndgame
)

func (p Phase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseMiddlegame:
		return "middlegame"
	case PhaseEndgame:
		return "endgame"
	default:
		return "unknown"
	}
}

// Phase detection rules: still the opening while the move counter is low and
// few minor pieces have left their home squares; the endgame once few
// non-pawn pieces remain; middlegame otherwise.
const (
	openingMoveLimit      = 10
	openingDevelopedLimit = 3
	endgamePieceLimit     = 6
)

// Home squares of the minor pieces, index 0 = a1 .. 63 = h8.
var minorHomeMask = mask(
	1, 2, 5, 6, // b1 c1 f1 g1
	57, 58, 61, 62, // b8 c8 f8 g8
)

// GamePhase derives the phase from the move count, developed minor pieces
// and remaining material; a simple deterministic rule, not an evaluation.
func GamePhase(pos Position) Phase {
	board := dragontoothmg.ParseFen(string(pos))

	minors := board.White.Knights | board.White.Bishops | board.Black.Knights | board.Black.Bishops
	developed := bits.OnesCount64(minors &^ minorHomeMask)

	majorsAndMinors := bits.OnesCount64(
		minors | board.White.Rooks | board.White.Queens | board.Black.Rooks | board.Black.Queens,
	)

	switch {
	case majorsAndMinors <= endgamePieceLimit:
		return PhaseEndgame
	case int(board.Fullmoveno) <= openingMoveLimit && developed < openingDevelopedLimit:
		return PhaseOpening
	default:
		return PhaseMiddlegame
	}
}

// How many of the most recent verdicts feed the summary.
const feedbackWindow = 4

var phaseAdvice = map[Phase]string{
	PhaseOpening:    "Develop your minor pieces toward the center and castle early.",
	PhaseMiddlegame: "Look for tactics, keep your pieces active and your king sheltered.",
	PhaseEndgame:    "Activate your king and push your passed pawns.",
}

// Summarize turns the last few move verdicts into short prose guidance for
// the player, tuned to the detected game phase. An empty history yields a
// generic phase message, never an error.
func Summarize(pos Position, recent []Verdict) string {
	phase := GamePhase(pos)
	advice := phaseAdvice[phase]

	if len(recent) == 0 {
		return fmt.Sprintf("A fresh %s position. %s", phase, advice)
	}

	window := recent
	if len(window) > feedbackWindow {
		window = window[len(window)-feedbackWindow:]
	}
	total := 0
	for _, v := range window {
		total += v.Delta
	}
	average := total / len(window)

	var assessment string
	switch {
	case average > 50:
		assessment = "You're playing strong, purposeful chess right now."
	case average > -50:
		assessment = "Solid, steady play over your last few moves."
	case average > -150:
		assessment = "A few inaccuracies are creeping in; slow down before you commit."
	default:
		assessment = "Your last moves gave away real ground. Check what each move hangs before playing it."
	}

	return fmt.Sprintf("%s You're in the %s. %s", assessment, phase, advice)
}
