package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

const (
	// MaxDepth caps the search tree, counted in plies from the root.
	MaxDepth = 32

	// InfScore sits outside every reachable evaluation, mate included.
	InfScore Score = 32000
)

// Deadline poll interval, in nodes. Every node pays a full legality check
// through the rules adapter, so the interval is kept short.
const nodePollMask = 255

// Search is a fixed-depth minimax with alpha-beta pruning over the Rules
// adapter's legal moves, scored at the leaves by the Static Evaluator and
// memoized in the transposition cache.
//
// Sign convention: white is the maximizer at every level. The maximizing
// flag is fixed at the root from the side to move and alternated by depth
// parity on the way down, so it always agrees with the evaluator's
// white-positive scores. Equal-score moves resolve to the first encountered
// in legal-move order, which keeps results deterministic for a given
// (position, depth).
type Search struct {
	rules Rules
	eval  *Evaluator
	tt    *TransTable
	log   *zap.Logger
}

func NewSearch(rules Rules, eval *Evaluator, tt *TransTable, log *zap.Logger) *Search {
	if log == nil {
		log = zap.NewNop()
	}
	return &Search{rules: rules, eval: eval, tt: tt, log: log}
}

// Result is the outcome of one BestMove call. Depth is the deepest fully
// completed ply; Partial marks a search cut short by the context deadline.
type Result struct {
	Move    Move
	Score   Score
	Depth   int
	Nodes   uint64
	Partial bool
}

type searchState struct {
	ctx     context.Context
	nodes   uint64
	expired bool
	err     error
}

func (st *searchState) halted() bool {
	return st.expired || st.err != nil
}

func (st *searchState) pollDeadline() bool {
	if st.expired {
		return true
	}
	if st.nodes&nodePollMask == 0 {
		select {
		case <-st.ctx.Done():
			st.expired = true
		default:
		}
	}
	return st.expired
}

func (st *searchState) fail(err error) {
	if st.err == nil {
		st.err = err
	}
}

// BestMove searches pos to the requested depth and returns the best move
// with its white-positive score. The search deepens iteratively; when the
// context deadline expires mid-ply, the best move of the deepest completed
// ply is returned with Partial set rather than an error. ErrNoLegalMove is
// returned for terminal positions.
func (s *Search) BestMove(ctx context.Context, pos Position, depth int) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	depth = Clamp(depth, 1, MaxDepth-1)

	moves, err := s.rules.LegalMoves(pos)
	if err != nil {
		return Result{}, err
	}
	if len(moves) == 0 {
		return Result{}, fmt.Errorf("%w in %q", ErrNoLegalMove, string(pos))
	}
	orderMoves(moves)

	st := &searchState{ctx: ctx}

	// Best-effort floor: if the deadline fires before even the first ply
	// completes, the first legal move is still a legal answer.
	result := Result{Move: moves[0], Score: 0, Depth: 0}

	for d := 1; d <= depth; d++ {
		move, score, completed := s.root(pos, moves, d, st)
		if st.err != nil {
			return Result{}, st.err
		}
		if !completed {
			result.Partial = true
			break
		}
		result.Move = move
		result.Score = score
		result.Depth = d
		s.log.Debug("search ply complete",
			zap.Int("depth", d),
			zap.Int("score", int(score)),
			zap.Uint64("nodes", st.nodes),
			zap.String("move", move.UCI),
		)
		if IsMateScore(score) {
			break
		}
	}
	result.Nodes = st.nodes
	return result, nil
}

func (s *Search) root(pos Position, moves []Move, depth int, st *searchState) (Move, Score, bool) {
	maximizing := pos.WhiteToMove()
	alpha, beta := -InfScore, InfScore

	best := moves[0]
	bestScore := InfScore
	if maximizing {
		bestScore = -InfScore
	}

	for _, m := range moves {
		score := s.alphabeta(m.After, depth-1, alpha, beta, !maximizing, 1, st)
		if st.halted() {
			return best, bestScore, false
		}
		if maximizing {
			if score > bestScore {
				bestScore = score
				best = m
			}
			alpha = Max(alpha, bestScore)
		} else {
			if score < bestScore {
				bestScore = score
				best = m
			}
			beta = Min(beta, bestScore)
		}
	}

	s.tt.Store(pos, int8(depth), maximizing, 0, best, bestScore, ExactFlag)
	return best, bestScore, true
}

func (s *Search) alphabeta(pos Position, depth int, alpha, beta Score, maximizing bool, ply int, st *searchState) Score {
	st.nodes++
	if st.pollDeadline() {
		return 0
	}

	alphaOrig, betaOrig := alpha, beta

	if entry, ok := s.tt.Probe(pos, int8(depth), maximizing, int8(ply)); ok {
		switch entry.Flag {
		case ExactFlag:
			return entry.Score
		case BetaFlag:
			if entry.Score >= beta {
				return entry.Score
			}
			alpha = Max(alpha, entry.Score)
		case AlphaFlag:
			if entry.Score <= alpha {
				return entry.Score
			}
			beta = Min(beta, entry.Score)
		}
	}

	moves, err := s.rules.LegalMoves(pos)
	if err != nil {
		st.fail(err)
		return 0
	}

	// Terminal detection comes from the rules, not the move count alone:
	// no moves is either mate or a dead draw.
	if len(moves) == 0 {
		mate, err := s.rules.IsCheckmate(pos)
		if err != nil {
			st.fail(err)
			return 0
		}
		if !mate {
			return DrawScore
		}
		// The side to move is mated. Shorten the sentinel by the ply so
		// nearer mates win comparisons; maximizing tracks white by parity.
		if maximizing {
			return -(MateScore - Score(ply))
		}
		return MateScore - Score(ply)
	}

	if depth <= 0 {
		score, err := s.eval.Evaluate(pos)
		if err != nil {
			st.fail(err)
			return 0
		}
		return score
	}
	orderMoves(moves)

	var best Score
	var bestMove Move
	if maximizing {
		best = -InfScore
		for _, m := range moves {
			score := s.alphabeta(m.After, depth-1, alpha, beta, false, ply+1, st)
			if st.halted() {
				return 0
			}
			if score > best {
				best = score
				bestMove = m
			}
			alpha = Max(alpha, best)
			if alpha >= beta {
				break
			}
		}
	} else {
		best = InfScore
		for _, m := range moves {
			score := s.alphabeta(m.After, depth-1, alpha, beta, true, ply+1, st)
			if st.halted() {
				return 0
			}
			if score < best {
				best = score
				bestMove = m
			}
			beta = Min(beta, best)
			if alpha >= beta {
				break
			}
		}
	}

	flag := ExactFlag
	if best <= alphaOrig {
		flag = AlphaFlag
	} else if best >= betaOrig {
		flag = BetaFlag
	}
	s.tt.Store(pos, int8(depth), maximizing, int8(ply), bestMove, best, flag)

	return best
}
