package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Difficulty tiers form a closed ladder; both search depth and accuracy are
// monotone non-decreasing in the tier.
const (
	MinTier = 1
	MaxTier = 8
)

// tierPolicy is one rung of the ladder. Random rungs skip the search
// entirely; searching rungs play the search's best move with probability
// Accuracy and otherwise sample among the strongest one-ply alternatives.
type tierPolicy struct {
	Random        bool
	BlunderFilter bool
	Depth         int
	Accuracy      float64
}

// tierPolicies is the whole difficulty design in one ordered table, indexed
// by tier-1. Monotonicity of Depth and Accuracy over the table is a tested
// invariant.
var tierPolicies = [MaxTier]tierPolicy{
	{Random: true},
	{Random: true, BlunderFilter: true},
	{Depth: 1, Accuracy: 0.55},
	{Depth: 2, Accuracy: 0.65},
	{Depth: 2, Accuracy: 0.75},
	{Depth: 3, Accuracy: 0.85},
	{Depth: 4, Accuracy: 0.95},
	{Depth: 5, Accuracy: 1.0},
}

// A reply capturing at least this much material marks a candidate as an
// obvious blunder for the tier-2 filter.
const blunderCaptureThreshold = rookValue

// How many ranked alternatives the mid-tier inaccuracy sampler draws from.
const alternativeSampleSize = 3

// Selector maps a difficulty tier to a move-selection policy. Randomness
// lives only here, above the deterministic search layer; the rand source is
// injected so tests can seed it.
type Selector struct {
	rules  Rules
	eval   *Evaluator
	search *Search
	rng    *rand.Rand
	log    *zap.Logger
}

func NewSelector(rules Rules, eval *Evaluator, search *Search, rng *rand.Rand, log *zap.Logger) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Selector{rules: rules, eval: eval, search: search, rng: rng, log: log}
}

// SelectMove picks a move for the side to move at the given tier.
// ErrNoLegalMove on terminal positions, ErrTierOutOfRange outside the
// ladder.
func (s *Selector) SelectMove(ctx context.Context, pos Position, tier int) (Move, error) {
	if tier < MinTier || tier > MaxTier {
		return Move{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrTierOutOfRange, tier, MinTier, MaxTier)
	}
	policy := tierPolicies[tier-1]

	if policy.Random {
		return s.randomMove(pos, policy.BlunderFilter)
	}
	return s.searchedMove(ctx, pos, tier, policy)
}

func (s *Selector) randomMove(pos Position, filtered bool) (Move, error) {
	moves, err := s.rules.LegalMoves(pos)
	if err != nil {
		return Move{}, err
	}
	if len(moves) == 0 {
		return Move{}, fmt.Errorf("%w in %q", ErrNoLegalMove, string(pos))
	}

	candidates := moves
	if filtered {
		if safe, err := s.filterObviousBlunders(moves); err != nil {
			return Move{}, err
		} else if len(safe) > 0 {
			candidates = safe
		}
	}
	return candidates[s.rng.Intn(len(candidates))], nil
}

// filterObviousBlunders drops moves whose position hands the opponent an
// immediate high-value capture. The caller falls back to the unfiltered
// list when nothing survives.
func (s *Selector) filterObviousBlunders(moves []Move) ([]Move, error) {
	safe := make([]Move, 0, len(moves))
	for _, m := range moves {
		replies, err := s.rules.LegalMoves(m.After)
		if err != nil {
			return nil, err
		}
		worst := 0
		for _, reply := range replies {
			worst = Max(worst, pieceValue(reply.Captured))
		}
		if worst < blunderCaptureThreshold {
			safe = append(safe, m)
		}
	}
	return safe, nil
}

func (s *Selector) searchedMove(ctx context.Context, pos Position, tier int, policy tierPolicy) (Move, error) {
	result, err := s.search.BestMove(ctx, pos, policy.Depth)
	if err != nil {
		return Move{}, err
	}

	if policy.Accuracy >= 1 || s.rng.Float64() < policy.Accuracy {
		return result.Move, nil
	}

	// Controlled inaccuracy: sample among the strongest one-ply
	// alternatives instead of the search move.
	alternatives, err := s.rankedAlternatives(pos)
	if err != nil {
		return Move{}, err
	}
	if len(alternatives) == 0 {
		return result.Move, nil
	}
	pick := alternatives[s.rng.Intn(len(alternatives))]
	s.log.Debug("played inaccuracy by policy",
		zap.Int("tier", tier),
		zap.String("best", result.Move.UCI),
		zap.String("played", pick.UCI),
	)
	return pick, nil
}

// rankedAlternatives orders the legal moves by their one-ply evaluation from
// the mover's perspective and keeps the strongest few. Sorting is stable so
// equal scores preserve legal-move order.
func (s *Selector) rankedAlternatives(pos Position) ([]Move, error) {
	moves, err := s.rules.LegalMoves(pos)
	if err != nil {
		return nil, err
	}
	if len(moves) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoLegalMove, string(pos))
	}

	type scoredMove struct {
		move  Move
		score Score
	}
	scored := make([]scoredMove, 0, len(moves))
	whiteMoves := pos.WhiteToMove()
	for _, m := range moves {
		score, err := s.eval.Evaluate(m.After)
		if err != nil {
			return nil, err
		}
		if !whiteMoves {
			score = -score
		}
		scored = append(scored, scoredMove{move: m, score: score})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	keep := Min(alternativeSampleSize, len(scored))
	out := make([]Move, 0, keep)
	for _, sm := range scored[:keep] {
		out = append(out, sm.move)
	}
	return out, nil
}
