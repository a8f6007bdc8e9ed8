package engine

import (
	"context"
	"math/rand"

	"go.uber.org/zap"
)

// Config assembles an Engine. Zero values select the defaults; everything
// here is constructor-injected, there are no package-level singletons.
type Config struct {
	// Rules is the rules collaborator. Defaults to GameRules.
	Rules Rules
	// CacheSize bounds the transposition cache in entries.
	CacheSize int
	// Weights are the static evaluation weights.
	Weights EvalWeights
	// Thresholds are the move-quality bucket bounds.
	Thresholds Thresholds
	// Rand drives the difficulty policies. Defaults to a time-seeded source.
	Rand *rand.Rand
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// Engine is the facade exposed to callers such as a game server: move
// requests by difficulty tier, single-move quality verdicts, raw position
// scores and narrative feedback. The engine is synchronous and stateless
// per call; the transposition cache is thread-safe, so one Engine may be
// shared across goroutines.
type Engine struct {
	rules      Rules
	eval       *Evaluator
	search     *Search
	selector   *Selector
	classifier *Classifier
	tt         *TransTable
	log        *zap.Logger
}

func New(cfg Config) (*Engine, error) {
	if cfg.Rules == nil {
		cfg.Rules = GameRules{}
	}
	if cfg.Weights == (EvalWeights{}) {
		cfg.Weights = DefaultEvalWeights()
	}
	if cfg.Thresholds == (Thresholds{}) {
		cfg.Thresholds = DefaultThresholds()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	tt, err := NewTransTable(cfg.CacheSize)
	if err != nil {
		return nil, err
	}
	eval := NewEvaluator(cfg.Rules, cfg.Weights)
	search := NewSearch(cfg.Rules, eval, tt, cfg.Logger)
	classifier, err := NewClassifier(cfg.Rules, eval, cfg.Thresholds)
	if err != nil {
		return nil, err
	}

	return &Engine{
		rules:      cfg.Rules,
		eval:       eval,
		search:     search,
		selector:   NewSelector(cfg.Rules, eval, search, cfg.Rand, cfg.Logger),
		classifier: classifier,
		tt:         tt,
		log:        cfg.Logger,
	}, nil
}

// Rules exposes the engine's rules collaborator, e.g. for callers that need
// to validate external input against the same rule set.
func (e *Engine) Rules() Rules {
	return e.rules
}

// RequestMove picks a move for the side to move at the given difficulty
// tier. Deadlines travel in ctx; on expiry the strongest move found so far
// is returned rather than an error. Returns ErrNoLegalMove on terminal
// positions.
func (e *Engine) RequestMove(ctx context.Context, pos Position, tier int) (Move, error) {
	move, err := e.selector.SelectMove(ctx, pos, tier)
	if err != nil {
		return Move{}, err
	}
	e.log.Debug("move selected",
		zap.Int("tier", tier),
		zap.String("move", move.UCI),
		zap.String("san", move.SAN),
	)
	return move, nil
}

// EvaluateMove grades an already-chosen move. An illegal candidate returns
// ErrIllegalMove; it is never coerced into a verdict.
func (e *Engine) EvaluateMove(pos Position, uci string) (Verdict, error) {
	return e.classifier.Classify(pos, uci)
}

// EvaluatePosition returns the white-positive static score of pos.
func (e *Engine) EvaluatePosition(pos Position) (Score, error) {
	return e.eval.Evaluate(pos)
}

// GenerateFeedback summarizes the recent verdicts into short prose. It
// never fails: an unreadable position or empty history still produces a
// generic message.
func (e *Engine) GenerateFeedback(pos Position, recent []Verdict) string {
	if _, err := e.rules.MoveNumber(pos); err != nil {
		e.log.Warn("feedback requested for unreadable position", zap.Error(err))
		return "Keep developing your pieces and watch for tactics."
	}
	return Summarize(pos, recent)
}

// SearchBestMove runs the search directly at a fixed depth, bypassing the
// difficulty ladder. Useful for analysis callers that want the strongest
// line and its score.
func (e *Engine) SearchBestMove(ctx context.Context, pos Position, depth int) (Result, error) {
	return e.search.BestMove(ctx, pos, depth)
}

// CacheLen reports the number of transposition entries currently held.
func (e *Engine) CacheLen() int {
	return e.tt.Len()
}

// ResetCache drops all transposition entries, e.g. between games.
func (e *Engine) ResetCache() {
	e.tt.Purge()
}
