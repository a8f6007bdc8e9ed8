package engine

import (
	"fmt"
)

// Quality is the ordered verdict ladder for a played move, worst first.
type Quality int8

const (
	QualityBlunder Quality = iota
	QualityMistake
	QualityInaccuracy
	QualityGood
	QualityExcellent
)

func (q Quality) String() string {
	switch q {
	case QualityBlunder:
		return "blunder"
	case QualityMistake:
		return "mistake"
	case QualityInaccuracy:
		return "inaccuracy"
	case QualityGood:
		return "good"
	case QualityExcellent:
		return "excellent"
	default:
		return "unknown"
	}
}

// Thresholds are the lower delta bounds of each bucket, in centipawns from
// the mover's perspective. They must be strictly decreasing top to bottom;
// anything below Mistake is a blunder. Neutral and Good share the
// QualityGood verdict, so a quiet move is not punished for changing
// nothing.
type Thresholds struct {
	Excellent int
	// Good participates in ordering validation only: the good and neutral
	// ranges share the QualityGood bucket, so everything between Neutral
	// and Excellent grades the same regardless of where Good sits.
	Good       int
	Neutral    int
	Inaccuracy int
	Mistake    int
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Excellent:  100,
		Good:       50,
		Neutral:    -50,
		Inaccuracy: -150,
		Mistake:    -300,
	}
}

func (t Thresholds) validate() error {
	if t.Excellent > t.Good && t.Good > t.Neutral && t.Neutral > t.Inaccuracy && t.Inaccuracy > t.Mistake {
		return nil
	}
	return fmt.Errorf("quality thresholds out of order: %+v", t)
}

// bucket maps a mover-perspective delta to its quality. The mapping is
// monotone by construction: a larger delta never lands in a worse bucket.
func (t Thresholds) bucket(delta int) Quality {
	switch {
	case delta > t.Excellent:
		return QualityExcellent
	case delta > t.Neutral:
		return QualityGood
	case delta > t.Inaccuracy:
		return QualityInaccuracy
	case delta > t.Mistake:
		return QualityMistake
	default:
		return QualityBlunder
	}
}

// Verdict is a classified move: the evaluation swing it caused (positive is
// good for the side that moved) and its bucket.
type Verdict struct {
	Move    Move
	Delta   int
	Quality Quality
}

// Classifier grades single moves by comparing static evaluation before and
// after, sign-adjusted to the mover.
type Classifier struct {
	rules      Rules
	eval       *Evaluator
	thresholds Thresholds
}

func NewClassifier(rules Rules, eval *Evaluator, thresholds Thresholds) (*Classifier, error) {
	if err := thresholds.validate(); err != nil {
		return nil, err
	}
	return &Classifier{rules: rules, eval: eval, thresholds: thresholds}, nil
}

// Classify validates uci in pos and grades it. An illegal candidate returns
// ErrIllegalMove and no verdict; it is an error condition, not a bucket.
func (c *Classifier) Classify(pos Position, uci string) (Verdict, error) {
	move, err := c.rules.Apply(pos, uci)
	if err != nil {
		return Verdict{}, err
	}

	before, err := c.eval.Evaluate(pos)
	if err != nil {
		return Verdict{}, err
	}
	after, err := c.eval.Evaluate(move.After)
	if err != nil {
		return Verdict{}, err
	}

	// Scores are white-positive; flip for a black mover so positive always
	// means the move helped whoever played it.
	delta := int(after - before)
	if !pos.WhiteToMove() {
		delta = -delta
	}

	return Verdict{
		Move:    move,
		Delta:   delta,
		Quality: c.thresholds.bucket(delta),
	}, nil
}
