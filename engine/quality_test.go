package engine

import (
	"errors"
	"testing"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	rules := GameRules{}
	c, err := NewClassifier(rules, NewEvaluator(rules, DefaultEvalWeights()), DefaultThresholds())
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}
	return c
}

func TestClassifyRejectsIllegalMove(t *testing.T) {
	c := newTestClassifier(t)
	for _, uci := range []string{"e2e5", "d8d1", "nonsense"} {
		if _, err := c.Classify(StartPos, uci); !errors.Is(err, ErrIllegalMove) {
			t.Fatalf("classify %q: expected ErrIllegalMove, got %v", uci, err)
		}
	}
}

func TestClassifyCentralOpeningMove(t *testing.T) {
	c := newTestClassifier(t)
	verdict, err := c.Classify(StartPos, "e2e4")
	if err != nil {
		t.Fatalf("classify e2e4: %v", err)
	}
	if verdict.Delta < 0 {
		t.Fatalf("sound central development scored negative: %d", verdict.Delta)
	}
	if verdict.Quality == QualityBlunder || verdict.Quality == QualityMistake {
		t.Fatalf("e2e4 classified as %s", verdict.Quality)
	}
}

func TestClassifyStalematingThrowawayIsBlunder(t *testing.T) {
	c := newTestClassifier(t)
	// White is a queen up and stalemates the lone king.
	verdict, err := c.Classify("7k/8/6K1/5Q2/8/8/8/8 w - - 0 1", "f5f7")
	if err != nil {
		t.Fatalf("classify f5f7: %v", err)
	}
	if verdict.Quality != QualityBlunder {
		t.Fatalf("throwing away a won game classified as %s (delta %d)", verdict.Quality, verdict.Delta)
	}
	if verdict.Delta >= 0 {
		t.Fatalf("stalemating from a winning position has delta %d", verdict.Delta)
	}
}

func TestClassifyWinningCaptureIsExcellent(t *testing.T) {
	c := newTestClassifier(t)
	verdict, err := c.Classify("k7/8/8/3q4/8/3R4/8/K7 w - - 0 1", "d3d5")
	if err != nil {
		t.Fatalf("classify d3d5: %v", err)
	}
	if verdict.Quality != QualityExcellent {
		t.Fatalf("winning a queen classified as %s (delta %d)", verdict.Quality, verdict.Delta)
	}
}

func TestClassifyBlackPerspective(t *testing.T) {
	c := newTestClassifier(t)
	// Black wins a hanging rook; the delta is positive for the mover even
	// though the white-positive score drops.
	verdict, err := c.Classify("k7/8/8/3q4/8/3R4/8/7K b - - 0 1", "d5d3")
	if err != nil {
		t.Fatalf("classify d5d3: %v", err)
	}
	if verdict.Delta <= 0 {
		t.Fatalf("black's winning capture has non-positive delta %d", verdict.Delta)
	}
	if verdict.Quality != QualityExcellent {
		t.Fatalf("black's winning capture classified as %s", verdict.Quality)
	}
}

func TestThresholdValidation(t *testing.T) {
	rules := GameRules{}
	eval := NewEvaluator(rules, DefaultEvalWeights())
	bad := Thresholds{Excellent: 10, Good: 20, Neutral: 30, Inaccuracy: 40, Mistake: 50}
	if _, err := NewClassifier(rules, eval, bad); err == nil {
		t.Fatalf("out-of-order thresholds accepted")
	}
}

func TestGoodThresholdIsOrderingOnly(t *testing.T) {
	base := DefaultThresholds()
	moved := DefaultThresholds()
	moved.Good = 75

	// Good and neutral share a bucket; sliding Good between Neutral and
	// Excellent must not change any verdict.
	for _, d := range []int{-400, -200, -100, -50, 0, 40, 60, 80, 100, 200} {
		if base.bucket(d) != moved.bucket(d) {
			t.Fatalf("delta %d graded %s vs %s after moving Good", d, base.bucket(d), moved.bucket(d))
		}
	}
}

func TestBucketMonotonicity(t *testing.T) {
	th := DefaultThresholds()
	deltas := []int{-1000, -400, -300, -200, -150, -100, -50, 0, 50, 100, 150, 1000}
	prev := QualityBlunder
	for _, d := range deltas {
		q := th.bucket(d)
		if q < prev {
			t.Fatalf("bucket regressed at delta %d: %s after %s", d, q, prev)
		}
		prev = q
	}
	if th.bucket(-1000) != QualityBlunder {
		t.Fatalf("large loss not a blunder")
	}
	if th.bucket(1000) != QualityExcellent {
		t.Fatalf("large gain not excellent")
	}
	if th.bucket(0) != QualityGood {
		t.Fatalf("a quiet move should land in the neutral bucket, got %s", th.bucket(0))
	}
}
