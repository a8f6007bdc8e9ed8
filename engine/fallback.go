package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MoveSource proposes moves from outside the engine, e.g. an opening book
// service or a remote advisor. Proposals are untrusted and validated before
// use.
type MoveSource interface {
	ProposeMove(ctx context.Context, pos Position) (string, error)
}

// Origin labels where an advised move ultimately came from.
type Origin string

const (
	OriginExternal Origin = "external"
	OriginEngine   Origin = "engine"
)

// Provenance records which source produced a move and, when the engine had
// to step in, why the external proposal was discarded.
type Provenance struct {
	RequestID string
	Origin    Origin
	// Reason is empty for external moves; otherwise it describes the
	// rejected proposal.
	Reason string
}

// AdvisedMove asks src for a move and falls back to the engine's own
// selection when the proposal is malformed, illegal or the source errors.
// The fallback never propagates the source failure; only engine-side
// failures (no legal move, bad tier) surface as errors.
func (e *Engine) AdvisedMove(ctx context.Context, src MoveSource, pos Position, tier int) (Move, Provenance, error) {
	prov := Provenance{RequestID: uuid.NewString(), Origin: OriginExternal}

	if src != nil {
		proposal, err := src.ProposeMove(ctx, pos)
		if err == nil {
			move, applyErr := e.rules.Apply(pos, proposal)
			if applyErr == nil {
				e.log.Debug("external move accepted",
					zap.String("request_id", prov.RequestID),
					zap.String("move", proposal),
				)
				return move, prov, nil
			}
			err = fmt.Errorf("%w: proposal %q: %v", ErrMalformedExternalMove, proposal, applyErr)
		}
		prov.Reason = err.Error()
		e.log.Warn("external move source failed, falling back",
			zap.String("request_id", prov.RequestID),
			zap.Error(err),
		)
	} else {
		prov.Reason = "no external source configured"
	}

	prov.Origin = OriginEngine
	move, err := e.RequestMove(ctx, pos, tier)
	if err != nil {
		return Move{}, prov, err
	}
	return move, prov, nil
}
