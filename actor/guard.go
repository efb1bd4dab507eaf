package actor

import (
	"context"
	"fmt"

	arena "github.com/wakesync/cmax-arena"
)

// Guard wraps an untrusted agent so that panics and errors inside Decide
// degrade to an error the engine recovers from with its fallback action, and
// free-form reasons are sanitized before they can reach a log. LLM and
// webhook agents should always run guarded.
type Guard[A, O any] struct {
	inner arena.Agent[A, O]
}

func NewGuard[A, O any](inner arena.Agent[A, O]) *Guard[A, O] {
	return &Guard[A, O]{inner: inner}
}

func (g *Guard[A, O]) Meta() arena.AgentMeta {
	return g.inner.Meta()
}

func (g *Guard[A, O]) Decide(ctx context.Context, in arena.DecideInput[A, O]) (out arena.DecideOutput[A], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("agent %s panicked: %v", g.inner.Meta().ID, r)
			out = arena.DecideOutput[A]{Reason: arena.SanitizeReason(err.Error())}
		}
	}()
	out, err = g.inner.Decide(ctx, in)
	if err != nil {
		return arena.DecideOutput[A]{Reason: arena.SanitizeReason(err.Error())}, err
	}
	out.Reason = arena.SanitizeReason(out.Reason)
	return out, nil
}

// Warmup forwards to the inner agent when it supports warmup.
func (g *Guard[A, O]) Warmup(ctx context.Context) error {
	if w, ok := g.inner.(arena.Warmer); ok {
		return w.Warmup(ctx)
	}
	return nil
}
