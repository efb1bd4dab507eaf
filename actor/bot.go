package actor

import (
	"context"

	arena "github.com/wakesync/cmax-arena"
	"github.com/wakesync/cmax-arena/prng"
)

// Bot picks among the legal actions, uniformly or through an optional weight
// function. Its randomness is derived from (matchId, turnIndex), never from
// the clock, so a match against bots replays bit-for-bit.
type Bot[A, O any] struct {
	id      string
	version string
	weights func(A) float64
}

func NewBot[A, O any](id string) *Bot[A, O] {
	return &Bot[A, O]{id: id, version: "1.0.0"}
}

// WithWeights makes the bot draw proportionally to fn over the legal set.
// Actions weighted zero are never picked unless everything else is, too.
func (b *Bot[A, O]) WithWeights(fn func(A) float64) *Bot[A, O] {
	b.weights = fn
	return b
}

func (b *Bot[A, O]) Meta() arena.AgentMeta {
	cfg := map[string]any{"policy": "uniform"}
	if b.weights != nil {
		cfg["policy"] = "weighted"
	}
	return arena.AgentMeta{
		ID:          b.id,
		Version:     b.version,
		DisplayName: "bot " + b.id,
		Kind:        arena.AgentKind_Local,
		Config:      cfg,
	}
}

func (b *Bot[A, O]) Decide(ctx context.Context, in arena.DecideInput[A, O]) (arena.DecideOutput[A], error) {
	rng := prng.New(botSeed(in.MatchID, in.Meta.TurnIndex))
	if b.weights != nil {
		weights := make([]float64, len(in.LegalActions))
		for i, a := range in.LegalActions {
			weights[i] = b.weights(a)
		}
		action, err := prng.WeightedPick(rng, in.LegalActions, weights)
		if err == nil {
			return arena.DecideOutput[A]{Action: action}, nil
		}
		// All weights zero; fall through to a uniform pick.
	}
	action, err := prng.Pick(rng, in.LegalActions)
	if err != nil {
		return arena.DecideOutput[A]{}, err
	}
	return arena.DecideOutput[A]{Action: action}, nil
}
