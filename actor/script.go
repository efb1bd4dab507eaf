package actor

import (
	"context"
	"sync"

	arena "github.com/wakesync/cmax-arena"
)

// Script plays a fixed action list in order and falls back to the first
// legal action once the script is exhausted. Useful for regression harnesses
// and for forcing exact betting lines in tests.
type Script[A, O any] struct {
	id      string
	actions []A

	mu   sync.Mutex
	next int
}

func NewScript[A, O any](id string, actions []A) *Script[A, O] {
	return &Script[A, O]{id: id, actions: actions}
}

func (s *Script[A, O]) Meta() arena.AgentMeta {
	return arena.AgentMeta{
		ID:          s.id,
		Version:     "1.0.0",
		DisplayName: "script " + s.id,
		Kind:        arena.AgentKind_Local,
		Config:      map[string]any{"length": len(s.actions)},
	}
}

func (s *Script[A, O]) Decide(ctx context.Context, in arena.DecideInput[A, O]) (arena.DecideOutput[A], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next < len(s.actions) {
		action := s.actions[s.next]
		s.next++
		return arena.DecideOutput[A]{Action: action}, nil
	}
	return arena.DecideOutput[A]{Action: in.LegalActions[0], Reason: "script exhausted"}, nil
}
