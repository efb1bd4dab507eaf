package arena

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// pickGame: two players each pick one number from {1, 2, 3}; the higher pick
// wins. Small enough to trace by hand, rich enough to exercise fallbacks.
type pickState struct {
	Picks [2]int `json:"picks"`
	Turn  int    `json:"turn"`
}

type pickObs struct {
	Turn        int `json:"turn"`
	PlayerIndex int `json:"playerIndex"`
}

type pickGame struct {
	stepErr error
}

func (g *pickGame) ID() string                    { return "pick" }
func (g *pickGame) Version() string               { return "1.0.0" }
func (g *pickGame) PlayerCount() PlayerCountRange { return PlayerCountRange{Min: 2, Max: 2} }

func (g *pickGame) Reset(in ResetInput[struct{}]) (*pickState, error) {
	if in.NumPlayers != 2 {
		return nil, errors.New("pick: two players only")
	}
	return &pickState{}, nil
}

func (g *pickGame) Observe(s *pickState, playerIdx int) (pickObs, error) {
	return pickObs{Turn: s.Turn, PlayerIndex: playerIdx}, nil
}

func (g *pickGame) LegalActions(s *pickState, playerIdx int) []int {
	if s.Turn != playerIdx {
		return nil
	}
	return []int{1, 2, 3}
}

func (g *pickGame) CurrentPlayer(s *pickState) int {
	if s.Turn >= 2 {
		return UnsetValue
	}
	return s.Turn
}

func (g *pickGame) Step(in StepInput[*pickState, int]) (StepOutput[*pickState], error) {
	if g.stepErr != nil {
		return StepOutput[*pickState]{}, g.stepErr
	}
	s := in.State
	s.Picks[in.PlayerIndex] = in.Action
	s.Turn++
	return StepOutput[*pickState]{State: s}, nil
}

func (g *pickGame) IsTerminal(s *pickState) bool {
	return s.Turn >= 2
}

func (g *pickGame) Results(s *pickState) (MatchResults, error) {
	players := make([]PlayerResult, 2)
	for i := 0; i < 2; i++ {
		rank := 1
		if s.Picks[1-i] > s.Picks[i] {
			rank = 2
		}
		players[i] = PlayerResult{PlayerIndex: i, Score: float64(s.Picks[i]), Rank: rank}
	}
	results := MatchResults{Players: players}
	switch {
	case s.Picks[0] == s.Picks[1]:
		results.IsDraw = true
	case s.Picks[0] > s.Picks[1]:
		w := 0
		results.Winner = &w
	default:
		w := 1
		results.Winner = &w
	}
	return results, nil
}

// rpsGame: one simultaneous round of rock-paper-scissors, sequenced as two
// turns with the pending choice hidden from the second player.
type rpsState struct {
	Moves [2]string `json:"moves"`
	Turn  int       `json:"turn"`
}

type rpsObs struct {
	Turn        int `json:"turn"`
	PlayerIndex int `json:"playerIndex"`
}

type rpsGame struct{}

func (g *rpsGame) ID() string                    { return "rps" }
func (g *rpsGame) Version() string               { return "1.0.0" }
func (g *rpsGame) PlayerCount() PlayerCountRange { return PlayerCountRange{Min: 2, Max: 2} }

func (g *rpsGame) Reset(in ResetInput[struct{}]) (*rpsState, error) {
	return &rpsState{}, nil
}

func (g *rpsGame) Observe(s *rpsState, playerIdx int) (rpsObs, error) {
	return rpsObs{Turn: s.Turn, PlayerIndex: playerIdx}, nil
}

func (g *rpsGame) LegalActions(s *rpsState, playerIdx int) []string {
	if s.Turn != playerIdx {
		return nil
	}
	return []string{"rock", "paper", "scissors"}
}

func (g *rpsGame) CurrentPlayer(s *rpsState) int {
	if s.Turn >= 2 {
		return UnsetValue
	}
	return s.Turn
}

func (g *rpsGame) Step(in StepInput[*rpsState, string]) (StepOutput[*rpsState], error) {
	s := in.State
	s.Moves[in.PlayerIndex] = in.Action
	s.Turn++
	return StepOutput[*rpsState]{State: s}, nil
}

func (g *rpsGame) IsTerminal(s *rpsState) bool {
	return s.Turn >= 2
}

func rpsBeats(a, b string) bool {
	return a == "rock" && b == "scissors" ||
		a == "paper" && b == "rock" ||
		a == "scissors" && b == "paper"
}

func (g *rpsGame) Results(s *rpsState) (MatchResults, error) {
	players := []PlayerResult{
		{PlayerIndex: 0, Rank: 1},
		{PlayerIndex: 1, Rank: 1},
	}
	results := MatchResults{Players: players}
	switch {
	case rpsBeats(s.Moves[0], s.Moves[1]):
		w := 0
		results.Winner = &w
		results.Players[0].Score = 1
		results.Players[1].Rank = 2
	case rpsBeats(s.Moves[1], s.Moves[0]):
		w := 1
		results.Winner = &w
		results.Players[1].Score = 1
		results.Players[0].Rank = 2
	default:
		results.IsDraw = true
		results.Players[0].Score = 0.5
		results.Players[1].Score = 0.5
	}
	return results, nil
}

// funcAgent adapts a closure to the Agent contract.
type funcAgent[A, O any] struct {
	id string
	fn func(ctx context.Context, in DecideInput[A, O]) (DecideOutput[A], error)
}

func (a *funcAgent[A, O]) Meta() AgentMeta {
	return AgentMeta{ID: a.id, Version: "test", DisplayName: a.id, Kind: AgentKind_Local}
}

func (a *funcAgent[A, O]) Decide(ctx context.Context, in DecideInput[A, O]) (DecideOutput[A], error) {
	return a.fn(ctx, in)
}

func constantAgent[A, O any](id string, action A) *funcAgent[A, O] {
	return &funcAgent[A, O]{id: id, fn: func(ctx context.Context, in DecideInput[A, O]) (DecideOutput[A], error) {
		return DecideOutput[A]{Action: action}, nil
	}}
}

func sleeperAgent[A, O any](id string, d time.Duration) *funcAgent[A, O] {
	return &funcAgent[A, O]{id: id, fn: func(ctx context.Context, in DecideInput[A, O]) (DecideOutput[A], error) {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return DecideOutput[A]{}, ctx.Err()
		}
		return DecideOutput[A]{Action: in.LegalActions[len(in.LegalActions)-1]}, nil
	}}
}

func failingAgent[A, O any](id string) *funcAgent[A, O] {
	return &funcAgent[A, O]{id: id, fn: func(ctx context.Context, in DecideInput[A, O]) (DecideOutput[A], error) {
		return DecideOutput[A]{}, fmt.Errorf("agent %s exploded", id)
	}}
}
