package holdem

import (
	"fmt"

	arena "github.com/wakesync/cmax-arena"
	"github.com/wakesync/cmax-arena/prng"
)

const (
	GameID      = "holdem"
	GameVersion = "1.0.0"
)

// Definition is the No-Limit Texas Hold'em discipline: 2 to 6 seats,
// consecutive hands with button rotation, side pots, and best-five-of-seven
// showdowns. It implements arena.GameDefinition and arena.ActionValidator.
type Definition struct{}

func NewDefinition() *Definition {
	return &Definition{}
}

func (d *Definition) ID() string {
	return GameID
}

func (d *Definition) Version() string {
	return GameVersion
}

func (d *Definition) PlayerCount() arena.PlayerCountRange {
	return arena.PlayerCountRange{Min: 2, Max: 6}
}

func (d *Definition) Reset(in arena.ResetInput[Config]) (*State, error) {
	if !d.PlayerCount().Contains(in.NumPlayers) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidPlayerCount, in.NumPlayers)
	}
	cfg := in.Config.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	seats := make([]*Seat, in.NumPlayers)
	for i := range seats {
		seats[i] = &Seat{
			Index:  i,
			Chips:  cfg.StartingChips,
			Status: SeatStatus_Waiting,
		}
	}
	s := &State{
		Config: cfg,
		Seats:  seats,
		Button: 0,
		ToAct:  unsetSeat,
	}

	parent := prng.New(in.Seed)
	s.startHand(parent)
	if err := s.advance(parent); err != nil {
		return nil, err
	}
	return s, nil
}

func (d *Definition) Observe(state *State, playerIdx int) (Observation, error) {
	if state.seat(playerIdx) == nil {
		return Observation{}, fmt.Errorf("%w: seat %d", ErrInternalState, playerIdx)
	}
	return state.observe(playerIdx), nil
}

func (d *Definition) LegalActions(state *State, playerIdx int) []Action {
	return state.legalActionsFor(playerIdx)
}

func (d *Definition) CurrentPlayer(state *State) int {
	if state.Finished {
		return arena.UnsetValue
	}
	return state.ToAct
}

// HandNumber reports the zero-based index of the hand in play.
func (d *Definition) HandNumber(state *State) int {
	return state.HandNumber
}

func (d *Definition) ValidateAction(state *State, playerIdx int, action Action) bool {
	return state.validateAction(playerIdx, action)
}

func (d *Definition) Step(in arena.StepInput[*State, Action]) (arena.StepOutput[*State], error) {
	s := in.State
	if s.Finished || s.ToAct != in.PlayerIndex {
		return arena.StepOutput[*State]{}, fmt.Errorf("%w: step by seat %d out of turn", ErrInternalState, in.PlayerIndex)
	}
	if err := s.applyAction(in.PlayerIndex, in.Action); err != nil {
		return arena.StepOutput[*State]{}, err
	}
	s.ToAct = s.nextActor(in.PlayerIndex)
	if err := s.advance(in.Rng); err != nil {
		return arena.StepOutput[*State]{}, err
	}
	return arena.StepOutput[*State]{State: s, Events: s.drainEvents()}, nil
}

func (d *Definition) IsTerminal(state *State) bool {
	return state.Finished
}

// Results scores each seat by its final chip count. Ranks are shared on
// ties, seats ordered by index for stability; a match with a tied top score
// is a draw.
func (d *Definition) Results(state *State) (arena.MatchResults, error) {
	if !state.Finished {
		return arena.MatchResults{}, ErrNotTerminal
	}
	players := make([]arena.PlayerResult, len(state.Seats))
	for i, seat := range state.Seats {
		rank := 1
		for _, other := range state.Seats {
			if other.Chips > seat.Chips {
				rank++
			}
		}
		players[i] = arena.PlayerResult{
			PlayerIndex: i,
			Score:       float64(seat.Chips),
			Rank:        rank,
			Stats:       map[string]any{"handsWon": seat.HandsWon},
		}
	}

	results := arena.MatchResults{Players: players}
	topCount := 0
	topIdx := 0
	for i, p := range players {
		if p.Rank == 1 {
			topCount++
			topIdx = i
		}
	}
	if topCount == 1 {
		winner := topIdx
		results.Winner = &winner
	} else {
		results.IsDraw = true
	}
	return results, nil
}
