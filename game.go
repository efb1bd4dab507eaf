package arena

import "github.com/wakesync/cmax-arena/prng"

// PlayerCountRange is the number of seats a game supports. A fixed-size game
// sets Min == Max.
type PlayerCountRange struct {
	Min int
	Max int
}

// Contains reports whether n seats are supported.
func (r PlayerCountRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// ResetInput carries everything a game needs to build its initial state.
type ResetInput[C any] struct {
	Seed       string
	NumPlayers int
	Config     C
}

// StepInput applies one validated action to a state. Rng is the match's
// single PRNG; games wanting independent substreams fork it with a label
// instead of consuming from it directly.
type StepInput[S, A any] struct {
	State       S
	PlayerIndex int
	Action      A
	Rng         *prng.Rng
}

// StepOutput is the post-step state plus optional game-authored annotations
// for the enclosing turn event.
type StepOutput[S any] struct {
	State  S
	Events []GameEvent
}

// GameEvent is a discipline-specific annotation nested inside a turn event,
// e.g. a street being dealt or a pot being awarded.
type GameEvent struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
}

// GameDefinition is the contract every discipline implements. S is the game
// state, A an action, O a per-seat observation, C the game configuration.
// The match engine treats all four as opaque; A and O must be losslessly
// encodable to canonical JSON, and O must not leak information the game
// considers private to other seats.
type GameDefinition[S, A, O, C any] interface {
	ID() string
	Version() string
	PlayerCount() PlayerCountRange

	// Reset builds the initial state. It fails when NumPlayers is outside
	// the supported range or the config is malformed.
	Reset(in ResetInput[C]) (S, error)

	// Observe projects the state for one seat.
	Observe(state S, playerIdx int) (O, error)

	// LegalActions returns the actions available to a seat; empty iff the
	// seat may not act. Index 0 is the fallback the engine substitutes on
	// timeout or illegal action.
	LegalActions(state S, playerIdx int) []A

	// CurrentPlayer returns the seat that must act, or UnsetValue iff the
	// state is terminal.
	CurrentPlayer(state S) int

	// Step applies an action the engine has already validated. A non-nil
	// error means the game detected an internal inconsistency; it is fatal
	// to the match.
	Step(in StepInput[S, A]) (StepOutput[S], error)

	IsTerminal(state S) bool

	// Results is defined only when IsTerminal reports true.
	Results(state S) (MatchResults, error)
}

// HandNumbered is an optional capability for disciplines that play a
// sequence of hands inside one match; the engine uses it to fill
// DecideMeta.HandNumber.
type HandNumbered[S any] interface {
	HandNumber(state S) int
}

// ActionValidator is an optional capability for games whose action space is
// parameterized (e.g. bet amounts). When a game implements it, the match
// engine and the replay verifier use it to judge action legality instead of
// canonical-set membership against LegalActions.
type ActionValidator[S, A any] interface {
	ValidateAction(state S, playerIdx int, action A) bool
}
