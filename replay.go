package arena

import (
	"encoding/json"
	"fmt"

	"github.com/wakesync/cmax-arena/canonical"
	"github.com/wakesync/cmax-arena/prng"
)

type ReplayErrorKind string

const (
	ReplayError_SeedMismatch            ReplayErrorKind = "SeedMismatch"
	ReplayError_ObservationHashMismatch ReplayErrorKind = "ObservationHashMismatch"
	ReplayError_ActionIllegal           ReplayErrorKind = "ActionIllegal"
	ReplayError_ResultsMismatch         ReplayErrorKind = "ResultsMismatch"
	ReplayError_MissingEvent            ReplayErrorKind = "MissingEvent"
	ReplayError_StateError              ReplayErrorKind = "StateError"
)

type ReplayError struct {
	Kind      ReplayErrorKind `json:"kind"`
	TurnIndex int             `json:"turnIndex"`
	Message   string          `json:"message"`
}

type ReplayResult struct {
	Success       bool          `json:"success"`
	MatchID       string        `json:"matchId"`
	Errors        []ReplayError `json:"errors"`
	TurnsVerified int           `json:"turnsVerified"`
	TotalTurns    int           `json:"totalTurns"`
}

type ReplayOptions struct {
	// SkipObservationHash disables the per-turn observation hash check, for
	// schemas whose observations legitimately contain externally supplied
	// non-canonicalizable data.
	SkipObservationHash bool
}

// ReplayMatch reconstructs a match from its event log against the game
// definition and cross-checks seed commitment, observation hashes, action
// legality, and final results. It is read-only and keeps going past seed,
// turn-count, observation-hash, and action-legality discrepancies, so all of
// them are reported, not just the first. A config, reset, observe, decode, or
// step failure, a turn out of order or recorded for the wrong seat or after
// the terminal state, or a log
// that stops before the terminal state ends the replay with a StateError at
// that point; later turns and the final results are then not checked. Nested
// per-turn game events are game-authored annotation and are not verified.
func ReplayMatch[S, A, O, C any](game GameDefinition[S, A, O, C], events []Event, opts *ReplayOptions) *ReplayResult {
	if opts == nil {
		opts = &ReplayOptions{}
	}
	res := &ReplayResult{Errors: []ReplayError{}}

	var start *MatchStartEvent
	var end *MatchEndEvent
	turns := make([]*TurnEvent, 0, len(events))
	for _, ev := range events {
		switch e := ev.(type) {
		case *MatchStartEvent:
			if start == nil {
				start = e
			}
		case *MatchEndEvent:
			end = e
		case *TurnEvent:
			turns = append(turns, e)
		}
	}
	res.TotalTurns = len(turns)

	if start == nil {
		res.addError(ReplayError_MissingEvent, UnsetValue, "no MATCH_START event")
	}
	if end == nil {
		res.addError(ReplayError_MissingEvent, UnsetValue, "no MATCH_END event")
	}
	if start == nil || end == nil {
		return res
	}
	res.MatchID = start.MatchID

	if !canonical.VerifyCommit(end.SeedReveal, start.SeedCommit) {
		res.addError(ReplayError_SeedMismatch, UnsetValue,
			fmt.Sprintf("seed reveal does not match commitment %s", start.SeedCommit))
	}
	if end.TotalTurns != len(turns) {
		res.addError(ReplayError_StateError, UnsetValue,
			fmt.Sprintf("MATCH_END reports %d turns, log has %d", end.TotalTurns, len(turns)))
	}

	var config C
	if len(start.Config) > 0 {
		if err := json.Unmarshal(start.Config, &config); err != nil {
			res.addError(ReplayError_StateError, UnsetValue, fmt.Sprintf("config decode: %v", err))
			return res
		}
	}

	rng := prng.New(end.SeedReveal)
	state, err := game.Reset(ResetInput[C]{
		Seed:       end.SeedReveal,
		NumPlayers: len(start.Agents),
		Config:     config,
	})
	if err != nil {
		res.addError(ReplayError_StateError, UnsetValue, fmt.Sprintf("reset: %v", err))
		return res
	}

	for i, turn := range turns {
		if turn.TurnIndex != i {
			res.addError(ReplayError_StateError, turn.TurnIndex,
				fmt.Sprintf("turn event out of order: got index %d at position %d", turn.TurnIndex, i))
			return res
		}
		if game.IsTerminal(state) {
			res.addError(ReplayError_StateError, turn.TurnIndex, "turn recorded after terminal state")
			return res
		}
		pid := turn.PlayerIndex
		if actual := game.CurrentPlayer(state); actual != pid {
			res.addError(ReplayError_StateError, turn.TurnIndex,
				fmt.Sprintf("turn recorded for player %d but player %d is to act", pid, actual))
			return res
		}

		if !opts.SkipObservationHash {
			obs, err := game.Observe(state, pid)
			if err != nil {
				res.addError(ReplayError_StateError, turn.TurnIndex, fmt.Sprintf("observe: %v", err))
				return res
			}
			obsHash, err := canonical.Hash(obs)
			if err != nil {
				res.addError(ReplayError_StateError, turn.TurnIndex, fmt.Sprintf("observation hash: %v", err))
				return res
			}
			if obsHash != turn.ObservationHash {
				res.addError(ReplayError_ObservationHashMismatch, turn.TurnIndex,
					fmt.Sprintf("expected %s, log has %s", obsHash, turn.ObservationHash))
			}
		}

		var action A
		if err := json.Unmarshal(turn.Action, &action); err != nil {
			res.addError(ReplayError_StateError, turn.TurnIndex, fmt.Sprintf("action decode: %v", err))
			return res
		}
		if !replayActionLegal(game, state, pid, action) && !turn.IllegalAction {
			res.addError(ReplayError_ActionIllegal, turn.TurnIndex, "recorded action is not legal")
		}

		out, err := game.Step(StepInput[S, A]{State: state, PlayerIndex: pid, Action: action, Rng: rng})
		if err != nil {
			res.addError(ReplayError_StateError, turn.TurnIndex, fmt.Sprintf("step: %v", err))
			return res
		}
		state = out.State
		res.TurnsVerified++
	}

	if !game.IsTerminal(state) {
		res.addError(ReplayError_StateError, UnsetValue, "log ended before terminal state")
		return res
	}
	actual, err := game.Results(state)
	if err != nil {
		res.addError(ReplayError_StateError, UnsetValue, fmt.Sprintf("results: %v", err))
		return res
	}
	equal, err := canonical.Equal(actual, end.Results)
	if err != nil {
		res.addError(ReplayError_StateError, UnsetValue, fmt.Sprintf("results compare: %v", err))
		return res
	}
	if !equal {
		res.addError(ReplayError_ResultsMismatch, UnsetValue, "replayed results differ from MATCH_END")
	}

	res.Success = len(res.Errors) == 0
	return res
}

func (r *ReplayResult) addError(kind ReplayErrorKind, turnIndex int, msg string) {
	r.Errors = append(r.Errors, ReplayError{Kind: kind, TurnIndex: turnIndex, Message: msg})
	r.Success = false
}

func replayActionLegal[S, A, O, C any](game GameDefinition[S, A, O, C], state S, pid int, action A) bool {
	if v, ok := any(game).(ActionValidator[S, A]); ok {
		return v.ValidateAction(state, pid, action)
	}
	encoded, err := canonical.Marshal(action)
	if err != nil {
		return false
	}
	for _, la := range game.LegalActions(state, pid) {
		lb, err := canonical.Marshal(la)
		if err != nil {
			continue
		}
		if string(encoded) == string(lb) {
			return true
		}
	}
	return false
}
