package arena

import "errors"

var (
	ErrMatchMissingSeed        = errors.New("match: seed is required")
	ErrMatchInvalidPlayerCount = errors.New("match: player count out of range for game")
	ErrMatchAlreadyRun         = errors.New("match: engine already ran")
	ErrMatchNoLegalActions     = errors.New("match: game reported an actor with no legal actions")
	ErrGameStepFailed          = errors.New("match: game step failed")

	ErrLadderTooFewAgents     = errors.New("ladder: at least two agents required")
	ErrLadderDuplicateAgentID = errors.New("ladder: duplicate agent id")
	ErrLadderWarmupTimeout    = errors.New("ladder: agent warmup timed out")

	ErrEloUnknownPlayer = errors.New("elo: unknown player")
)
