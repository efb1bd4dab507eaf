package arena

import "encoding/json"

type EventType string

const (
	EventType_MatchStart EventType = "MATCH_START"
	EventType_Turn       EventType = "TURN"
	EventType_MatchEnd   EventType = "MATCH_END"
)

// Event is one entry of the totally ordered match log.
type Event interface {
	EventType() EventType
}

// MatchStartEvent opens the log. SeedCommit is published here so the seed
// revealed at the end could not have been altered mid-match.
type MatchStartEvent struct {
	Type        EventType       `json:"type"`
	MatchID     string          `json:"matchId"`
	StartedAt   string          `json:"startedAt"`
	GameID      string          `json:"gameId"`
	GameVersion string          `json:"gameVersion"`
	Agents      []AgentRef      `json:"agents"`
	SeedCommit  string          `json:"seedCommit"`
	Config      json.RawMessage `json:"config,omitempty"`
}

func (e *MatchStartEvent) EventType() EventType { return EventType_MatchStart }

// TurnEvent records one step: the pre-step observation hash and the
// post-substitution action are enough to reconstruct the trajectory.
// OriginalAction is present only when the agent's raw action was replaced.
type TurnEvent struct {
	Type            EventType       `json:"type"`
	TurnIndex       int             `json:"turnIndex"`
	PlayerIndex     int             `json:"playerIndex"`
	ObservationHash string          `json:"observationHash"`
	Action          json.RawMessage `json:"action"`
	TimingMs        int64           `json:"timingMs"`
	TimedOut        bool            `json:"timedOut"`
	IllegalAction   bool            `json:"illegalAction"`
	OriginalAction  json.RawMessage `json:"originalAction,omitempty"`
	Events          []GameEvent     `json:"events,omitempty"`
}

func (e *TurnEvent) EventType() EventType { return EventType_Turn }

// MatchEndEvent closes the log and reveals the seed.
type MatchEndEvent struct {
	Type        EventType    `json:"type"`
	SeedReveal  string       `json:"seedReveal"`
	Results     MatchResults `json:"results"`
	TotalTurns  int          `json:"totalTurns"`
	TotalTimeMs int64        `json:"totalTimeMs"`
}

func (e *MatchEndEvent) EventType() EventType { return EventType_MatchEnd }
