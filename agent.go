package arena

import (
	"context"
	"strings"

	"github.com/wakesync/cmax-arena/canonical"
)

const maxReasonBytes = 280

// AgentMeta identifies an agent variant. Config holds whatever knobs the
// agent was constructed with; it participates in the fingerprint so a log
// reader knows exactly which variant played.
type AgentMeta struct {
	ID          string         `json:"id"`
	Version     string         `json:"version"`
	DisplayName string         `json:"displayName"`
	Kind        string         `json:"kind"`
	Config      map[string]any `json:"config,omitempty"`
}

// Fingerprint returns SHA-256(canonical({id, version, config})).
func (m AgentMeta) Fingerprint() (string, error) {
	return canonical.Hash(map[string]any{
		"id":      m.ID,
		"version": m.Version,
		"config":  m.Config,
	})
}

// AgentRef is the public projection of an agent embedded in match events.
type AgentRef struct {
	ID          string `json:"id"`
	Version     string `json:"version"`
	DisplayName string `json:"displayName"`
	Fingerprint string `json:"fingerprint"`
}

// Clock tells the agent how long it has to answer.
type Clock struct {
	TurnTimeoutMs int64 `json:"turnTimeoutMs"`
}

// DecideMeta carries turn bookkeeping. HandNumber is set by disciplines that
// play a sequence of hands inside one match.
type DecideMeta struct {
	TurnIndex  int  `json:"turnIndex"`
	HandNumber *int `json:"handNumber,omitempty"`
}

// DecideInput is everything an agent sees for one decision.
type DecideInput[A, O any] struct {
	MatchID      string     `json:"matchId"`
	GameID       string     `json:"gameId"`
	GameVersion  string     `json:"gameVersion"`
	PlayerIndex  int        `json:"playerIndex"`
	Observation  O          `json:"observation"`
	LegalActions []A        `json:"legalActions"`
	Clock        Clock      `json:"clock"`
	Meta         DecideMeta `json:"meta"`
}

// DecideOutput is the agent's answer. Reason is free-form commentary and is
// sanitized before it reaches any log.
type DecideOutput[A any] struct {
	Action A      `json:"action"`
	Reason string `json:"reason,omitempty"`
}

// Agent is a decision-making entity. Agents may be nondeterministic, but
// conformant ones derive their own randomness from (MatchID, TurnIndex) so
// whole matches stay reproducible. Decide must honor ctx cancellation; the
// engine cancels it when the turn deadline passes.
type Agent[A, O any] interface {
	Meta() AgentMeta
	Decide(ctx context.Context, in DecideInput[A, O]) (DecideOutput[A], error)
}

// Warmer is an optional agent capability: expensive agents (LLM transports,
// webhooks) can prepare before the first rated match. The ladder gates on it.
type Warmer interface {
	Warmup(ctx context.Context) error
}

// SanitizeReason strips control characters from free-form agent commentary
// and caps it at 280 bytes, cutting at a rune boundary.
func SanitizeReason(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) <= maxReasonBytes {
		return out
	}
	cut := maxReasonBytes
	for cut > 0 && !isRuneStart(out[cut]) {
		cut--
	}
	return out[:cut]
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
