package actor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	arena "github.com/wakesync/cmax-arena"
)

type obs struct{}

func decideInput(matchID string, turnIndex int, legal []string) arena.DecideInput[string, obs] {
	return arena.DecideInput[string, obs]{
		MatchID:      matchID,
		GameID:       "test",
		PlayerIndex:  0,
		LegalActions: legal,
		Meta:         arena.DecideMeta{TurnIndex: turnIndex},
	}
}

func TestBotDeterministicPerTurn(t *testing.T) {
	legal := []string{"a", "b", "c", "d"}
	bot := NewBot[string, obs]("bot-1")

	first, err := bot.Decide(context.Background(), decideInput("m", 7, legal))
	assert.Nil(t, err)
	second, err := NewBot[string, obs]("bot-2").Decide(context.Background(), decideInput("m", 7, legal))
	assert.Nil(t, err)
	assert.Equal(t, first.Action, second.Action,
		"randomness is a function of (matchId, turnIndex), not of the bot")

	otherTurn, err := bot.Decide(context.Background(), decideInput("m", 8, legal))
	assert.Nil(t, err)
	otherMatch, err := bot.Decide(context.Background(), decideInput("m2", 7, legal))
	assert.Nil(t, err)
	_ = otherTurn
	_ = otherMatch

	assert.Contains(t, legal, first.Action)
}

func TestBotMeta(t *testing.T) {
	bot := NewBot[string, obs]("bot-1")
	meta := bot.Meta()
	assert.Equal(t, "bot-1", meta.ID)
	assert.Equal(t, arena.AgentKind_Local, meta.Kind)
	assert.Equal(t, "uniform", meta.Config["policy"])

	weighted := NewBot[string, obs]("bot-2").WithWeights(func(a string) float64 { return 1 })
	assert.Equal(t, "weighted", weighted.Meta().Config["policy"])
}

func TestBotWeights(t *testing.T) {
	legal := []string{"never", "always"}
	bot := NewBot[string, obs]("w").WithWeights(func(a string) float64 {
		if a == "always" {
			return 1
		}
		return 0
	})
	for turn := 0; turn < 50; turn++ {
		out, err := bot.Decide(context.Background(), decideInput("m", turn, legal))
		assert.Nil(t, err)
		assert.Equal(t, "always", out.Action)
	}

	// All-zero weights degrade to a uniform pick instead of failing.
	zero := NewBot[string, obs]("z").WithWeights(func(string) float64 { return 0 })
	out, err := zero.Decide(context.Background(), decideInput("m", 0, legal))
	assert.Nil(t, err)
	assert.Contains(t, legal, out.Action)
}

func TestScriptAgent(t *testing.T) {
	script := NewScript[string, obs]("s", []string{"x", "y"})
	legal := []string{"a", "b"}

	out, err := script.Decide(context.Background(), decideInput("m", 0, legal))
	assert.Nil(t, err)
	assert.Equal(t, "x", out.Action)

	out, err = script.Decide(context.Background(), decideInput("m", 1, legal))
	assert.Nil(t, err)
	assert.Equal(t, "y", out.Action)

	// Exhausted scripts fall back to the first legal action.
	out, err = script.Decide(context.Background(), decideInput("m", 2, legal))
	assert.Nil(t, err)
	assert.Equal(t, "a", out.Action)
}
