package testcases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	arena "github.com/wakesync/cmax-arena"
	"github.com/wakesync/cmax-arena/actor"
	"github.com/wakesync/cmax-arena/holdem"
)

func newTableBots(count int) []arena.Agent[holdem.Action, holdem.Observation] {
	agents := make([]arena.Agent[holdem.Action, holdem.Observation], count)
	for i := 0; i < count; i++ {
		agents[i] = actor.NewBot[holdem.Action, holdem.Observation](fmt.Sprintf("bot-%d", i)).
			WithWeights(holdem.BotWeights)
	}
	return agents
}

func runHoldemMatch(t *testing.T, seed string, players int, cfg holdem.Config) *arena.MatchReport {
	t.Helper()
	opts := arena.NewMatchEngineOptions[holdem.Config]()
	opts.Seed = seed
	opts.MatchID = "itest:" + seed
	opts.GameConfig = cfg

	engine, err := arena.NewMatchEngine[*holdem.State, holdem.Action, holdem.Observation, holdem.Config](
		holdem.NewDefinition(), newTableBots(players), opts)
	assert.Nil(t, err)

	report, err := engine.Run(context.Background())
	assert.Nil(t, err)
	return report
}

func replayHoldem(events []arena.Event) *arena.ReplayResult {
	return arena.ReplayMatch[*holdem.State, holdem.Action, holdem.Observation, holdem.Config](
		holdem.NewDefinition(), events, nil)
}
