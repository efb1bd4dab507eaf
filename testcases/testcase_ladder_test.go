package testcases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	arena "github.com/wakesync/cmax-arena"
	"github.com/wakesync/cmax-arena/holdem"
)

func TestHoldemLadder(t *testing.T) {
	agents := newTableBots(3)

	matchOpts := arena.NewMatchEngineOptions[holdem.Config]()
	matchOpts.GameConfig = holdem.Config{StartingChips: 500, SmallBlind: 10, BigBlind: 20, MaxHands: 5}

	opts := arena.NewLadderOptions()
	opts.BaseSeed = "itest-ladder"
	opts.MatchesPerPair = 2

	ladder, err := arena.NewLadder[*holdem.State, holdem.Action, holdem.Observation, holdem.Config](
		holdem.NewDefinition(), agents, opts, matchOpts)
	assert.Nil(t, err)

	result, err := ladder.Run(context.Background())
	assert.Nil(t, err)
	assert.Len(t, result.Matches, 6)
	assert.Len(t, result.Standings, 3)

	totalMatches := 0
	for _, p := range result.Standings {
		totalMatches += p.Matches
		assert.Equal(t, p.Matches, p.Wins+p.Losses+p.Draws)
	}
	assert.Equal(t, 12, totalMatches, "every match rates both entrants")
}

func TestHoldemLadderConcurrencyStable(t *testing.T) {
	run := func(concurrency int) *arena.LadderResult {
		matchOpts := arena.NewMatchEngineOptions[holdem.Config]()
		matchOpts.GameConfig = holdem.Config{StartingChips: 500, SmallBlind: 10, BigBlind: 20, MaxHands: 4}

		opts := arena.NewLadderOptions()
		opts.BaseSeed = "itest-ladder-conc"
		opts.MatchesPerPair = 2
		opts.Concurrency = concurrency

		ladder, err := arena.NewLadder[*holdem.State, holdem.Action, holdem.Observation, holdem.Config](
			holdem.NewDefinition(), newTableBots(3), opts, matchOpts)
		assert.Nil(t, err)
		result, err := ladder.Run(context.Background())
		assert.Nil(t, err)
		return result
	}

	serial := run(1)
	parallel := run(4)
	assert.Equal(t, serial.Standings, parallel.Standings)
	assert.Equal(t, serial.Matches, parallel.Matches)
}
