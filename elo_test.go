package arena

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEloDefaults(t *testing.T) {
	table := NewEloTable(nil)
	table.AddPlayer("a")
	p, err := table.Player("a")
	assert.Nil(t, err)
	assert.Equal(t, 1500, p.Rating)
	assert.Zero(t, p.Matches)

	_, err = table.Player("ghost")
	assert.ErrorIs(t, err, ErrEloUnknownPlayer)
}

func TestEloExpectedSymmetry(t *testing.T) {
	table := NewEloTable(nil)
	table.AddPlayer("a")
	table.AddPlayer("b")
	assert.InDelta(t, 1.0, table.Expected("a", "b")+table.Expected("b", "a"), 1e-12)
	assert.InDelta(t, 0.5, table.Expected("a", "b"), 1e-12)
}

func TestEloWinSymmetry(t *testing.T) {
	table := NewEloTable(nil)
	delta := table.RecordWin("winner", "loser")
	assert.Equal(t, 16, delta)

	w, _ := table.Player("winner")
	l, _ := table.Player("loser")
	assert.Equal(t, 1516, w.Rating)
	assert.Equal(t, 1484, l.Rating)
	assert.Equal(t, w.Rating-1500, 1500-l.Rating, "loser update is the exact negation")

	assert.Equal(t, 1, w.Matches)
	assert.Equal(t, 1, w.Wins)
	assert.Equal(t, 1, l.Losses)
	assert.Equal(t, w.Matches, w.Wins+w.Losses+w.Draws)
}

func TestEloDraw(t *testing.T) {
	table := NewEloTable(nil)
	delta := table.RecordDraw("a", "b")
	assert.Zero(t, delta, "draw between equals moves nothing")

	a, _ := table.Player("a")
	assert.Equal(t, 1500, a.Rating)
	assert.Equal(t, 1, a.Draws)
	assert.Equal(t, 1, a.Matches)

	// Draw against a stronger player gains points.
	strong := NewEloTable(&EloOptions{KFactor: 32, InitialRating: 1500})
	strong.AddPlayer("up")
	strong.AddPlayer("down")
	strong.RecordWin("up", "down")
	d := strong.RecordDraw("down", "up")
	assert.Greater(t, d, 0)
}

func TestEloCustomOptions(t *testing.T) {
	table := NewEloTable(&EloOptions{KFactor: 10, InitialRating: 1200})
	delta := table.RecordWin("a", "b")
	assert.Equal(t, 5, delta)
	a, _ := table.Player("a")
	assert.Equal(t, 1205, a.Rating)
}

func TestEloStandings(t *testing.T) {
	table := NewEloTable(nil)
	table.AddPlayer("mid")
	table.RecordWin("top", "bottom")

	standings := table.Standings()
	assert.Len(t, standings, 3)
	assert.Equal(t, "top", standings[0].ID)
	assert.Equal(t, "mid", standings[1].ID)
	assert.Equal(t, "bottom", standings[2].ID)
}

func TestEloConcurrentUpdates(t *testing.T) {
	table := NewEloTable(nil)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				table.RecordWin("a", "b")
			} else {
				table.RecordWin("b", "a")
			}
		}(i)
	}
	wg.Wait()

	a, _ := table.Player("a")
	b, _ := table.Player("b")
	assert.Equal(t, 50, a.Matches)
	assert.Equal(t, 50, b.Matches)
	assert.Equal(t, a.Wins, b.Losses)
	assert.Equal(t, a.Losses, b.Wins)
}
