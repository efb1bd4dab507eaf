package holdem

import (
	"sort"

	"github.com/thoas/go-funk"
)

// buildPots splits the chips committed this hand into a main pot and side
// pots. Levels are the sorted distinct totalInvested amounts over every
// contributor; each level's slice counts all contributors at or above it
// (folded chips stay in the pot), while eligibility is restricted to seats
// still in the hand. Adjacent pots with identical eligible sets are merged,
// so a level introduced only by a folded stack never creates a pot of its
// own. Eligible sets form a downward chain by construction.
func buildPots(seats []*Seat) []Pot {
	levels := make([]int, 0, len(seats))
	for _, s := range seats {
		if s.TotalInvested > 0 && !funk.ContainsInt(levels, s.TotalInvested) {
			levels = append(levels, s.TotalInvested)
		}
	}
	sort.Ints(levels)

	pots := make([]Pot, 0, len(levels))
	prev := 0
	for _, level := range levels {
		amount := 0
		eligible := make([]int, 0, len(seats))
		for _, s := range seats {
			if s.TotalInvested <= prev {
				continue
			}
			contribution := s.TotalInvested
			if contribution > level {
				contribution = level
			}
			amount += contribution - prev
			if s.eligibleForPots() && s.TotalInvested >= level {
				eligible = append(eligible, s.Index)
			}
		}
		if amount == 0 {
			prev = level
			continue
		}
		if len(pots) > 0 && sameIntSet(pots[len(pots)-1].EligiblePlayers, eligible) {
			pots[len(pots)-1].Amount += amount
		} else {
			pots = append(pots, Pot{Amount: amount, EligiblePlayers: eligible})
		}
		prev = level
	}
	if len(pots) > 0 {
		pots[0].IsMain = true
	}
	return pots
}

func (s *Seat) eligibleForPots() bool {
	switch s.Status {
	case SeatStatus_Folded, SeatStatus_SittingOut:
		return false
	}
	return true
}

func sameIntSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
