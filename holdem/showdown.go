package holdem

import (
	"fmt"

	"github.com/wakesync/cmax-arena/prng"
)

// settleHand resolves the finished hand: builds the pots, awards them by
// fold-out or showdown, and either starts the next hand or ends the match.
func (s *State) settleHand(rng *prng.Rng) error {
	pots := buildPots(s.Seats)
	inHand := s.inHandSeats()

	switch {
	case len(inHand) == 0:
		return fmt.Errorf("%w: hand settled with no contenders", ErrInternalState)
	case len(inHand) == 1:
		// Everyone else folded; no cards are revealed.
		lone := inHand[0]
		for potIdx, pot := range pots {
			lone.Chips += pot.Amount
			s.emit("POT_AWARDED", map[string]any{
				"potIndex": potIdx,
				"amount":   pot.Amount,
				"winners":  []int{lone.Index},
				"isMain":   pot.IsMain,
			})
		}
		lone.HandsWon++
	default:
		if err := s.settleShowdown(pots, inHand); err != nil {
			return err
		}
	}

	// Street bets are folded into TotalInvested already; clear them so the
	// table is clean for the next hand.
	for _, seat := range s.Seats {
		seat.Bet = 0
		seat.TotalInvested = 0
	}

	chips := make([]int, len(s.Seats))
	for i, seat := range s.Seats {
		chips[i] = seat.Chips
	}
	s.emit("HAND_END", map[string]any{
		"handNumber": s.HandNumber,
		"chips":      chips,
	})

	playersWithChips := 0
	for _, seat := range s.Seats {
		if seat.Chips > 0 {
			playersWithChips++
		}
	}
	if s.HandNumber+1 >= s.Config.MaxHands || playersWithChips < 2 {
		s.Finished = true
		s.ToAct = unsetSeat
		return nil
	}

	s.HandNumber++
	s.startHand(rng)
	return nil
}

// settleShowdown evaluates every contender's best five of seven and pays
// each pot in creation order. Ties split evenly; the remainder goes to the
// earliest-seated winner.
func (s *State) settleShowdown(pots []Pot, inHand []*Seat) error {
	if len(s.Community) != 5 {
		return fmt.Errorf("%w: showdown with %d community cards", ErrInternalState, len(s.Community))
	}

	values := make(map[int]HandValue, len(inHand))
	reveals := make([]map[string]any, 0, len(inHand))
	for _, seat := range inHand {
		all := append(append([]Card{}, seat.HoleCards...), s.Community...)
		v := BestOfSeven(all)
		values[seat.Index] = v
		reveals = append(reveals, map[string]any{
			"playerIndex": seat.Index,
			"holeCards":   cardsToStrings(seat.HoleCards),
			"rank":        v.Class.String(),
			"rankValue":   int(v.Class),
			"tiebreakers": v.Tiebreakers,
		})
	}
	s.emit("SHOWDOWN", map[string]any{"reveals": reveals})

	for potIdx, pot := range pots {
		if len(pot.EligiblePlayers) == 0 {
			return fmt.Errorf("%w: pot %d has no eligible players", ErrInternalState, potIdx)
		}
		winners := make([]int, 0, len(pot.EligiblePlayers))
		var best HandValue
		for _, idx := range pot.EligiblePlayers {
			v, ok := values[idx]
			if !ok {
				return fmt.Errorf("%w: pot %d eligible seat %d missing from showdown", ErrInternalState, potIdx, idx)
			}
			switch {
			case len(winners) == 0 || v.Compare(best) > 0:
				winners = []int{idx}
				best = v
			case v.Compare(best) == 0:
				winners = append(winners, idx)
			}
		}

		share := pot.Amount / len(winners)
		residual := pot.Amount % len(winners)
		for _, idx := range winners {
			s.Seats[idx].Chips += share
		}
		// Eligible sets are built in seat order, so winners[0] is the
		// earliest seat.
		s.Seats[winners[0]].Chips += residual

		if pot.IsMain {
			for _, idx := range winners {
				s.Seats[idx].HandsWon++
			}
		}
		s.emit("POT_AWARDED", map[string]any{
			"potIndex": potIdx,
			"amount":   pot.Amount,
			"winners":  winners,
			"isMain":   pot.IsMain,
		})
	}
	return nil
}
