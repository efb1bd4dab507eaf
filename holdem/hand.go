package holdem

import (
	"fmt"

	"github.com/wakesync/cmax-arena/prng"
)

// startHand begins hand s.HandNumber: rotates the button, shuffles a fresh
// deck from a labeled fork of the match PRNG, posts blinds, and deals hole
// cards. The fork keeps the orchestrator's top-level stream untouched by
// however many cards a hand consumes.
func (s *State) startHand(parent *prng.Rng) {
	live := make([]int, 0, len(s.Seats))
	for _, seat := range s.Seats {
		seat.Bet = 0
		seat.TotalInvested = 0
		seat.HoleCards = nil
		seat.HasActed = false
		seat.IsButton = false
		seat.IsSB = false
		seat.IsBB = false
		seat.Position = ""
		if seat.Chips > 0 {
			seat.Status = SeatStatus_Waiting
			live = append(live, seat.Index)
		} else {
			seat.Status = SeatStatus_SittingOut
		}
	}
	if len(live) < 2 {
		s.Finished = true
		s.ToAct = unsetSeat
		return
	}

	if s.HandNumber == 0 {
		s.Button = live[0]
	} else {
		s.Button = s.nextLiveAfter(s.Button)
	}

	deckRng := parent.Fork(fmt.Sprintf("new-hand:%d", s.HandNumber))
	s.Deck = prng.Shuffle(deckRng, NewDeck())
	s.Burned = nil
	s.Community = nil

	// Game order: live seats rotated so the button leads.
	buttonAt := 0
	for i, idx := range live {
		if idx == s.Button {
			buttonAt = i
			break
		}
	}
	order := rotateFrom(live, buttonAt)
	positions := newPositions(len(order))
	for i, seatIdx := range order {
		s.Seats[seatIdx].Position = positions[i]
	}

	var sbSeat, bbSeat int
	if len(order) == 2 {
		// Heads-up: the button posts the small blind.
		sbSeat, bbSeat = order[0], order[1]
	} else {
		sbSeat, bbSeat = order[1], order[2]
	}
	s.Seats[s.Button].IsButton = true
	s.Seats[sbSeat].IsSB = true
	s.Seats[bbSeat].IsBB = true

	s.commitTo(s.Seats[sbSeat], s.Config.SmallBlind)
	s.commitTo(s.Seats[bbSeat], s.Config.BigBlind)
	s.Betting = BettingState{
		Street:          Street_Preflop,
		CurrentBet:      s.Config.BigBlind,
		MinRaise:        s.Config.BigBlind,
		LastRaiser:      unsetSeat,
		NumRaises:       0,
		PotBeforeStreet: 0,
	}

	s.dealHoleCards(order)

	s.emit("HAND_START", map[string]any{
		"handNumber": s.HandNumber,
		"button":     s.Button,
		"smallBlind": s.Config.SmallBlind,
		"bigBlind":   s.Config.BigBlind,
	})
	s.emit("BLINDS_POSTED", map[string]any{
		"sb": map[string]any{"playerIndex": sbSeat, "amount": s.Seats[sbSeat].TotalInvested},
		"bb": map[string]any{"playerIndex": bbSeat, "amount": s.Seats[bbSeat].TotalInvested},
	})

	// Preflop action opens after the big blind.
	s.ToAct = s.nextActor(bbSeat)
}

// nextLiveAfter returns the first seat after `from` with chips.
func (s *State) nextLiveAfter(from int) int {
	n := len(s.Seats)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if s.Seats[idx].Chips > 0 {
			return idx
		}
	}
	return from
}

// dealHoleCards gives each live seat two cards, one at a time over two
// passes, starting with the first seat after the button.
func (s *State) dealHoleCards(order []int) {
	dealOrder := append(append([]int{}, order[1:]...), order[0])
	for pass := 0; pass < 2; pass++ {
		for _, seatIdx := range dealOrder {
			s.Seats[seatIdx].HoleCards = append(s.Seats[seatIdx].HoleCards, s.draw())
		}
	}
}

func (s *State) draw() Card {
	c := s.Deck[0]
	s.Deck = s.Deck[1:]
	return c
}

func (s *State) burn() {
	s.Burned = append(s.Burned, s.draw())
}

// inHandSeats is the set of seats still contesting the hand.
func (s *State) inHandSeats() []*Seat {
	out := make([]*Seat, 0, len(s.Seats))
	for _, seat := range s.Seats {
		if s.seatInHand(seat) {
			out = append(out, seat)
		}
	}
	return out
}

// bettorsRemaining counts seats that could still wager.
func (s *State) bettorsRemaining() int {
	n := 0
	for _, seat := range s.Seats {
		if s.seatCanAct(seat) {
			n++
		}
	}
	return n
}

// nextStreet burns, deals the next community cards, and opens a fresh
// betting round.
func (s *State) nextStreet() {
	s.Betting.PotBeforeStreet = s.totalPot()
	for _, seat := range s.Seats {
		seat.Bet = 0
		seat.HasActed = false
		if seat.Status == SeatStatus_Acted {
			seat.Status = SeatStatus_Waiting
		}
	}
	s.Betting.CurrentBet = 0
	s.Betting.MinRaise = s.Config.BigBlind
	s.Betting.LastRaiser = unsetSeat
	s.Betting.NumRaises = 0

	s.burn()
	switch s.Betting.Street {
	case Street_Preflop:
		s.Community = append(s.Community, s.draw(), s.draw(), s.draw())
		s.Betting.Street = Street_Flop
	case Street_Flop:
		s.Community = append(s.Community, s.draw())
		s.Betting.Street = Street_Turn
	case Street_Turn:
		s.Community = append(s.Community, s.draw())
		s.Betting.Street = Street_River
	}

	s.emit("STREET_DEALT", map[string]any{
		"street":    string(s.Betting.Street),
		"community": cardsToStrings(s.Community),
	})
}

// runOut deals any remaining community cards, burn included, when no
// further betting is possible. Drawing from the tracked deck keeps the
// runout replayable.
func (s *State) runOut() {
	for len(s.Community) < 5 {
		s.nextStreet()
	}
}

// advance drives the table from a settled position to the next decision
// point, through street changes, runouts, settlement, and new hands, until a
// seat is to act or the match is finished.
func (s *State) advance(rng *prng.Rng) error {
	for {
		if s.Finished {
			return nil
		}
		if len(s.inHandSeats()) <= 1 {
			s.ToAct = unsetSeat
			if err := s.settleHand(rng); err != nil {
				return err
			}
			continue
		}
		if s.ToAct != unsetSeat {
			return nil
		}
		if !s.roundComplete() {
			return fmt.Errorf("%w: no seat to act on an open betting round", ErrInternalState)
		}
		if s.Betting.Street == Street_River {
			if err := s.settleHand(rng); err != nil {
				return err
			}
			continue
		}
		if s.bettorsRemaining() <= 1 {
			s.runOut()
			if err := s.settleHand(rng); err != nil {
				return err
			}
			continue
		}
		s.nextStreet()
		s.ToAct = s.nextActor(s.Button)
	}
}
