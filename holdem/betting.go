package holdem

import "fmt"

// toCall is the amount the seat must add to match the current street bet.
func (s *State) toCall(seat *Seat) int {
	diff := s.Betting.CurrentBet - seat.Bet
	if diff < 0 {
		return 0
	}
	return diff
}

// maxBetTo is the highest street total the seat can reach (all-in).
func (s *State) maxBetTo(seat *Seat) int {
	return seat.Bet + seat.Chips
}

// minRaiseTo is the lowest street total a full raise must reach.
func (s *State) minRaiseTo() int {
	return s.Betting.CurrentBet + s.Betting.MinRaise
}

func (s *State) seatInHand(seat *Seat) bool {
	switch seat.Status {
	case SeatStatus_Folded, SeatStatus_SittingOut:
		return false
	}
	return true
}

func (s *State) seatCanAct(seat *Seat) bool {
	return s.seatInHand(seat) && seat.Status != SeatStatus_AllIn
}

// needsToAct reports whether the seat still owes a decision this round.
func (s *State) needsToAct(seat *Seat) bool {
	if !s.seatCanAct(seat) {
		return false
	}
	return !seat.HasActed || seat.Bet < s.Betting.CurrentBet
}

// canRaise reports whether the seat may raise. A seat that already acted and
// was not re-opened by a full raise (e.g. it faces only an under-raise
// all-in) may only call or fold.
func (s *State) canRaise(seat *Seat) bool {
	if seat.HasActed {
		return false
	}
	return s.maxBetTo(seat) > s.Betting.CurrentBet
}

// legalActionsFor returns canonical exemplars of the legal actions for the
// seat, minimum sizing for bet and raise. Index 0 is the fallback: check
// when checking is free, fold otherwise. Amount-bearing kinds accept any
// amount ValidateAction allows.
func (s *State) legalActionsFor(idx int) []Action {
	seat := s.seat(idx)
	if seat == nil || s.Finished || s.ToAct != idx || !s.seatCanAct(seat) {
		return nil
	}

	toCall := s.toCall(seat)
	actions := make([]Action, 0, 4)
	if toCall == 0 {
		actions = append(actions, Action{Kind: Action_Check})
		if s.Betting.CurrentBet == 0 {
			minBet := s.Config.BigBlind
			if s.maxBetTo(seat) >= minBet {
				actions = append(actions, Action{Kind: Action_Bet, Amount: minBet})
			}
		} else if s.canRaise(seat) && s.maxBetTo(seat) >= s.minRaiseTo() {
			actions = append(actions, Action{Kind: Action_Raise, Amount: s.minRaiseTo()})
		}
	} else {
		actions = append(actions, Action{Kind: Action_Fold})
		actions = append(actions, Action{Kind: Action_Call})
		if s.canRaise(seat) && s.maxBetTo(seat) >= s.minRaiseTo() {
			actions = append(actions, Action{Kind: Action_Raise, Amount: s.minRaiseTo()})
		}
	}
	if seat.Chips > 0 {
		actions = append(actions, Action{Kind: Action_AllIn})
	}
	return actions
}

// validateAction accepts the full parameterized action space behind the
// exemplars returned by legalActionsFor.
func (s *State) validateAction(idx int, a Action) bool {
	seat := s.seat(idx)
	if seat == nil || s.Finished || s.ToAct != idx || !s.seatCanAct(seat) {
		return false
	}
	toCall := s.toCall(seat)
	maxTo := s.maxBetTo(seat)

	switch a.Kind {
	case Action_Fold:
		return toCall > 0
	case Action_Check:
		return toCall == 0
	case Action_Call:
		return toCall > 0
	case Action_Bet:
		if s.Betting.CurrentBet != 0 || a.Amount <= 0 || a.Amount > maxTo {
			return false
		}
		return a.Amount >= s.Config.BigBlind || a.Amount == maxTo
	case Action_Raise:
		if s.Betting.CurrentBet == 0 {
			return false
		}
		if !s.canRaise(seat) || a.Amount <= s.Betting.CurrentBet || a.Amount > maxTo {
			return false
		}
		return a.Amount >= s.minRaiseTo() || a.Amount == maxTo
	case Action_AllIn:
		return seat.Chips > 0
	}
	return false
}

// commitTo brings the seat's street bet up to target, capped at all-in.
func (s *State) commitTo(seat *Seat, target int) {
	delta := target - seat.Bet
	if delta <= 0 {
		return
	}
	if delta >= seat.Chips {
		delta = seat.Chips
		seat.Status = SeatStatus_AllIn
	}
	seat.Chips -= delta
	seat.Bet += delta
	seat.TotalInvested += delta
}

// applyAction mutates the betting round for a validated action.
func (s *State) applyAction(idx int, a Action) error {
	seat := s.seat(idx)
	if seat == nil || !s.validateAction(idx, a) {
		return fmt.Errorf("%w: action %s by seat %d", ErrInternalState, a, idx)
	}

	switch a.Kind {
	case Action_Fold:
		seat.Status = SeatStatus_Folded
		s.emit("FOLD", map[string]any{"playerIndex": idx, "street": string(s.Betting.Street)})

	case Action_Check:
		seat.HasActed = true
		s.markActed(seat)

	case Action_Call:
		s.commitTo(seat, s.Betting.CurrentBet)
		seat.HasActed = true
		s.markActed(seat)

	case Action_Bet, Action_Raise:
		s.applyWager(seat, a.Amount)

	case Action_AllIn:
		target := s.maxBetTo(seat)
		if target > s.Betting.CurrentBet {
			s.applyWager(seat, target)
		} else {
			// Call for less.
			s.commitTo(seat, target)
			seat.HasActed = true
		}
	}
	return nil
}

// applyWager handles any chip-adding aggression to a street total above the
// current bet. A full raise re-opens the round; an all-in below the minimum
// raise does not, and leaves the minimum raise untouched.
func (s *State) applyWager(seat *Seat, target int) {
	delta := target - s.Betting.CurrentBet
	isFullRaise := delta >= s.Betting.MinRaise

	s.commitTo(seat, target)
	seat.HasActed = true
	if seat.Status != SeatStatus_AllIn {
		s.markActed(seat)
	}
	s.Betting.CurrentBet = target

	if isFullRaise {
		if delta < s.Config.BigBlind {
			delta = s.Config.BigBlind
		}
		s.Betting.MinRaise = delta
		s.Betting.LastRaiser = seat.Index
		s.Betting.NumRaises++
		for _, other := range s.Seats {
			if other.Index == seat.Index {
				continue
			}
			if s.seatCanAct(other) {
				other.HasActed = false
				if other.Status == SeatStatus_Acted {
					other.Status = SeatStatus_Waiting
				}
			}
		}
	}
}

func (s *State) markActed(seat *Seat) {
	if seat.Status == SeatStatus_Waiting {
		seat.Status = SeatStatus_Acted
	}
}

// roundComplete reports whether no seat owes a decision this street.
func (s *State) roundComplete() bool {
	for _, seat := range s.Seats {
		if s.needsToAct(seat) {
			return false
		}
	}
	return true
}

// nextActor scans seats clockwise after `from` for the next seat owing a
// decision, UnsetValue when the round is settled.
func (s *State) nextActor(from int) int {
	n := len(s.Seats)
	for i := 1; i <= n; i++ {
		idx := (from + i) % n
		if s.needsToAct(s.Seats[idx]) {
			return idx
		}
	}
	return unsetSeat
}
