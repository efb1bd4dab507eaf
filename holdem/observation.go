package holdem

// SeatView is the public projection of one seat. Hole cards never appear
// here; the observing player's own cards ride on the Observation itself.
type SeatView struct {
	Index         int        `json:"index"`
	Chips         int        `json:"chips"`
	Bet           int        `json:"bet"`
	TotalInvested int        `json:"totalInvested"`
	Status        SeatStatus `json:"status"`
	HasActed      bool       `json:"hasActed"`
	IsButton      bool       `json:"isButton"`
	IsSB          bool       `json:"isSB"`
	IsBB          bool       `json:"isBB"`
	Position      string     `json:"position"`
}

// Observation is what one seat is allowed to see: its own hole cards, the
// board, and the public betting picture. The deck, the burn pile, and other
// seats' hole cards are withheld.
type Observation struct {
	HandNumber  int        `json:"handNumber"`
	PlayerIndex int        `json:"playerIndex"`
	Street      Street     `json:"street"`
	HoleCards   []Card     `json:"holeCards"`
	Community   []Card     `json:"community"`
	Button      int        `json:"button"`
	Pot         int        `json:"pot"`
	CurrentBet  int        `json:"currentBet"`
	MinRaise    int        `json:"minRaise"`
	ToCall      int        `json:"toCall"`
	MinRaiseTo  int        `json:"minRaiseTo"`
	MaxRaiseTo  int        `json:"maxRaiseTo"`
	ToAct       int        `json:"toAct"`
	Seats       []SeatView `json:"seats"`
}

func (s *State) observe(playerIdx int) Observation {
	me := s.seat(playerIdx)
	views := make([]SeatView, len(s.Seats))
	for i, seat := range s.Seats {
		views[i] = SeatView{
			Index:         seat.Index,
			Chips:         seat.Chips,
			Bet:           seat.Bet,
			TotalInvested: seat.TotalInvested,
			Status:        seat.Status,
			HasActed:      seat.HasActed,
			IsButton:      seat.IsButton,
			IsSB:          seat.IsSB,
			IsBB:          seat.IsBB,
			Position:      seat.Position,
		}
	}
	hole := make([]Card, len(me.HoleCards))
	copy(hole, me.HoleCards)
	community := make([]Card, len(s.Community))
	copy(community, s.Community)

	return Observation{
		HandNumber:  s.HandNumber,
		PlayerIndex: playerIdx,
		Street:      s.Betting.Street,
		HoleCards:   hole,
		Community:   community,
		Button:      s.Button,
		Pot:         s.totalPot(),
		CurrentBet:  s.Betting.CurrentBet,
		MinRaise:    s.Betting.MinRaise,
		ToCall:      s.toCall(me),
		MinRaiseTo:  s.minRaiseTo(),
		MaxRaiseTo:  s.maxBetTo(me),
		ToAct:       s.ToAct,
		Seats:       views,
	}
}
