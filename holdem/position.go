package holdem

const (
	Position_BTN = "btn"
	Position_SB  = "sb"
	Position_BB  = "bb"
	Position_UTG = "utg"
	Position_MP  = "mp"
	Position_HJ  = "hj"
	Position_CO  = "co"
)

// newPositions returns the position names by offset from the button for a
// given live player count. Heads-up has only BTN and BB; the button posts
// the small blind.
func newPositions(playerCount int) []string {
	switch playerCount {
	case 6:
		return []string{Position_BTN, Position_SB, Position_BB, Position_UTG, Position_HJ, Position_CO}
	case 5:
		return []string{Position_BTN, Position_SB, Position_BB, Position_UTG, Position_CO}
	case 4:
		return []string{Position_BTN, Position_SB, Position_BB, Position_UTG}
	case 3:
		return []string{Position_BTN, Position_SB, Position_BB}
	case 2:
		return []string{Position_BTN, Position_BB}
	default:
		return nil
	}
}

// rotateFrom rotates source so that the element at startIndex comes first.
func rotateFrom(source []int, startIndex int) []int {
	if len(source) == 0 {
		return source
	}
	startIndex = startIndex % len(source)
	out := make([]int, 0, len(source))
	out = append(out, source[startIndex:]...)
	out = append(out, source[:startIndex]...)
	return out
}
