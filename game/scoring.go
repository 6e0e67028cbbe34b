package game

import (
	"errors"
	"fmt"
	"sort"

	"github.com/CammyCodes/Remik/deck"
)

// DefaultOpeningPoints is the minimum meld total required to open
const DefaultOpeningPoints = 51

var (
	ErrOpeningMeldInvalid = errors.New("opening contains an invalid meld")
	ErrOpeningNoPureRun   = errors.New("opening needs a sequence with three natural cards in a row")
	ErrOpeningPoints      = errors.New("opening does not reach the required points")
)

// MeldPoints sums the point values of every card across the given
// melds. An ace inside a sequence whose naturals fit only the ace-low
// window counts as 1 instead of 11; everywhere else it is 11. This
// exception applies to opening calculation only, never to round-end
// penalties.
func MeldPoints(melds [][]deck.Card) int {
	total := 0
	for _, meld := range melds {
		kind := Classify(meld)
		aceLowOnly := false
		if kind == SequenceMeld {
			naturals, jokers := splitJokers(meld)
			aceLowOnly = sequenceFitsLow(naturals, jokers) && !sequenceFitsHigh(naturals, jokers)
		}

		for _, c := range meld {
			if !c.Joker && c.Rank == deck.Ace && aceLowOnly {
				total++
				continue
			}
			total += c.Points()
		}
	}
	return total
}

// HasPureRun reports whether the cards contain 3 or more natural
// same-suit cards in a row, under either ace interpretation. It
// inspects naturals only, independently of overall meld validity.
func HasPureRun(cards []deck.Card) bool {
	naturals, _ := splitJokers(cards)
	if len(naturals) < minMeldSize {
		return false
	}

	bySuit := map[deck.Suit][]deck.Card{}
	for _, c := range naturals {
		bySuit[c.Suit] = append(bySuit[c.Suit], c)
	}

	for _, suited := range bySuit {
		if hasRunAt(suited, false) || hasRunAt(suited, true) {
			return true
		}
	}
	return false
}

func hasRunAt(cards []deck.Card, high bool) bool {
	indices := []int{}
	for _, c := range cards {
		if high {
			indices = append(indices, c.Rank.HighIndex())
		} else {
			indices = append(indices, c.Rank.LowIndex())
		}
	}
	sort.Ints(indices)

	run := 1
	for i := 1; i < len(indices); i++ {
		switch indices[i] - indices[i-1] {
		case 0:
			// duplicate rank from the second pack, ignore
		case 1:
			run++
			if run >= minMeldSize {
				return true
			}
		default:
			run = 1
		}
	}
	return false
}

// ValidateOpening checks a player's first meld play of the round:
// every meld must classify, at least one sequence must carry a pure
// natural sub-run, and the total must reach the requirement. The first
// violated condition, in that order, decides the error.
func ValidateOpening(melds [][]deck.Card, requirement int) error {
	for _, meld := range melds {
		if Classify(meld) == InvalidMeld {
			return ErrOpeningMeldInvalid
		}
	}

	pure := false
	for _, meld := range melds {
		if Classify(meld) == SequenceMeld && HasPureRun(meld) {
			pure = true
			break
		}
	}
	if !pure {
		return ErrOpeningNoPureRun
	}

	if pts := MeldPoints(melds); pts < requirement {
		return fmt.Errorf("%w: have %d, need %d", ErrOpeningPoints, pts, requirement)
	}

	return nil
}

// HandPenalty is the round-end penalty for cards left in a hand.
// Aces always count 11 here; the low-ace exception does not apply.
func HandPenalty(cards []deck.Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}
