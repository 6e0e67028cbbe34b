package game

import "github.com/CammyCodes/Remik/deck"

// CanExtend reports whether newCards may legally be added to the given
// end of an existing table meld. The combined set must classify, and
// for sequences the new naturals must lie strictly beyond the existing
// naturals' range in the direction the position implies, under an ace
// interpretation that makes the combined meld valid. This stops cards
// being slipped into the middle of a run under a mislabeled position.
func CanExtend(meld Meld, newCards []deck.Card, pos Position) bool {
	if len(newCards) == 0 {
		return false
	}

	combined := make([]deck.Card, 0, len(meld.Cards)+len(newCards))
	combined = append(combined, meld.Cards...)
	combined = append(combined, newCards...)

	kind := Classify(combined)
	if kind == InvalidMeld {
		return false
	}

	if kind != SequenceMeld {
		return true
	}

	oldNaturals, _ := splitJokers(meld.Cards)
	newNaturals, _ := splitJokers(newCards)
	if len(newNaturals) == 0 || len(oldNaturals) == 0 {
		// nothing but jokers on one side; multiset validity is enough
		return true
	}

	combinedNaturals, combinedJokers := splitJokers(combined)
	for _, high := range []bool{false, true} {
		if high && !sequenceFitsHigh(combinedNaturals, combinedJokers) {
			continue
		}
		if !high && !sequenceFitsLow(combinedNaturals, combinedJokers) {
			continue
		}
		if extendsBeyond(oldNaturals, newNaturals, pos, high) {
			return true
		}
	}

	return false
}

// extendsBeyond checks the new naturals sit entirely outside the
// existing naturals' index range on the requested side.
func extendsBeyond(oldNaturals, newNaturals []deck.Card, pos Position, high bool) bool {
	index := func(c deck.Card) int {
		if high {
			return c.Rank.HighIndex()
		}
		return c.Rank.LowIndex()
	}

	oldMin, oldMax := index(oldNaturals[0]), index(oldNaturals[0])
	for _, c := range oldNaturals[1:] {
		if idx := index(c); idx < oldMin {
			oldMin = idx
		} else if idx > oldMax {
			oldMax = idx
		}
	}

	for _, c := range newNaturals {
		idx := index(c)
		if pos == AtStart && idx >= oldMin {
			return false
		}
		if pos == AtEnd && idx <= oldMax {
			return false
		}
	}
	return true
}
