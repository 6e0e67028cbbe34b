package game

import (
	"sort"

	"github.com/CammyCodes/Remik/deck"
)

const (
	minMeldSize  = 3
	maxGroupSize = 4
)

// Meld is a validated set of cards lying on the table. Once created it
// only ever grows (extension) or has a joker swapped out; it is never
// destroyed during a round.
type Meld struct {
	Kind  MeldKind    `json:"kind"`
	Owner int         `json:"owner"`
	Cards []deck.Card `json:"cards"`
}

// Classify decides whether cards form a sequence, a group, or nothing.
// Validity depends only on the multiset of cards, never on the order
// the caller arranged them in. The joker bounds keep the two shapes
// disjoint: no set of cards satisfies both.
func Classify(cards []deck.Card) MeldKind {
	if isSequence(cards) {
		return SequenceMeld
	}
	if isGroup(cards) {
		return GroupMeld
	}
	return InvalidMeld
}

func splitJokers(cards []deck.Card) (naturals []deck.Card, jokers int) {
	for _, c := range cards {
		if c.Joker {
			jokers++
		} else {
			naturals = append(naturals, c)
		}
	}
	return naturals, jokers
}

// isGroup reports whether cards form a 3-4 card group: naturals share
// one rank with pairwise-distinct suits, jokers never outnumber
// naturals.
func isGroup(cards []deck.Card) bool {
	if len(cards) < minMeldSize || len(cards) > maxGroupSize {
		return false
	}

	naturals, jokers := splitJokers(cards)
	if len(naturals) == 0 || jokers > len(naturals) {
		return false
	}

	rank := naturals[0].Rank
	seenSuits := map[deck.Suit]bool{}
	for _, c := range naturals {
		if c.Rank != rank {
			return false
		}
		if seenSuits[c.Suit] {
			return false
		}
		seenSuits[c.Suit] = true
	}

	return true
}

// isSequence reports whether cards form a run of 3 or more same-suit
// cards, with jokers filling gaps. Ace-low and ace-high interpretations
// are tried independently; wraparound (K-A-2) fits neither window.
func isSequence(cards []deck.Card) bool {
	if len(cards) < minMeldSize {
		return false
	}

	naturals, jokers := splitJokers(cards)
	if len(naturals) == 0 {
		return false
	}

	// Jokers fill gaps but must stay in the minority: a run never
	// holds as many jokers as naturals.
	if jokers >= len(naturals) {
		return false
	}

	suit := naturals[0].Suit
	for _, c := range naturals {
		if c.Suit != suit {
			return false
		}
	}

	return sequenceFitsLow(naturals, jokers) || sequenceFitsHigh(naturals, jokers)
}

// sequenceFitsLow checks the ace-low window [0,12]
func sequenceFitsLow(naturals []deck.Card, jokers int) bool {
	indices := make([]int, len(naturals))
	for i, c := range naturals {
		indices[i] = c.Rank.LowIndex()
	}
	return fitsWindow(indices, jokers, 0, 12)
}

// sequenceFitsHigh checks the ace-high window [1,13]
func sequenceFitsHigh(naturals []deck.Card, jokers int) bool {
	indices := make([]int, len(naturals))
	for i, c := range naturals {
		indices[i] = c.Rank.HighIndex()
	}
	return fitsWindow(indices, jokers, 1, 13)
}

// fitsWindow reports whether the natural rank indices plus the given
// number of jokers can occupy a contiguous block of slots inside
// [lo, hi]. A repeated index is an immediate failure: the same rank
// cannot appear twice in one run.
func fitsWindow(indices []int, jokers, lo, hi int) bool {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1] {
			return false
		}
	}

	min, max := sorted[0], sorted[len(sorted)-1]
	total := len(sorted) + jokers
	if max-min >= total {
		// gap too wide for the available jokers
		return false
	}

	for start := min - jokers; start <= min; start++ {
		if start < lo {
			continue
		}
		end := start + total - 1
		if end > hi || end < max {
			continue
		}
		return true
	}

	return false
}

// arrangeSequence lays out a valid sequence meld in slot order: each
// natural sits at its rank index and jokers fill the remaining slots.
// The caller must have classified the cards as a sequence already.
func arrangeSequence(cards []deck.Card) []deck.Card {
	naturals, jokers := splitJokers(cards)

	high := !sequenceFitsLow(naturals, jokers)
	index := func(c deck.Card) int {
		if high {
			return c.Rank.HighIndex()
		}
		return c.Rank.LowIndex()
	}

	sort.Slice(naturals, func(i, j int) bool {
		return index(naturals[i]) < index(naturals[j])
	})

	lo := 0
	if high {
		lo = 1
	}
	total := len(cards)
	start := index(naturals[0]) - jokers
	if start < lo {
		start = lo
	}
	// push the window right until it covers the highest natural
	for start+total-1 < index(naturals[len(naturals)-1]) {
		start++
	}

	jokerPool := []deck.Card{}
	for _, c := range cards {
		if c.Joker {
			jokerPool = append(jokerPool, c)
		}
	}

	arranged := make([]deck.Card, 0, total)
	ni := 0
	for slot := start; slot < start+total; slot++ {
		if ni < len(naturals) && index(naturals[ni]) == slot {
			arranged = append(arranged, naturals[ni])
			ni++
			continue
		}
		arranged = append(arranged, jokerPool[0])
		jokerPool = jokerPool[1:]
	}

	return arranged
}

// sequenceSlotMatches reports whether the replacement is the very card
// a joker at the given slot of an arranged sequence stands for.
// Sequences are stored in slot order, so any non-ace natural fixes the
// rank every position represents; a run holds at most one ace, leaving
// at least one such natural.
func sequenceSlotMatches(cards []deck.Card, slot int, replacement deck.Card) bool {
	for p, c := range cards {
		if c.Joker || c.Rank == deck.Ace {
			continue
		}
		if replacement.Suit != c.Suit {
			return false
		}
		want := c.Rank.LowIndex() - p + slot
		return replacement.Rank.LowIndex() == want || replacement.Rank.HighIndex() == want
	}
	return false
}

// arrangeGroup orders a group meld naturals-first by suit, jokers last
func arrangeGroup(cards []deck.Card) []deck.Card {
	naturals, _ := splitJokers(cards)
	sort.Slice(naturals, func(i, j int) bool {
		return naturals[i].Suit < naturals[j].Suit
	})
	arranged := append([]deck.Card{}, naturals...)
	for _, c := range cards {
		if c.Joker {
			arranged = append(arranged, c)
		}
	}
	return arranged
}

// arrangeMeld returns the display/table order for a classified meld
func arrangeMeld(kind MeldKind, cards []deck.Card) []deck.Card {
	if kind == SequenceMeld {
		return arrangeSequence(cards)
	}
	return arrangeGroup(cards)
}
