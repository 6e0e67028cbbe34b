package game

import (
	"sort"

	"github.com/CammyCodes/Remik/deck"
)

// AutoSplit partitions an unordered selection into one or more valid
// melds consuming every card, or returns nil if no partition is found.
// Jokers are never auto-placed: a selection containing a joker the
// deterministic strategies cannot resolve fails outright, since joker
// placement is the player's explicit choice. Two strategies run in
// order, sequences-first then groups-first; the first that consumes
// everything wins.
func AutoSplit(cards []deck.Card) []Meld {
	if len(cards) < minMeldSize {
		return nil
	}

	naturals, jokers := splitJokers(cards)
	if jokers > 0 {
		// neither strategy places jokers
		return nil
	}

	if melds := sequencesFirst(naturals); melds != nil {
		return melds
	}
	return groupsFirst(naturals)
}

func sequencesFirst(naturals []deck.Card) []Meld {
	melds, rest := extractSequences(naturals)
	groupMelds, rest := extractGroups(rest)
	melds = append(melds, groupMelds...)

	if len(melds) == 0 || len(rest) > 0 {
		return nil
	}
	return melds
}

func groupsFirst(naturals []deck.Card) []Meld {
	melds, rest := extractGroups(naturals)
	seqMelds, rest := extractSequences(rest)
	melds = append(melds, seqMelds...)

	if len(melds) == 0 || len(rest) > 0 {
		return nil
	}
	return melds
}

// extractSequences pulls maximal same-suit runs of 3+ out of the
// naturals: first under ace-low ordering, then again under ace-high
// over whatever remains. Unused cards come back as leftovers.
func extractSequences(naturals []deck.Card) ([]Meld, []deck.Card) {
	melds := []Meld{}

	rest := append([]deck.Card(nil), naturals...)
	for _, high := range []bool{false, true} {
		bySuit := map[deck.Suit][]deck.Card{}
		for _, c := range rest {
			bySuit[c.Suit] = append(bySuit[c.Suit], c)
		}

		rest = rest[:0]
		suits := []deck.Suit{deck.Clubs, deck.Diamonds, deck.Hearts, deck.Spades}
		for _, suit := range suits {
			runs, leftover := extractRuns(bySuit[suit], high)
			for _, run := range runs {
				melds = append(melds, Meld{Kind: SequenceMeld, Cards: run})
			}
			rest = append(rest, leftover...)
		}
	}

	return melds, rest
}

// extractRuns walks one suit's cards in index order, peeling off
// maximal consecutive runs of 3+. Duplicate ranks from the second pack
// stay behind as leftovers.
func extractRuns(suited []deck.Card, high bool) ([][]deck.Card, []deck.Card) {
	index := func(c deck.Card) int {
		if high {
			return c.Rank.HighIndex()
		}
		return c.Rank.LowIndex()
	}

	cards := append([]deck.Card(nil), suited...)
	sort.Slice(cards, func(i, j int) bool {
		return index(cards[i]) < index(cards[j])
	})

	runs := [][]deck.Card{}
	leftover := []deck.Card{}
	current := []deck.Card{}

	flush := func() {
		if len(current) >= minMeldSize {
			runs = append(runs, current)
		} else {
			leftover = append(leftover, current...)
		}
		current = []deck.Card{}
	}

	for _, c := range cards {
		if len(current) == 0 {
			current = append(current, c)
			continue
		}
		switch index(c) - index(current[len(current)-1]) {
		case 0:
			leftover = append(leftover, c)
		case 1:
			current = append(current, c)
		default:
			flush()
			current = append(current, c)
		}
	}
	flush()

	return runs, leftover
}

// extractGroups collects leftover naturals into 3-4 card same-rank
// groups with distinct suits. Same-suit duplicates of a rank cannot
// join the group and stay behind.
func extractGroups(naturals []deck.Card) ([]Meld, []deck.Card) {
	byRank := map[deck.Rank][]deck.Card{}
	ranks := []deck.Rank{}
	for _, c := range naturals {
		if len(byRank[c.Rank]) == 0 {
			ranks = append(ranks, c.Rank)
		}
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] < ranks[j] })

	melds := []Meld{}
	leftover := []deck.Card{}
	for _, rank := range ranks {
		group := []deck.Card{}
		seenSuits := map[deck.Suit]bool{}
		for _, c := range byRank[rank] {
			if seenSuits[c.Suit] || len(group) == maxGroupSize {
				leftover = append(leftover, c)
				continue
			}
			seenSuits[c.Suit] = true
			group = append(group, c)
		}

		if len(group) >= minMeldSize {
			melds = append(melds, Meld{Kind: GroupMeld, Cards: arrangeGroup(group)})
		} else {
			leftover = append(leftover, group...)
		}
	}

	return melds, leftover
}
