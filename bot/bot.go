// Package bot implements a computer opponent for offline play. It
// drives a Round through the same public actions a human player would
// use, with a simple greedy policy: meld whatever it can, extend where
// possible, and shed the most expensive card.
package bot

import (
	"errors"
	"sort"

	"github.com/CammyCodes/Remik/deck"
	"github.com/CammyCodes/Remik/game"
)

var ErrNotBotTurn = errors.New("it is not the bot's turn")

// Bot plays one seat of a round
type Bot struct {
	Seat int
}

func New(seat int) *Bot {
	return &Bot{Seat: seat}
}

// TakeTurn plays the bot's whole turn: draw, meld and discard. It
// returns once the turn has passed to another player or the round has
// ended.
func (b *Bot) TakeTurn(r *game.Round) error {
	if r.Current != b.Seat {
		return ErrNotBotTurn
	}

	for r.Current == b.Seat {
		switch r.Phase {
		case game.PhaseDraw:
			if err := b.draw(r); err != nil {
				return err
			}
		case game.PhaseMeld:
			if err := b.meld(r); err != nil {
				return err
			}
		case game.PhaseDiscard:
			return b.discard(r)
		default:
			return nil
		}
	}
	return nil
}

// draw prefers the discard pile only when the top card is guaranteed
// to land in a meld this turn; taking it otherwise would trap the bot,
// since a card drawn from the pile may not be discarded back.
func (b *Bot) draw(r *game.Round) error {
	me := r.Players[b.Seat]
	if me.HasOpened && len(r.DiscardPile) > 0 {
		top := r.DiscardPile[len(r.DiscardPile)-1]
		if meldWith(me.Hand, top) != nil {
			return r.DrawFromDiscard()
		}
	}
	return r.DrawFromStock()
}

func (b *Bot) meld(r *game.Round) error {
	if batch := disjointMelds(r.Players[b.Seat].Hand); len(batch) > 0 {
		// state is untouched when this fails, e.g. below the opening
		// requirement, so falling through to skip is safe
		if err := r.PlayMelds(batch); err == nil && r.Phase != game.PhaseMeld {
			return nil
		}
	}

	if r.Players[b.Seat].HasOpened {
		b.extendAll(r)
		if r.Phase != game.PhaseMeld {
			return nil
		}
	}

	err := r.SkipMeld()
	if errors.Is(err, game.ErrMustUseDrawn) {
		if m := meldContaining(r.Players[b.Seat].Hand, r.DrawnDiscardID); m != nil {
			return r.PlayMelds([][]int{m})
		}
	}
	return err
}

// extendAll repeatedly tries to attach single hand cards to any table
// meld until nothing sticks
func (b *Bot) extendAll(r *game.Round) {
	for progress := true; progress && r.Phase == game.PhaseMeld; {
		progress = false
		for _, c := range r.Players[b.Seat].Hand {
			for mi := range r.Melds {
				if r.ExtendMeld(mi, []int{c.ID}, game.AtEnd) == nil ||
					r.ExtendMeld(mi, []int{c.ID}, game.AtStart) == nil {
					progress = true
					break
				}
			}
			if progress {
				break
			}
		}
	}
}

// discard sheds the highest-penalty card, holding on to jokers until
// nothing else is left
func (b *Bot) discard(r *game.Round) error {
	hand := r.Players[b.Seat].Hand
	best, bestPts := -1, -1
	for _, c := range hand {
		if c.ID == r.DrawnDiscardID || c.Joker {
			continue
		}
		if p := c.Points(); p > bestPts {
			best, bestPts = c.ID, p
		}
	}
	if best < 0 {
		for _, c := range hand {
			if c.ID != r.DrawnDiscardID {
				best = c.ID
				break
			}
		}
	}
	return r.Discard(best)
}

// disjointMelds finds a set of non-overlapping melds in the hand,
// richest first. Subsets of three to five cards are tried exhaustively;
// hands are small enough for that to be instant.
func disjointMelds(hand []deck.Card) [][]int {
	type candidate struct {
		ids    []int
		points int
	}

	var found []candidate
	for size := 3; size <= 5 && size <= len(hand); size++ {
		combinations(len(hand), size, func(idx []int) {
			cards := make([]deck.Card, size)
			for i, j := range idx {
				cards[i] = hand[j]
			}
			kind := game.Classify(cards)
			if kind == game.InvalidMeld {
				return
			}
			ids := make([]int, size)
			for i, c := range cards {
				ids[i] = c.ID
			}
			found = append(found, candidate{ids: ids, points: game.MeldPoints([][]deck.Card{cards})})
		})
	}

	sort.SliceStable(found, func(i, j int) bool { return found[i].points > found[j].points })

	taken := map[int]bool{}
	var batch [][]int
	for _, c := range found {
		overlap := false
		for _, id := range c.ids {
			if taken[id] {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		for _, id := range c.ids {
			taken[id] = true
		}
		batch = append(batch, c.ids)
	}
	return batch
}

// meldWith looks for a meld made of the extra card plus hand cards
func meldWith(hand []deck.Card, extra deck.Card) []int {
	return meldContaining(append(append([]deck.Card{}, hand...), extra), extra.ID)
}

// meldContaining finds any valid meld in the cards that uses the card
// with the given ID, or nil
func meldContaining(cards []deck.Card, mustUse int) []int {
	for size := 3; size <= 5 && size <= len(cards); size++ {
		var hit []int
		combinations(len(cards), size, func(idx []int) {
			if hit != nil {
				return
			}
			subset := make([]deck.Card, size)
			uses := false
			for i, j := range idx {
				subset[i] = cards[j]
				if subset[i].ID == mustUse {
					uses = true
				}
			}
			if !uses || game.Classify(subset) == game.InvalidMeld {
				return
			}
			hit = make([]int, size)
			for i, c := range subset {
				hit[i] = c.ID
			}
		})
		if hit != nil {
			return hit
		}
	}
	return nil
}

// combinations calls f with every k-element index subset of [0, n)
func combinations(n, k int, f func([]int)) {
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			f(idx)
			return
		}
		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
