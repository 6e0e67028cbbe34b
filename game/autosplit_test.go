package game

import (
	"testing"

	"github.com/CammyCodes/Remik/deck"
	utils "github.com/CammyCodes/Remik/internal"
	"github.com/stretchr/testify/assert"
)

func splitCardCount(melds []Meld) int {
	n := 0
	for _, m := range melds {
		n += len(m.Cards)
	}
	return n
}

func TestAutoSplit(t *testing.T) {
	t.Run("run plus group consumes everything", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Five, deck.Hearts),
			card(deck.Six, deck.Hearts),
			card(deck.Seven, deck.Hearts),
			card(deck.Eight, deck.Spades),
			card(deck.Eight, deck.Hearts),
			card(deck.Eight, deck.Diamonds),
		}

		melds := AutoSplit(cards)
		assert.Len(t, melds, 2)
		utils.AssertEqual(t, splitCardCount(melds), 6)
		for _, m := range melds {
			assert.NotEqual(t, InvalidMeld, Classify(m.Cards))
		}
	})

	t.Run("single long run", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Three, deck.Clubs),
			card(deck.Four, deck.Clubs),
			card(deck.Five, deck.Clubs),
			card(deck.Six, deck.Clubs),
			card(deck.Seven, deck.Clubs),
		}
		melds := AutoSplit(cards)
		assert.Len(t, melds, 1)
		utils.AssertEqual(t, melds[0].Kind, SequenceMeld)
		utils.AssertEqual(t, len(melds[0].Cards), 5)
	})

	t.Run("high-ace run is found on the second pass", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Queen, deck.Hearts),
			card(deck.King, deck.Hearts),
			card(deck.Ace, deck.Hearts),
		}
		melds := AutoSplit(cards)
		assert.Len(t, melds, 1)
		utils.AssertEqual(t, melds[0].Kind, SequenceMeld)
	})

	t.Run("plain group of a rank", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Six, deck.Hearts),
			card(deck.Six, deck.Clubs),
			card(deck.Six, deck.Diamonds),
		}
		melds := AutoSplit(cards)
		assert.Len(t, melds, 1)
		utils.AssertEqual(t, melds[0].Kind, GroupMeld)
	})

	t.Run("groups-first rescues a rank the run would steal", func(t *testing.T) {
		// sequences-first absorbs 6H into the 6-7-8-9 run and strands
		// the other two sixes; groups-first takes the sixes as a group
		// and still finds the 7-8-9 run
		cards := []deck.Card{
			card(deck.Six, deck.Hearts),
			card(deck.Six, deck.Clubs),
			card(deck.Six, deck.Diamonds),
			card(deck.Seven, deck.Hearts),
			card(deck.Eight, deck.Hearts),
			card(deck.Nine, deck.Hearts),
		}
		melds := AutoSplit(cards)
		assert.Len(t, melds, 2)
		utils.AssertEqual(t, splitCardCount(melds), 6)
	})

	t.Run("leftover card fails the whole split", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Five, deck.Hearts),
			card(deck.Six, deck.Hearts),
			card(deck.Seven, deck.Hearts),
			card(deck.Two, deck.Clubs),
		}
		assert.Nil(t, AutoSplit(cards))
	})

	t.Run("jokers are never auto-placed", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Five, deck.Hearts),
			card(deck.Six, deck.Hearts),
			card(deck.Seven, deck.Hearts),
			joker(),
		}
		assert.Nil(t, AutoSplit(cards))
	})

	t.Run("fewer than three cards", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Five, deck.Hearts),
			card(deck.Six, deck.Hearts),
		}
		assert.Nil(t, AutoSplit(cards))
	})

	t.Run("two runs in different suits", func(t *testing.T) {
		cards := []deck.Card{
			card(deck.Two, deck.Spades),
			card(deck.Three, deck.Spades),
			card(deck.Four, deck.Spades),
			card(deck.Nine, deck.Diamonds),
			card(deck.Ten, deck.Diamonds),
			card(deck.Jack, deck.Diamonds),
			card(deck.Queen, deck.Diamonds),
		}
		melds := AutoSplit(cards)
		assert.Len(t, melds, 2)
		utils.AssertEqual(t, splitCardCount(melds), 7)
	})
}
