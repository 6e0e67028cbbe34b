package game

import (
	"errors"
	"testing"

	"github.com/CammyCodes/Remik/deck"
	utils "github.com/CammyCodes/Remik/internal"
	"github.com/stretchr/testify/assert"
)

func TestMeldPoints(t *testing.T) {
	t.Run("courts are ten, numbers face value, jokers fifty", func(t *testing.T) {
		melds := [][]deck.Card{{
			card(deck.Ten, deck.Spades),
			card(deck.Jack, deck.Spades),
			card(deck.Queen, deck.Spades),
		}, {
			card(deck.Eight, deck.Diamonds),
			card(deck.Eight, deck.Clubs),
			card(deck.Eight, deck.Hearts),
		}}
		utils.AssertEqual(t, MeldPoints(melds), 54)
	})

	t.Run("ace counts one in an ace-low-only sequence", func(t *testing.T) {
		melds := [][]deck.Card{{
			card(deck.Ace, deck.Spades),
			card(deck.Two, deck.Spades),
			card(deck.Three, deck.Spades),
		}}
		utils.AssertEqual(t, MeldPoints(melds), 1+2+3)
	})

	t.Run("ace counts eleven in an ace-high sequence", func(t *testing.T) {
		melds := [][]deck.Card{{
			card(deck.Queen, deck.Spades),
			card(deck.King, deck.Spades),
			card(deck.Ace, deck.Spades),
		}}
		utils.AssertEqual(t, MeldPoints(melds), 10+10+11)
	})

	t.Run("ace counts eleven in a group", func(t *testing.T) {
		melds := [][]deck.Card{{
			card(deck.Ace, deck.Spades),
			card(deck.Ace, deck.Hearts),
			card(deck.Ace, deck.Clubs),
		}}
		utils.AssertEqual(t, MeldPoints(melds), 33)
	})

	t.Run("joker value", func(t *testing.T) {
		melds := [][]deck.Card{{
			card(deck.Eight, deck.Diamonds),
			card(deck.Eight, deck.Clubs),
			joker(),
		}}
		utils.AssertEqual(t, MeldPoints(melds), 8+8+50)
	})
}

func TestHasPureRun(t *testing.T) {
	t.Run("three naturals in a row", func(t *testing.T) {
		utils.AssertTrue(t, HasPureRun([]deck.Card{
			card(deck.Four, deck.Spades),
			card(deck.Five, deck.Spades),
			card(deck.Six, deck.Spades),
			joker(),
		}))
	})

	t.Run("jokers do not bridge naturals", func(t *testing.T) {
		pure := HasPureRun([]deck.Card{
			card(deck.Four, deck.Spades),
			joker(),
			card(deck.Six, deck.Spades),
			joker(),
			card(deck.Eight, deck.Spades),
		})
		assert.False(t, pure)
	})

	t.Run("high-ace run counts", func(t *testing.T) {
		utils.AssertTrue(t, HasPureRun([]deck.Card{
			card(deck.Queen, deck.Hearts),
			card(deck.King, deck.Hearts),
			card(deck.Ace, deck.Hearts),
		}))
	})
}

func TestValidateOpening(t *testing.T) {
	pureSequence := func() []deck.Card {
		return []deck.Card{
			card(deck.Ten, deck.Spades),
			card(deck.Jack, deck.Spades),
			card(deck.Queen, deck.Spades),
		}
	}
	eights := func() []deck.Card {
		return []deck.Card{
			card(deck.Eight, deck.Diamonds),
			card(deck.Eight, deck.Clubs),
			card(deck.Eight, deck.Hearts),
		}
	}

	t.Run("sequence plus group over the line", func(t *testing.T) {
		err := ValidateOpening([][]deck.Card{pureSequence(), eights()}, 51)
		utils.AssertNoError(t, err)
	})

	t.Run("invalid meld reported first", func(t *testing.T) {
		junk := []deck.Card{
			card(deck.Two, deck.Hearts),
			card(deck.Nine, deck.Clubs),
			card(deck.King, deck.Diamonds),
		}
		err := ValidateOpening([][]deck.Card{junk, pureSequence()}, 51)
		assert.ErrorIs(t, err, ErrOpeningMeldInvalid)
	})

	t.Run("jokered sequence has no pure sub-run", func(t *testing.T) {
		seq := []deck.Card{
			card(deck.Four, deck.Spades),
			joker(),
			card(deck.Six, deck.Spades),
			joker(),
			card(deck.Eight, deck.Spades),
		}
		err := ValidateOpening([][]deck.Card{seq}, 51)
		assert.ErrorIs(t, err, ErrOpeningNoPureRun)
	})

	t.Run("group alone has no sequence at all", func(t *testing.T) {
		err := ValidateOpening([][]deck.Card{eights()}, 10)
		assert.ErrorIs(t, err, ErrOpeningNoPureRun)
	})

	t.Run("insufficient points reported last", func(t *testing.T) {
		low := []deck.Card{
			card(deck.Two, deck.Hearts),
			card(deck.Three, deck.Hearts),
			card(deck.Four, deck.Hearts),
		}
		err := ValidateOpening([][]deck.Card{low}, 51)
		assert.ErrorIs(t, err, ErrOpeningPoints)
		utils.AssertTrue(t, errors.Is(err, ErrOpeningPoints))
	})
}

func TestHandPenalty(t *testing.T) {
	t.Run("ace is always eleven at round end", func(t *testing.T) {
		hand := []deck.Card{
			card(deck.Ace, deck.Spades),
			card(deck.Two, deck.Spades),
			joker(),
		}
		utils.AssertEqual(t, HandPenalty(hand), 11+2+50)
	})

	t.Run("empty hand owes nothing", func(t *testing.T) {
		utils.AssertEqual(t, HandPenalty(nil), 0)
	})
}
