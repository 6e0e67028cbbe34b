package deck

import (
	"math/rand"
	"testing"

	utils "github.com/CammyCodes/Remik/internal"
)

func TestNewDeck(t *testing.T) {
	t.Run("two packs plus jokers", func(t *testing.T) {
		d := New(4)
		utils.AssertEqual(t, len(d), NumPacks*52+4)
	})

	t.Run("no jokers", func(t *testing.T) {
		d := New(0)
		utils.AssertEqual(t, len(d), NumPacks*52)
		for _, c := range d {
			if c.Joker {
				t.Fatal("unexpected joker in a jokerless deck")
			}
		}
	})

	t.Run("joker count is clamped", func(t *testing.T) {
		utils.AssertEqual(t, len(New(-3)), NumPacks*52)
		utils.AssertEqual(t, len(New(100)), NumPacks*52+MaxJokers)
	})

	t.Run("card IDs are unique", func(t *testing.T) {
		d := New(MaxJokers)
		seen := map[int]bool{}
		for _, c := range d {
			if seen[c.ID] {
				t.Fatalf("duplicate card ID %d", c.ID)
			}
			seen[c.ID] = true
		}
	})

	t.Run("every rank and suit appears twice", func(t *testing.T) {
		d := New(0)
		counts := map[string]int{}
		for _, c := range d {
			counts[c.String()]++
		}
		for name, n := range counts {
			if n != NumPacks {
				t.Errorf("%s appears %d times, want %d", name, n, NumPacks)
			}
		}
	})
}

func TestDeal(t *testing.T) {
	t.Run("removes dealt cards from the deck", func(t *testing.T) {
		d := New(4)
		before := len(d)

		hand := d.Deal(13)
		utils.AssertEqual(t, len(hand), 13)
		utils.AssertEqual(t, len(d), before-13)
	})

	t.Run("cannot deal more than the deck holds", func(t *testing.T) {
		d := Deck{NewCard(0, Ace, Clubs)}
		utils.AssertEqual(t, len(d.Deal(2)), 0)
		utils.AssertEqual(t, len(d), 1)
	})
}

func TestShuffle(t *testing.T) {
	t.Run("shuffling keeps every card", func(t *testing.T) {
		d := New(4)
		ids := map[int]bool{}
		for _, c := range d {
			ids[c.ID] = true
		}

		d.Shuffle(rand.New(rand.NewSource(42)))

		utils.AssertEqual(t, len(d), NumPacks*52+4)
		for _, c := range d {
			if !ids[c.ID] {
				t.Fatalf("card %d appeared from nowhere", c.ID)
			}
		}
	})

	t.Run("the same seed produces the same order", func(t *testing.T) {
		a, b := New(4), New(4)
		a.Shuffle(rand.New(rand.NewSource(7)))
		b.Shuffle(rand.New(rand.NewSource(7)))
		utils.AssertDeepEqual(t, a, b)
	})
}
