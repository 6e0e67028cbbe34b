package deck

import (
	"math/rand"
)

// NumPacks is the number of 52-card packs in a Remik deck
const NumPacks = 2

// MaxJokers caps the configurable joker count
const MaxJokers = 10

// Deck represents a deck of cards
type Deck []Card

// New creates a Remik deck: two full packs plus the requested number of
// jokers (clamped to 0..MaxJokers). Card IDs are unique across packs.
func New(jokers int) Deck {
	if jokers < 0 {
		jokers = 0
	}
	if jokers > MaxJokers {
		jokers = MaxJokers
	}

	cards := Deck{}
	id := 0
	for pack := 0; pack < NumPacks; pack++ {
		for suit := Clubs; suit <= Spades; suit++ {
			for rank := Ace; rank <= King; rank++ {
				cards = append(cards, NewCard(id, rank, suit))
				id++
			}
		}
	}
	for i := 0; i < jokers; i++ {
		cards = append(cards, NewJoker(id))
		id++
	}

	return cards
}

// Shuffle shuffles the deck of cards
func (d *Deck) Shuffle(r *rand.Rand) {
	actualDeck := *d
	for i := len(actualDeck) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		actualDeck[i], actualDeck[j] = actualDeck[j], actualDeck[i]
	}
}

// Deal deals n cards from the top of the deck, until it is empty
func (d *Deck) Deal(n int) []Card {
	numCardsInDeck := len(*d)
	if n < 0 || n > numCardsInDeck {
		return []Card{}
	}
	startingIndex := numCardsInDeck - n
	subSlice := (*d)[startingIndex:numCardsInDeck]
	*d = (*d)[:startingIndex]
	return subSlice
}
