package deck

import "fmt"

// Rank represents a rank in a deck of cards
type Rank int

var rankNames = []string{"Ace", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine", "Ten", "Jack", "Queen", "King"}

const (
	Ace Rank = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// NullRank is the rank carried by jokers
const NullRank Rank = -1

// Suit represents a suit in a deck of cards
type Suit int

var suitNames = []string{"Clubs", "Diamonds", "Hearts", "Spades"}

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// NullSuit is the suit carried by jokers
const NullSuit Suit = -1

// LowIndex returns the rank's position when aces rank low (A=0 .. K=12)
func (r Rank) LowIndex() int {
	return int(r)
}

// HighIndex returns the rank's position when aces rank high (2=1 .. K=12, A=13)
func (r Rank) HighIndex() int {
	if r == Ace {
		return 13
	}
	return int(r)
}

func (r Rank) String() string {
	if r == NullRank {
		return "Joker"
	}
	return rankNames[r]
}

func (s Suit) String() string {
	if s == NullSuit {
		return ""
	}
	return suitNames[s]
}

// Card represents a single playing card. Cards are immutable once dealt
// and keep their ID for the whole game; they only move between containers.
// IDs disambiguate duplicate rank+suit cards across the two packs.
type Card struct {
	ID    int  `json:"id"`
	Rank  Rank `json:"rank"`
	Suit  Suit `json:"suit"`
	Joker bool `json:"joker"`
}

// NewCard constructs a natural (non-joker) card
func NewCard(id int, rank Rank, suit Suit) Card {
	return Card{ID: id, Rank: rank, Suit: suit}
}

// NewJoker constructs a joker
func NewJoker(id int) Card {
	return Card{ID: id, Rank: NullRank, Suit: NullSuit, Joker: true}
}

// Points returns the card's point value: ace 11, courts 10, numbers face
// value, jokers 50. The low-ace scoring exception lives in the rules
// layer, not here.
func (c Card) Points() int {
	if c.Joker {
		return 50
	}
	switch c.Rank {
	case Ace:
		return 11
	case Jack, Queen, King:
		return 10
	default:
		return int(c.Rank) + 1
	}
}

func (c Card) String() string {
	if c.Joker {
		return "Joker"
	}
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}
