package game

import (
	"errors"
	"math/rand"
	"time"

	"github.com/CammyCodes/Remik/deck"
	"github.com/CammyCodes/Remik/protocol"
)

const (
	minPlayers    = 2
	maxPlayers    = 4
	maxReshuffles = 2
)

var (
	ErrTooFewPlayers  = errors.New("minimum of 2 players required")
	ErrTooManyPlayers = errors.New("maximum of 4 players allowed")

	ErrWrongPhase      = errors.New("action not allowed in this phase")
	ErrEmptyDiscard    = errors.New("discard pile is empty")
	ErrCardNotOwned    = errors.New("card is not in your hand")
	ErrCardReused      = errors.New("card used more than once")
	ErrInvalidMeld     = errors.New("cards do not form a valid meld")
	ErrNotOpened       = errors.New("you must open before doing that")
	ErrBadMeldIndex    = errors.New("no such meld on the table")
	ErrCannotExtend    = errors.New("cards do not extend that meld")
	ErrNotAJoker       = errors.New("that slot does not hold a joker")
	ErrJokerSwapBreaks = errors.New("swap would break the meld")
	ErrMustUseDrawn    = errors.New("the card drawn from the discard pile must be melded this turn")
	ErrDiscardDrawn    = errors.New("cannot discard the card just drawn from the discard pile")
	ErrRoundNotOver    = errors.New("round is still in progress")
	ErrGameOver        = errors.New("game is already over")
)

// Config carries the numeric knobs the core consumes. Zero values are
// replaced by defaults and out-of-range values are clamped, so an empty
// Config is a playable game.
type Config struct {
	Jokers           int  `json:"jokers"`           // 0..10
	HandSize         int  `json:"handSize"`         // cards dealt to non-starting players
	StarterHandSize  int  `json:"starterHandSize"`  // cards dealt to the starting player
	OpeningPoints    int  `json:"openingPoints"`    // minimum points for the first meld play
	EliminationScore int  `json:"eliminationScore"` // 50..2000
	SkipOpeningGate  bool `json:"skipOpeningGate"`  // disable the opening requirement entirely
}

// DefaultConfig is the standard table setup: four jokers, 13-card
// hands, 51-point opening, elimination at 501.
func DefaultConfig() Config {
	return Config{
		Jokers:           4,
		HandSize:         13,
		StarterHandSize:  14,
		OpeningPoints:    DefaultOpeningPoints,
		EliminationScore: 501,
	}
}

func (c Config) normalize() Config {
	if c.Jokers < 0 {
		c.Jokers = 0
	}
	if c.Jokers > deck.MaxJokers {
		c.Jokers = deck.MaxJokers
	}
	if c.HandSize <= 0 {
		c.HandSize = 13
	}
	if c.StarterHandSize <= 0 {
		c.StarterHandSize = c.HandSize + 1
	}
	if c.OpeningPoints <= 0 {
		c.OpeningPoints = DefaultOpeningPoints
	}
	if c.EliminationScore <= 0 {
		c.EliminationScore = 501
	}
	if c.EliminationScore < 50 {
		c.EliminationScore = 50
	}
	if c.EliminationScore > 2000 {
		c.EliminationScore = 2000
	}
	return c
}

// PlayerState is one seat's mutable state across the game
type PlayerState struct {
	PlayerID   string      `json:"playerID"`
	Name       string      `json:"name"`
	Hand       []deck.Card `json:"hand"`
	Score      int         `json:"score"`
	HasOpened  bool        `json:"hasOpened"`
	Eliminated bool        `json:"eliminated"`

	// OpenedBeforeTurn records whether the player had already opened
	// when their current turn began; winning with it false is a remik.
	OpenedBeforeTurn bool `json:"openedBeforeTurn"`
}

// Round is the single mutable aggregate of the engine. All mutation
// goes through its action methods, each of which either applies fully
// or returns an error leaving the state untouched. It performs no
// locking: callers must serialize access (one writer per round).
type Round struct {
	Players     []*PlayerState `json:"players"`
	Stock       deck.Deck      `json:"stock"`
	DiscardPile []deck.Card    `json:"discard"` // top is the last element
	Melds       []Meld         `json:"melds"`
	Current     int            `json:"current"`
	Phase       Phase          `json:"phase"`
	Starter     int            `json:"starter"`
	Reshuffles  int            `json:"reshuffles"`
	Winner      int            `json:"winner"` // -1 until the round ends
	Remik       bool           `json:"remik"`
	Config      Config         `json:"config"`

	// DrawnDiscardID is the ID of the card taken from the discard pile
	// this turn (-1 if none); DrawnUsed flips once it lands in a meld.
	DrawnDiscardID int  `json:"drawnDiscardID"`
	DrawnUsed      bool `json:"drawnUsed"`

	rng *rand.Rand
}

// NewRound deals a fresh round for the given players. The starting
// player receives one extra card and begins in the discard phase; the
// discard pile starts empty and seeds from their first discard.
func NewRound(info []protocol.PlayerInfo, cfg Config) (*Round, error) {
	if len(info) < minPlayers {
		return nil, ErrTooFewPlayers
	}
	if len(info) > maxPlayers {
		return nil, ErrTooManyPlayers
	}

	r := &Round{
		Config: cfg.normalize(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, pi := range info {
		r.Players = append(r.Players, &PlayerState{PlayerID: pi.PlayerID, Name: pi.Name})
	}
	r.Starter = r.rng.Intn(len(r.Players))
	r.deal()

	return r, nil
}

// ExistingRound restores a round deserialized from storage. The
// aggregate is plain nested data; only the shuffle source needs
// re-seeding.
func ExistingRound(r *Round) *Round {
	r.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	if r.DiscardPile == nil {
		r.DiscardPile = []deck.Card{}
	}
	if r.Melds == nil {
		r.Melds = []Meld{}
	}
	return r
}

// deal shuffles a fresh deck and sets up the opening turn
func (r *Round) deal() {
	d := deck.New(r.Config.Jokers)
	d.Shuffle(r.rng)

	for i, p := range r.Players {
		p.Hand = nil
		p.HasOpened = false
		p.OpenedBeforeTurn = false
		if p.Eliminated {
			continue
		}
		n := r.Config.HandSize
		if i == r.Starter {
			n = r.Config.StarterHandSize
		}
		p.Hand = append([]deck.Card{}, d.Deal(n)...)
	}

	r.Stock = d
	r.DiscardPile = []deck.Card{}
	r.Melds = []Meld{}
	r.Current = r.Starter
	r.Phase = PhaseDiscard
	r.Reshuffles = 0
	r.Winner = -1
	r.Remik = false
	r.DrawnDiscardID = -1
	r.DrawnUsed = false
}

func (r *Round) player() *PlayerState {
	return r.Players[r.Current]
}

// ActivePlayers counts the seats still in the game
func (r *Round) ActivePlayers() int {
	n := 0
	for _, p := range r.Players {
		if !p.Eliminated {
			n++
		}
	}
	return n
}

// CardCount is the number of cards across all containers; it must
// always equal the full deck size.
func (r *Round) CardCount() int {
	n := len(r.Stock) + len(r.DiscardPile)
	for _, p := range r.Players {
		n += len(p.Hand)
	}
	for _, m := range r.Melds {
		n += len(m.Cards)
	}
	return n
}

// handIndex finds a card in the current player's hand by ID
func (r *Round) handIndex(cardID int) int {
	for i, c := range r.player().Hand {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

// cardsFromHand resolves IDs to the current player's cards without
// removing them. Every ID must be owned and no ID may repeat.
func (r *Round) cardsFromHand(cardIDs []int, used map[int]bool) ([]deck.Card, error) {
	cards := make([]deck.Card, 0, len(cardIDs))
	for _, id := range cardIDs {
		if used[id] {
			return nil, ErrCardReused
		}
		idx := r.handIndex(id)
		if idx < 0 {
			return nil, ErrCardNotOwned
		}
		used[id] = true
		cards = append(cards, r.player().Hand[idx])
	}
	return cards, nil
}

// removeFromHand drops the given IDs from the current player's hand
func (r *Round) removeFromHand(cardIDs []int) {
	ids := map[int]bool{}
	for _, id := range cardIDs {
		ids[id] = true
	}
	kept := r.player().Hand[:0:0]
	for _, c := range r.player().Hand {
		if !ids[c.ID] {
			kept = append(kept, c)
		}
	}
	r.player().Hand = kept
}

// nextSeat returns the next non-eliminated seat after i
func (r *Round) nextSeat(i int) int {
	for {
		i = (i + 1) % len(r.Players)
		if !r.Players[i].Eliminated {
			return i
		}
	}
}
