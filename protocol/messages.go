package protocol

import "github.com/CammyCodes/Remik/deck"

// InboundMessage is a message from a Player to the engine. Command
// selects the action and exactly one matching payload carries its
// fields; the dispatcher rejects anything else. This replaces the
// untyped action objects of older clients with a closed set.
type InboundMessage struct {
	PlayerID string          `json:"playerID"`
	Command  Cmd             `json:"command"`
	Play     *PlayPayload    `json:"play,omitempty"`
	Extend   *ExtendPayload  `json:"extend,omitempty"`
	Swap     *SwapPayload    `json:"swap,omitempty"`
	Discard  *DiscardPayload `json:"discard,omitempty"`
}

// PlayPayload lists the card IDs of each meld to lay down
type PlayPayload struct {
	Groups [][]int `json:"groups"`
}

// ExtendPayload adds cards to one end of a table meld
type ExtendPayload struct {
	MeldIndex int   `json:"meldIndex"`
	CardIDs   []int `json:"cardIDs"`
	AtStart   bool  `json:"atStart"`
}

// SwapPayload trades a hand card for a meld's joker
type SwapPayload struct {
	MeldIndex int `json:"meldIndex"`
	JokerSlot int `json:"jokerSlot"`
	CardID    int `json:"cardID"`
}

// DiscardPayload names the card to discard
type DiscardPayload struct {
	CardID int `json:"cardID"`
}

// Opponent is what a player may see of another seat: everything
// except the cards themselves.
type Opponent struct {
	PlayerID   string `json:"playerID"`
	Name       string `json:"name"`
	HandCount  int    `json:"handCount"`
	Score      int    `json:"score"`
	HasOpened  bool   `json:"hasOpened"`
	Eliminated bool   `json:"eliminated"`
}

// SnapshotMeld is a table meld as sent to clients
type SnapshotMeld struct {
	Kind  string      `json:"kind"`
	Owner string      `json:"owner"`
	Cards []deck.Card `json:"cards"`
}

// Snapshot is a sanitized view of the round for one recipient: their
// own hand in full, everyone else by count only.
type Snapshot struct {
	Phase         string         `json:"phase"`
	CurrentPlayer string         `json:"currentPlayer"`
	Hand          []deck.Card    `json:"hand"`
	Score         int            `json:"score"`
	HasOpened     bool           `json:"hasOpened"`
	Opponents     []Opponent     `json:"opponents"`
	Melds         []SnapshotMeld `json:"melds"`
	DiscardTop    *deck.Card     `json:"discardTop,omitempty"`
	DiscardCount  int            `json:"discardCount"`
	StockCount    int            `json:"stockCount"`
	Winner        string         `json:"winner,omitempty"`
	Remik         bool           `json:"remik"`
}

// OutboundMessage is a message from the engine to a Player
type OutboundMessage struct {
	PlayerID string    `json:"playerID"`
	Command  Cmd       `json:"command"`
	Message  string    `json:"message,omitempty"`
	Joiner   string    `json:"joiner,omitempty"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Error    string    `json:"error,omitempty"`
}
