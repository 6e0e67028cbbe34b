package game

import (
	"github.com/CammyCodes/Remik/deck"
	"github.com/CammyCodes/Remik/protocol"
)

// Snapshot builds the sanitized view of the round for one seat: the
// viewer's own hand in full, opponents by card count only. Everything
// in it is plain data, safe to serialize as-is.
func (r *Round) Snapshot(viewer int) protocol.Snapshot {
	snap := protocol.Snapshot{
		Phase:         r.Phase.String(),
		CurrentPlayer: r.player().PlayerID,
		StockCount:    len(r.Stock),
		DiscardCount:  len(r.DiscardPile),
		Remik:         r.Remik,
	}

	if viewer >= 0 && viewer < len(r.Players) {
		p := r.Players[viewer]
		snap.Hand = append([]deck.Card{}, p.Hand...)
		snap.Score = p.Score
		snap.HasOpened = p.HasOpened
	}

	for i, p := range r.Players {
		if i == viewer {
			continue
		}
		snap.Opponents = append(snap.Opponents, protocol.Opponent{
			PlayerID:   p.PlayerID,
			Name:       p.Name,
			HandCount:  len(p.Hand),
			Score:      p.Score,
			HasOpened:  p.HasOpened,
			Eliminated: p.Eliminated,
		})
	}

	for _, m := range r.Melds {
		snap.Melds = append(snap.Melds, protocol.SnapshotMeld{
			Kind:  m.Kind.String(),
			Owner: r.Players[m.Owner].PlayerID,
			Cards: append([]deck.Card{}, m.Cards...),
		})
	}

	if len(r.DiscardPile) > 0 {
		top := r.DiscardPile[len(r.DiscardPile)-1]
		snap.DiscardTop = &top
	}

	if r.Winner >= 0 {
		snap.Winner = r.Players[r.Winner].PlayerID
	}

	return snap
}

// SeatOf maps a player ID to their seat index, or -1
func (r *Round) SeatOf(playerID string) int {
	for i, p := range r.Players {
		if p.PlayerID == playerID {
			return i
		}
	}
	return -1
}
