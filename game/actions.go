package game

import (
	"github.com/CammyCodes/Remik/deck"
)

// DrawFromStock moves the top stock card into the current player's
// hand and advances to the meld phase. An empty stock triggers the
// reshuffle check first; the second depletion of the round ends it
// with no winner.
func (r *Round) DrawFromStock() error {
	if r.Phase != PhaseDraw {
		return r.phaseError()
	}

	if len(r.Stock) == 0 {
		r.Reshuffles++
		if r.Reshuffles >= maxReshuffles || len(r.DiscardPile) < 2 {
			r.endRound(-1)
			return nil
		}
		r.rebuildStock()
	}

	card := r.Stock.Deal(1)[0]
	r.player().Hand = append(r.player().Hand, card)
	r.Phase = PhaseMeld
	return nil
}

// rebuildStock shuffles the discard pile, minus its top card, into a
// fresh stock.
func (r *Round) rebuildStock() {
	top := r.DiscardPile[len(r.DiscardPile)-1]
	rest := deck.Deck(append([]deck.Card{}, r.DiscardPile[:len(r.DiscardPile)-1]...))
	rest.Shuffle(r.rng)

	r.Stock = rest
	r.DiscardPile = []deck.Card{top}
}

// DrawFromDiscard takes the top discard card into the current player's
// hand. The card must land in a meld before the turn can end.
func (r *Round) DrawFromDiscard() error {
	if r.Phase != PhaseDraw {
		return r.phaseError()
	}
	if len(r.DiscardPile) == 0 {
		return ErrEmptyDiscard
	}

	card := r.DiscardPile[len(r.DiscardPile)-1]
	r.DiscardPile = r.DiscardPile[:len(r.DiscardPile)-1]
	r.player().Hand = append(r.player().Hand, card)
	r.DrawnDiscardID = card.ID
	r.DrawnUsed = false
	r.Phase = PhaseMeld
	return nil
}

// PlayMelds lays one or more melds from the current player's hand onto
// the table. Every group of card IDs must classify on its own; a
// player who has not yet opened must clear the opening gate with this
// batch as a whole. Nothing moves unless everything passes.
func (r *Round) PlayMelds(groups [][]int) error {
	if r.Phase != PhaseMeld {
		return r.phaseError()
	}
	if len(groups) == 0 {
		return ErrInvalidMeld
	}

	used := map[int]bool{}
	candidate := make([][]deck.Card, 0, len(groups))
	for _, ids := range groups {
		cards, err := r.cardsFromHand(ids, used)
		if err != nil {
			return err
		}
		if Classify(cards) == InvalidMeld {
			return ErrInvalidMeld
		}
		candidate = append(candidate, cards)
	}

	p := r.player()
	if !p.HasOpened && !r.Config.SkipOpeningGate {
		if err := ValidateOpening(candidate, r.Config.OpeningPoints); err != nil {
			return err
		}
	}

	for _, cards := range candidate {
		kind := Classify(cards)
		r.Melds = append(r.Melds, Meld{
			Kind:  kind,
			Owner: r.Current,
			Cards: arrangeMeld(kind, cards),
		})
		r.markDrawnUsed(cards)
	}

	allIDs := []int{}
	for id := range used {
		allIDs = append(allIDs, id)
	}
	r.removeFromHand(allIDs)
	p.HasOpened = true

	if len(p.Hand) == 0 {
		r.endRound(r.Current)
	}
	return nil
}

// ExtendMeld adds cards from the current player's hand to one end of
// an existing table meld. Requires having opened.
func (r *Round) ExtendMeld(meldIndex int, cardIDs []int, pos Position) error {
	if r.Phase != PhaseMeld {
		return r.phaseError()
	}
	if !r.player().HasOpened {
		return ErrNotOpened
	}
	if meldIndex < 0 || meldIndex >= len(r.Melds) {
		return ErrBadMeldIndex
	}

	cards, err := r.cardsFromHand(cardIDs, map[int]bool{})
	if err != nil {
		return err
	}

	meld := &r.Melds[meldIndex]
	if !CanExtend(*meld, cards, pos) {
		return ErrCannotExtend
	}

	combined := append(append([]deck.Card{}, meld.Cards...), cards...)
	kind := Classify(combined)
	meld.Kind = kind
	meld.Cards = arrangeMeld(kind, combined)

	r.markDrawnUsed(cards)
	r.removeFromHand(cardIDs)

	if len(r.player().Hand) == 0 {
		r.endRound(r.Current)
	}
	return nil
}

// SwapJoker trades a natural card from the current player's hand for a
// joker sitting in a table meld. The natural must be the very card the
// joker stands for; the meld keeps its card count and the joker goes
// to the swapper's hand. Requires having opened.
func (r *Round) SwapJoker(meldIndex, jokerSlot, cardID int) error {
	if r.Phase != PhaseMeld {
		return r.phaseError()
	}
	if !r.player().HasOpened {
		return ErrNotOpened
	}
	if meldIndex < 0 || meldIndex >= len(r.Melds) {
		return ErrBadMeldIndex
	}

	meld := &r.Melds[meldIndex]
	if jokerSlot < 0 || jokerSlot >= len(meld.Cards) || !meld.Cards[jokerSlot].Joker {
		return ErrNotAJoker
	}

	idx := r.handIndex(cardID)
	if idx < 0 {
		return ErrCardNotOwned
	}
	card := r.player().Hand[idx]
	if card.Joker {
		return ErrJokerSwapBreaks
	}

	// a run's joker stands for one specific card; a matching rank
	// elsewhere in the suit would silently re-anchor the run
	if meld.Kind == SequenceMeld && !sequenceSlotMatches(meld.Cards, jokerSlot, card) {
		return ErrJokerSwapBreaks
	}

	candidate := append([]deck.Card{}, meld.Cards...)
	joker := candidate[jokerSlot]
	candidate[jokerSlot] = card
	kind := Classify(candidate)
	if kind != meld.Kind {
		return ErrJokerSwapBreaks
	}

	meld.Cards = arrangeMeld(kind, candidate)
	r.removeFromHand([]int{cardID})
	r.player().Hand = append(r.player().Hand, joker)
	r.markDrawnUsed([]deck.Card{card})
	return nil
}

// SkipMeld ends the optional meld phase. Not allowed while a card
// drawn from the discard pile is still unmelded.
func (r *Round) SkipMeld() error {
	if r.Phase != PhaseMeld {
		return r.phaseError()
	}
	if r.DrawnDiscardID != -1 && !r.DrawnUsed {
		return ErrMustUseDrawn
	}
	r.Phase = PhaseDiscard
	return nil
}

// Discard puts exactly one card from the current player's hand on top
// of the discard pile and passes the turn. Discarding the card just
// drawn from the pile is illegal. An empty hand afterwards wins the
// round on the spot.
func (r *Round) Discard(cardID int) error {
	if r.Phase != PhaseDiscard {
		return r.phaseError()
	}

	idx := r.handIndex(cardID)
	if idx < 0 {
		return ErrCardNotOwned
	}
	if cardID == r.DrawnDiscardID {
		return ErrDiscardDrawn
	}

	card := r.player().Hand[idx]
	r.removeFromHand([]int{cardID})
	r.DiscardPile = append(r.DiscardPile, card)

	if len(r.player().Hand) == 0 {
		r.endRound(r.Current)
		return nil
	}

	r.Current = r.nextSeat(r.Current)
	r.player().OpenedBeforeTurn = r.player().HasOpened
	r.Phase = PhaseDraw
	r.DrawnDiscardID = -1
	r.DrawnUsed = false
	return nil
}

func (r *Round) markDrawnUsed(cards []deck.Card) {
	if r.DrawnDiscardID == -1 || r.DrawnUsed {
		return
	}
	for _, c := range cards {
		if c.ID == r.DrawnDiscardID {
			r.DrawnUsed = true
			return
		}
	}
}

// endRound scores the round. A winner who had not opened before this
// turn scores a remik: -20 for them and doubled penalties for everyone
// else, instead of the usual -10 and plain penalties. With no winner
// (stock exhausted twice) everyone just adds their penalty. Players
// crossing the elimination threshold drop out; one or zero players
// left ends the game.
func (r *Round) endRound(winner int) {
	r.Winner = winner
	r.Remik = winner >= 0 && !r.Players[winner].OpenedBeforeTurn

	for i, p := range r.Players {
		if p.Eliminated {
			continue
		}
		if i == winner {
			if r.Remik {
				p.Score -= 20
			} else {
				p.Score -= 10
			}
			continue
		}
		penalty := HandPenalty(p.Hand)
		if r.Remik {
			penalty *= 2
		}
		p.Score += penalty
	}

	for _, p := range r.Players {
		if !p.Eliminated && p.Score >= r.Config.EliminationScore {
			p.Eliminated = true
		}
	}

	if r.ActivePlayers() <= 1 {
		r.Phase = PhaseGameOver
		return
	}
	r.Phase = PhaseRoundOver
}

// AdvanceRound rotates the starting player to the next surviving seat
// and re-deals. Only legal once the round is over.
func (r *Round) AdvanceRound() error {
	if r.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if r.Phase != PhaseRoundOver {
		return ErrRoundNotOver
	}

	r.Starter = r.nextSeat(r.Starter)
	r.deal()
	return nil
}

func (r *Round) phaseError() error {
	switch r.Phase {
	case PhaseGameOver:
		return ErrGameOver
	default:
		return ErrWrongPhase
	}
}
