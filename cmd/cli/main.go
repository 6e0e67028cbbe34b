package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/CammyCodes/Remik/bot"
	"github.com/CammyCodes/Remik/deck"
	"github.com/CammyCodes/Remik/game"
	"github.com/CammyCodes/Remik/protocol"
)

const (
	humanSeat = 0
	botSeat   = 1
)

func main() {
	title, _ := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Re", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("mik", pterm.FgLightWhite.ToStyle()),
	).Srender()
	pterm.Print(title)

	name, _ := pterm.DefaultInteractiveTextInput.
		WithDefaultText("Enter your name").
		WithDefaultValue("You").
		Show()
	pterm.Println()

	r, err := game.NewRound([]protocol.PlayerInfo{
		{PlayerID: "you", Name: name},
		{PlayerID: "bot", Name: "Bot"},
	}, game.DefaultConfig())
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	opponent := bot.New(botSeat)

	for {
		switch r.Phase {
		case game.PhaseRoundOver:
			printScores(r)
			again, _ := pterm.DefaultInteractiveConfirm.
				WithDefaultText("Deal the next round?").
				WithDefaultValue(true).
				Show()
			if !again {
				return
			}
			if err := r.AdvanceRound(); err != nil {
				pterm.Error.Println(err)
				return
			}

		case game.PhaseGameOver:
			printScores(r)
			pterm.Println()
			if r.Players[humanSeat].Eliminated {
				pterm.Error.Println("You have been eliminated, better luck next time!")
			} else {
				pterm.Success.Println("You are the last player standing, congratulations!")
			}
			return

		default:
			if r.Current == botSeat {
				botTurn(r, opponent)
			} else {
				humanTurn(r)
			}
		}
	}
}

func botTurn(r *game.Round, opponent *bot.Bot) {
	meldsBefore := len(r.Melds)
	if err := opponent.TakeTurn(r); err != nil {
		pterm.Error.Printfln("bot turn failed: %v", err)
		os.Exit(1)
	}

	if n := len(r.Melds) - meldsBefore; n > 0 {
		pterm.Info.Printfln("Bot laid down %d meld(s)", n)
	}
	if len(r.DiscardPile) > 0 && r.Phase != game.PhaseRoundOver {
		pterm.Info.Printfln("Bot discarded the %s", r.DiscardPile[len(r.DiscardPile)-1])
	}
}

func humanTurn(r *game.Round) {
	printState(r)

	var err error
	switch r.Phase {
	case game.PhaseDraw:
		err = drawMenu(r)
	case game.PhaseMeld:
		err = meldMenu(r)
	case game.PhaseDiscard:
		err = discardMenu(r)
	}

	if err != nil {
		pterm.Warning.Println(err)
	}
}

func drawMenu(r *game.Round) error {
	options := []string{"Draw from the stock"}
	if len(r.DiscardPile) > 0 {
		options = append(options, fmt.Sprintf("Take the %s from the discard pile", r.DiscardPile[len(r.DiscardPile)-1]))
	}

	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Draw")
	if choice == options[0] {
		return r.DrawFromStock()
	}
	return r.DrawFromDiscard()
}

func meldMenu(r *game.Round) error {
	const (
		layDown = "Lay down melds"
		layAll  = "Lay down the whole hand"
		extend  = "Extend a table meld"
		swap    = "Swap out a joker"
		keep    = "Keep your cards"
	)

	options := []string{layDown, layAll}
	if len(r.Melds) > 0 {
		options = append(options, extend, swap)
	}
	options = append(options, keep)

	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(options).Show("Meld")
	switch choice {
	case layDown:
		return layDownMelds(r)
	case layAll:
		return layDownWholeHand(r)
	case extend:
		return extendMeld(r)
	case swap:
		return swapJoker(r)
	default:
		return r.SkipMeld()
	}
}

// layDownMelds collects one or more groups of hand cards and plays
// them as a single batch, so the opening requirement is judged on the
// whole selection.
func layDownMelds(r *game.Round) error {
	var groups [][]int
	for {
		ids := pickCards(r, "Pick the cards of one meld (space to select, enter to confirm)")
		if len(ids) == 0 {
			break
		}
		groups = append(groups, ids)

		more, _ := pterm.DefaultInteractiveConfirm.
			WithDefaultText("Add another meld to this play?").
			Show()
		if !more {
			break
		}
	}
	if len(groups) == 0 {
		return nil
	}
	return r.PlayMelds(groups)
}

// layDownWholeHand partitions every card in the hand into melds, if
// such a partition exists, and plays it in one go.
func layDownWholeHand(r *game.Round) error {
	melds := game.AutoSplit(r.Players[humanSeat].Hand)
	if melds == nil {
		return fmt.Errorf("your hand does not split into melds")
	}

	groups := make([][]int, 0, len(melds))
	for _, m := range melds {
		ids := make([]int, 0, len(m.Cards))
		for _, c := range m.Cards {
			ids = append(ids, c.ID)
		}
		groups = append(groups, ids)
	}
	return r.PlayMelds(groups)
}

func extendMeld(r *game.Round) error {
	mi, err := pickMeld(r, "Extend which meld?")
	if err != nil {
		return err
	}

	ids := pickCards(r, "Pick the cards to add")
	if len(ids) == 0 {
		return nil
	}

	endChoice, _ := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"At the end", "At the start"}).
		Show("Where?")
	pos := game.AtEnd
	if endChoice == "At the start" {
		pos = game.AtStart
	}

	return r.ExtendMeld(mi, ids, pos)
}

func swapJoker(r *game.Round) error {
	mi, err := pickMeld(r, "Swap a joker from which meld?")
	if err != nil {
		return err
	}

	m := r.Melds[mi]
	var slots []string
	for i, c := range m.Cards {
		if c.Joker {
			slots = append(slots, fmt.Sprintf("slot %d", i))
		}
	}
	if len(slots) == 0 {
		return fmt.Errorf("that meld holds no jokers")
	}

	slotChoice, _ := pterm.DefaultInteractiveSelect.WithOptions(slots).Show("Which joker?")
	slot, _ := strconv.Atoi(strings.TrimPrefix(slotChoice, "slot "))

	ids := pickCards(r, "Pick the card to trade for the joker")
	if len(ids) != 1 {
		return fmt.Errorf("pick exactly one card")
	}

	return r.SwapJoker(mi, slot, ids[0])
}

func discardMenu(r *game.Round) error {
	ids := pickCards(r, "Pick a card to discard")
	if len(ids) != 1 {
		return fmt.Errorf("pick exactly one card")
	}
	return r.Discard(ids[0])
}

// pickCards runs a multiselect over the player's hand and resolves the
// chosen labels back to card IDs
func pickCards(r *game.Round, prompt string) []int {
	hand := r.Players[humanSeat].Hand

	labels := make([]string, 0, len(hand))
	byLabel := make(map[string]int, len(hand))
	for i, c := range hand {
		label := fmt.Sprintf("%2d: %s", i+1, c)
		labels = append(labels, label)
		byLabel[label] = c.ID
	}

	chosen, _ := pterm.DefaultInteractiveMultiselect.
		WithOptions(labels).
		Show(prompt)

	ids := make([]int, 0, len(chosen))
	for _, label := range chosen {
		ids = append(ids, byLabel[label])
	}
	return ids
}

func pickMeld(r *game.Round, prompt string) (int, error) {
	if len(r.Melds) == 0 {
		return 0, fmt.Errorf("there are no melds on the table")
	}

	labels := make([]string, 0, len(r.Melds))
	for i, m := range r.Melds {
		labels = append(labels, fmt.Sprintf("%d: %s", i+1, meldString(m)))
	}

	choice, _ := pterm.DefaultInteractiveSelect.WithOptions(labels).Show(prompt)
	idx, _ := strconv.Atoi(strings.SplitN(choice, ":", 2)[0])
	return idx - 1, nil
}

func meldString(m game.Meld) string {
	parts := make([]string, 0, len(m.Cards))
	for _, c := range m.Cards {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, ", ")
}

func printState(r *game.Round) {
	pterm.Println()

	opp := r.Players[botSeat]
	status := fmt.Sprintf("Bot: %d cards, %d points", len(opp.Hand), opp.Score)
	if opp.HasOpened {
		status += " (opened)"
	}
	pterm.DefaultSection.Println(status)

	pterm.Printfln("Stock: %d cards", len(r.Stock))
	if len(r.DiscardPile) > 0 {
		pterm.Printfln("Discard: %s (%d cards)", r.DiscardPile[len(r.DiscardPile)-1], len(r.DiscardPile))
	} else {
		pterm.Println("Discard: empty")
	}

	if len(r.Melds) > 0 {
		rows := pterm.TableData{{"#", "Kind", "Cards"}}
		for i, m := range r.Melds {
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				m.Kind.String(),
				meldString(m),
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	}

	me := r.Players[humanSeat]
	pterm.Println()
	header := fmt.Sprintf("Your hand (%d points on the table to open)", r.Config.OpeningPoints)
	if me.HasOpened {
		header = "Your hand"
	}
	pterm.DefaultSection.Println(header)
	for i, c := range me.Hand {
		pterm.Printfln("%2d: %s", i+1, cardString(c))
	}
	pterm.Println()
}

func cardString(c deck.Card) string {
	if c.Joker {
		return pterm.LightMagenta(c.String())
	}
	switch c.Suit {
	case deck.Hearts, deck.Diamonds:
		return pterm.LightRed(c.String())
	default:
		return c.String()
	}
}

func printScores(r *game.Round) {
	rows := pterm.TableData{{"Player", "Score", ""}}
	for i, p := range r.Players {
		note := ""
		if i == r.Winner {
			note = "won the round"
			if r.Remik {
				note = "remik!"
			}
		}
		if p.Eliminated {
			note = "eliminated"
		}
		rows = append(rows, []string{p.Name, strconv.Itoa(p.Score), note})
	}
	pterm.Println()
	pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
