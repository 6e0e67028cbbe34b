package engine

import (
	"errors"
	"sync"

	"github.com/CammyCodes/Remik/game"
	"github.com/CammyCodes/Remik/protocol"
)

// PlayState represents the lifecycle of a room:
// idle -> waiting for players, inProgress -> cards on the table,
// finished -> game over.
type PlayState int

const (
	Idle PlayState = iota
	InProgress
	Finished
)

func (ps PlayState) String() string {
	switch ps {
	case Idle:
		return "idle"
	case InProgress:
		return "inProgress"
	case Finished:
		return "finished"
	}
	return ""
}

var (
	ErrNilEngine      = errors.New("engine is nil")
	ErrTooFewPlayers  = errors.New("minimum of 2 players required")
	ErrTooManyPlayers = errors.New("maximum of 4 players allowed")
	ErrNotCreator     = errors.New("only the game creator can start the game")
	ErrAlreadyStarted = errors.New("game has already started")
	ErrNotStarted     = errors.New("game has not started yet")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrBadPayload     = errors.New("malformed action payload")
)

// Player is a connected participant; the engine pushes messages to it
type Player interface {
	ID() string
	Name() string
	Send(protocol.OutboundMessage) error
}

// Listener observes every outbound message the engine produces. Each
// engine instance owns its listener set; nothing is shared between
// games.
type Listener func(protocol.OutboundMessage)

// GameEngine drives one room: it owns the single mutable Round and
// serializes all access to it through its Listen goroutine.
type GameEngine interface {
	ID() string
	CreatorID() string
	PlayState() PlayState
	Players() []Player
	AddPlayer(Player) error
	Receive(protocol.InboundMessage)
	Subscribe(Listener)
	Listen()
}

type gameEngine struct {
	id         string
	creatorID  string
	players    []Player
	round      *game.Round
	cfg        game.Config
	playState  PlayState
	registerCh chan Player
	inboundCh  chan protocol.InboundMessage
	onFinish   func(*game.Round)

	listenerMu sync.Mutex
	listeners  []Listener
}

// Opts configures a new engine
type Opts struct {
	GameID    string
	CreatorID string
	Config    game.Config
	Players   []Player
	PlayState PlayState

	// OnFinish runs inside the engine goroutine when the game ends,
	// with the final round state. Used for history recording.
	OnFinish func(*game.Round)
}

// New constructs a GameEngine for one room. Call Listen in its own
// goroutine to bring it to life.
func New(opts Opts) (*gameEngine, error) {
	if opts.GameID == "" {
		return nil, errors.New("game ID is required")
	}
	return &gameEngine{
		id:         opts.GameID,
		creatorID:  opts.CreatorID,
		cfg:        opts.Config,
		players:    opts.Players,
		playState:  opts.PlayState,
		registerCh: make(chan Player),
		inboundCh:  make(chan protocol.InboundMessage),
		onFinish:   opts.OnFinish,
	}, nil
}

func (ge *gameEngine) ID() string {
	return ge.id
}

func (ge *gameEngine) CreatorID() string {
	return ge.creatorID
}

func (ge *gameEngine) PlayState() PlayState {
	return ge.playState
}

func (ge *gameEngine) Players() []Player {
	return ge.players
}

// AddPlayer registers a player with the running engine
func (ge *gameEngine) AddPlayer(p Player) error {
	if ge == nil {
		return ErrNilEngine
	}
	ge.registerCh <- p
	return nil
}

// Receive hands an action to the engine goroutine
func (ge *gameEngine) Receive(msg protocol.InboundMessage) {
	ge.inboundCh <- msg
}

// Subscribe adds an observer for every message this engine emits.
// Safe to call while the engine is listening.
func (ge *gameEngine) Subscribe(l Listener) {
	ge.listenerMu.Lock()
	ge.listeners = append(ge.listeners, l)
	ge.listenerMu.Unlock()
}

// Listen is the engine's single-writer loop: registrations and actions
// are applied strictly one at a time, so the round needs no locking.
func (ge *gameEngine) Listen() {
	for {
		select {
		case joiner := <-ge.registerCh:
			ge.players = append(ge.players, joiner)
			for _, p := range ge.players {
				ge.send(protocol.OutboundMessage{
					PlayerID: p.ID(),
					Command:  protocol.NewJoiner,
					Joiner:   joiner.Name(),
				})
			}

		case msg := <-ge.inboundCh:
			ge.dispatch(msg)
		}
	}
}

// dispatch applies one action. The command set is closed: anything
// outside it is rejected with an error message to the sender.
func (ge *gameEngine) dispatch(msg protocol.InboundMessage) {
	player := ge.findPlayer(msg.PlayerID)
	if player == nil {
		return
	}

	if msg.Command == protocol.Start {
		if err := ge.start(msg.PlayerID); err != nil {
			ge.sendError(msg.PlayerID, err)
		} else {
			ge.broadcastState()
		}
		return
	}

	if ge.playState != InProgress {
		ge.sendError(msg.PlayerID, ErrNotStarted)
		return
	}

	err := ge.applyAction(msg)
	if err != nil {
		ge.sendError(msg.PlayerID, err)
		return
	}

	ge.broadcastState()

	if ge.round.Phase == game.PhaseGameOver {
		ge.playState = Finished
		if ge.onFinish != nil {
			ge.onFinish(ge.round)
		}
	}
}

// applyAction maps the closed command set onto round operations. Every
// action except AdvanceRound must come from the player whose turn it
// is.
func (ge *gameEngine) applyAction(msg protocol.InboundMessage) error {
	r := ge.round

	if msg.Command != protocol.AdvanceRound && r.SeatOf(msg.PlayerID) != r.Current {
		return ErrNotYourTurn
	}

	switch msg.Command {
	case protocol.DrawStock:
		return r.DrawFromStock()

	case protocol.DrawDiscard:
		return r.DrawFromDiscard()

	case protocol.PlayMelds:
		if msg.Play == nil {
			return ErrBadPayload
		}
		return r.PlayMelds(msg.Play.Groups)

	case protocol.ExtendMeld:
		if msg.Extend == nil {
			return ErrBadPayload
		}
		pos := game.AtEnd
		if msg.Extend.AtStart {
			pos = game.AtStart
		}
		return r.ExtendMeld(msg.Extend.MeldIndex, msg.Extend.CardIDs, pos)

	case protocol.SwapJoker:
		if msg.Swap == nil {
			return ErrBadPayload
		}
		return r.SwapJoker(msg.Swap.MeldIndex, msg.Swap.JokerSlot, msg.Swap.CardID)

	case protocol.SkipMeld:
		return r.SkipMeld()

	case protocol.Discard:
		if msg.Discard == nil {
			return ErrBadPayload
		}
		return r.Discard(msg.Discard.CardID)

	case protocol.AdvanceRound:
		return r.AdvanceRound()

	default:
		return errors.New("unrecognised command " + msg.Command.String())
	}
}

func (ge *gameEngine) start(playerID string) error {
	if ge.playState != Idle {
		return ErrAlreadyStarted
	}
	if playerID != ge.creatorID {
		return ErrNotCreator
	}
	if len(ge.players) < 2 {
		return ErrTooFewPlayers
	}
	if len(ge.players) > 4 {
		return ErrTooManyPlayers
	}

	info := []protocol.PlayerInfo{}
	for _, p := range ge.players {
		info = append(info, protocol.PlayerInfo{PlayerID: p.ID(), Name: p.Name()})
	}

	round, err := game.NewRound(info, ge.cfg)
	if err != nil {
		return err
	}

	ge.round = round
	ge.playState = InProgress
	return nil
}

// broadcastState sends each player their own sanitized view
func (ge *gameEngine) broadcastState() {
	if ge.round == nil {
		return
	}
	for _, p := range ge.players {
		snap := ge.round.Snapshot(ge.round.SeatOf(p.ID()))
		ge.send(protocol.OutboundMessage{
			PlayerID: p.ID(),
			Command:  protocol.State,
			Snapshot: &snap,
		})
	}
}

func (ge *gameEngine) sendError(playerID string, err error) {
	ge.send(protocol.OutboundMessage{
		PlayerID: playerID,
		Command:  protocol.Error,
		Error:    err.Error(),
	})
}

// send routes a message to its recipient and every listener
func (ge *gameEngine) send(msg protocol.OutboundMessage) {
	ge.listenerMu.Lock()
	listeners := ge.listeners
	ge.listenerMu.Unlock()

	for _, l := range listeners {
		l(msg)
	}
	if p := ge.findPlayer(msg.PlayerID); p != nil {
		p.Send(msg)
	}
}

func (ge *gameEngine) findPlayer(id string) Player {
	for _, p := range ge.players {
		if p.ID() == id {
			return p
		}
	}
	return nil
}
