package engine

import (
	"testing"
	"time"

	"github.com/CammyCodes/Remik/game"
	utils "github.com/CammyCodes/Remik/internal"
	"github.com/CammyCodes/Remik/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPlayer collects everything the engine sends it
type testPlayer struct {
	id   string
	name string
	msgs chan protocol.OutboundMessage
}

func newTestPlayer(id, name string) *testPlayer {
	return &testPlayer{id: id, name: name, msgs: make(chan protocol.OutboundMessage, 100)}
}

func (p *testPlayer) ID() string   { return p.id }
func (p *testPlayer) Name() string { return p.name }
func (p *testPlayer) Send(msg protocol.OutboundMessage) error {
	p.msgs <- msg
	return nil
}

func (p *testPlayer) next(t *testing.T) protocol.OutboundMessage {
	t.Helper()
	select {
	case msg := <-p.msgs:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a message")
		return protocol.OutboundMessage{}
	}
}

func (p *testPlayer) nextOfKind(t *testing.T, cmd protocol.Cmd) protocol.OutboundMessage {
	t.Helper()
	for i := 0; i < 20; i++ {
		msg := p.next(t)
		if msg.Command == cmd {
			return msg
		}
	}
	t.Fatalf("no %s message arrived", cmd)
	return protocol.OutboundMessage{}
}

func startedEngine(t *testing.T) (*gameEngine, *testPlayer, *testPlayer) {
	t.Helper()

	ge, err := New(Opts{GameID: "ABCDEF", CreatorID: "p1", Config: game.DefaultConfig()})
	require.NoError(t, err)
	go ge.Listen()

	p1 := newTestPlayer("p1", "Ania")
	p2 := newTestPlayer("p2", "Bartek")
	require.NoError(t, ge.AddPlayer(p1))
	require.NoError(t, ge.AddPlayer(p2))
	p1.nextOfKind(t, protocol.NewJoiner)
	p2.nextOfKind(t, protocol.NewJoiner)

	ge.Receive(protocol.InboundMessage{PlayerID: "p1", Command: protocol.Start})
	return ge, p1, p2
}

func TestEngineJoin(t *testing.T) {
	t.Run("joiners are announced to everyone", func(t *testing.T) {
		ge, err := New(Opts{GameID: "ABCDEF", CreatorID: "p1"})
		require.NoError(t, err)
		go ge.Listen()

		p1 := newTestPlayer("p1", "Ania")
		require.NoError(t, ge.AddPlayer(p1))

		msg := p1.nextOfKind(t, protocol.NewJoiner)
		utils.AssertEqual(t, msg.Joiner, "Ania")
	})

	t.Run("only the creator can start", func(t *testing.T) {
		ge, err := New(Opts{GameID: "ABCDEF", CreatorID: "p1"})
		require.NoError(t, err)
		go ge.Listen()

		p1 := newTestPlayer("p1", "Ania")
		p2 := newTestPlayer("p2", "Bartek")
		require.NoError(t, ge.AddPlayer(p1))
		require.NoError(t, ge.AddPlayer(p2))
		p1.nextOfKind(t, protocol.NewJoiner)

		ge.Receive(protocol.InboundMessage{PlayerID: "p2", Command: protocol.Start})
		msg := p2.nextOfKind(t, protocol.Error)
		utils.AssertEqual(t, msg.Error, ErrNotCreator.Error())
	})
}

func TestEngineGameplay(t *testing.T) {
	t.Run("starting deals sanitized snapshots", func(t *testing.T) {
		_, p1, p2 := startedEngine(t)

		s1 := p1.nextOfKind(t, protocol.State)
		s2 := p2.nextOfKind(t, protocol.State)

		require.NotNil(t, s1.Snapshot)
		require.NotNil(t, s2.Snapshot)

		// each player sees their own hand and only counts for others
		total := len(s1.Snapshot.Hand) + len(s2.Snapshot.Hand)
		utils.AssertEqual(t, total, 14+13)
		require.Len(t, s1.Snapshot.Opponents, 1)
		utils.AssertEqual(t, s1.Snapshot.Opponents[0].HandCount, len(s2.Snapshot.Hand))
		utils.AssertEqual(t, s1.Snapshot.Phase, "discard")
	})

	t.Run("acting out of turn is rejected", func(t *testing.T) {
		ge, p1, p2 := startedEngine(t)

		s1 := p1.nextOfKind(t, protocol.State)
		waiting := p2
		if s1.Snapshot.CurrentPlayer == "p2" {
			waiting = p1
		}

		ge.Receive(protocol.InboundMessage{PlayerID: waiting.id, Command: protocol.DrawStock})
		msg := waiting.nextOfKind(t, protocol.Error)
		utils.AssertEqual(t, msg.Error, ErrNotYourTurn.Error())
	})

	t.Run("a full first turn reaches the next player", func(t *testing.T) {
		ge, p1, p2 := startedEngine(t)

		s1 := p1.nextOfKind(t, protocol.State)
		s2 := p2.nextOfKind(t, protocol.State)

		starter, other, view := p1, p2, s1
		if s1.Snapshot.CurrentPlayer == "p2" {
			starter, other, view = p2, p1, s2
		}

		// the starter begins the round by discarding their extra card
		ge.Receive(protocol.InboundMessage{
			PlayerID: starter.id,
			Command:  protocol.Discard,
			Discard:  &protocol.DiscardPayload{CardID: view.Snapshot.Hand[0].ID},
		})
		after := starter.nextOfKind(t, protocol.State)
		utils.AssertEqual(t, after.Snapshot.CurrentPlayer, other.id)
		utils.AssertEqual(t, after.Snapshot.Phase, "draw")
		utils.AssertEqual(t, after.Snapshot.DiscardCount, 1)
		other.nextOfKind(t, protocol.State)

		ge.Receive(protocol.InboundMessage{PlayerID: other.id, Command: protocol.DrawStock})
		next := other.nextOfKind(t, protocol.State)
		utils.AssertEqual(t, next.Snapshot.Phase, "meld")
		utils.AssertEqual(t, len(next.Snapshot.Hand), 14)
	})

	t.Run("listeners observe engine traffic", func(t *testing.T) {
		ge, err := New(Opts{GameID: "ABCDEF", CreatorID: "p1"})
		require.NoError(t, err)

		seen := make(chan protocol.OutboundMessage, 10)
		ge.Subscribe(func(msg protocol.OutboundMessage) { seen <- msg })
		go ge.Listen()

		p1 := newTestPlayer("p1", "Ania")
		require.NoError(t, ge.AddPlayer(p1))

		select {
		case msg := <-seen:
			assert.Equal(t, protocol.NewJoiner, msg.Command)
		case <-time.After(time.Second):
			t.Fatal("listener saw nothing")
		}
	})

	t.Run("subscribing to a live engine", func(t *testing.T) {
		ge, err := New(Opts{GameID: "ABCDEF", CreatorID: "p1"})
		require.NoError(t, err)
		go ge.Listen()

		p1 := newTestPlayer("p1", "Ania")
		require.NoError(t, ge.AddPlayer(p1))
		p1.nextOfKind(t, protocol.NewJoiner)

		seen := make(chan protocol.OutboundMessage, 10)
		ge.Subscribe(func(msg protocol.OutboundMessage) { seen <- msg })

		p2 := newTestPlayer("p2", "Bartek")
		require.NoError(t, ge.AddPlayer(p2))

		select {
		case msg := <-seen:
			assert.Equal(t, protocol.NewJoiner, msg.Command)
		case <-time.After(time.Second):
			t.Fatal("late subscriber saw nothing")
		}
	})
}
