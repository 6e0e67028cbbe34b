package store

import (
	"testing"

	"github.com/CammyCodes/Remik/engine"
	utils "github.com/CammyCodes/Remik/internal"
	"github.com/CammyCodes/Remik/protocol"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	id   string
	name string
}

func (p fakePlayer) ID() string   { return p.id }
func (p fakePlayer) Name() string { return p.name }
func (p fakePlayer) Send(_ protocol.OutboundMessage) error {
	return nil
}

func newStoreWith(t *testing.T, engines ...engine.GameEngine) *InMemoryGameStore {
	t.Helper()
	str := NewInMemoryGameStore()
	for _, ge := range engines {
		require.NoError(t, str.AddInactiveGame(ge))
	}
	return str
}

func inactiveGame(t *testing.T, gameID string) engine.GameEngine {
	t.Helper()
	ge, err := engine.New(engine.Opts{GameID: gameID, CreatorID: "creator-id"})
	require.NoError(t, err)
	return ge
}

func activeGame(t *testing.T, gameID string) engine.GameEngine {
	t.Helper()
	ge, err := engine.New(engine.Opts{
		GameID:    gameID,
		CreatorID: "creator-id",
		PlayState: engine.InProgress,
	})
	require.NoError(t, err)
	return ge
}

func TestInMemoryGameStore(t *testing.T) {
	t.Run("prevents duplicate game IDs", func(t *testing.T) {
		str := NewInMemoryGameStore()
		ge := inactiveGame(t, "thisISAnID")

		utils.AssertNoError(t, str.AddInactiveGame(ge))
		utils.AssertErrored(t, str.AddInactiveGame(ge))
	})

	t.Run("can add pending players", func(t *testing.T) {
		gameID := "some-game-id"
		str := newStoreWith(t, inactiveGame(t, gameID))

		err := str.AddPendingPlayer(gameID, "player-1", "Hermione")
		utils.AssertNoError(t, err)

		info := str.FindPendingPlayer(gameID, "player-1")
		require.NotNil(t, info)
		utils.AssertEqual(t, info.Name, "Hermione")
	})

	t.Run("handles a non-existent game", func(t *testing.T) {
		str := NewInMemoryGameStore()
		utils.AssertEqual(t, str.FindGame("fake-id"), nil)
	})

	t.Run("can add a player to an inactive game", func(t *testing.T) {
		pendingID := "a-pending-game"
		ge := inactiveGame(t, pendingID)
		go ge.Listen()
		str := newStoreWith(t, ge)

		err := str.AddPlayerToGame(pendingID, fakePlayer{id: "horatio-1", name: "Horatio"})
		utils.AssertNoError(t, err)
	})

	t.Run("disallows joining an active game", func(t *testing.T) {
		gameID := "test-game-id"
		str := newStoreWith(t, activeGame(t, gameID))

		err := str.AddPendingPlayer(gameID, "player-1", "Neville")
		utils.AssertErrored(t, err)
	})

	t.Run("can retrieve an existing active game", func(t *testing.T) {
		gameID := "test-game-id"
		str := newStoreWith(t, activeGame(t, gameID))

		if str.FindActiveGame(gameID) == nil {
			t.Error("expected to find the active game")
		}
		utils.AssertEqual(t, str.FindInactiveGame(gameID), nil)
	})

	t.Run("can retrieve an existing pending game", func(t *testing.T) {
		pendingID := "a-pending-game"
		str := newStoreWith(t, inactiveGame(t, pendingID))

		if str.FindInactiveGame(pendingID) == nil {
			t.Error("expected to find the pending game")
		}
		utils.AssertEqual(t, str.FindActiveGame(pendingID), nil)
	})

	t.Run("handles non-existent active and pending games", func(t *testing.T) {
		str := NewInMemoryGameStore()
		utils.AssertEqual(t, str.FindActiveGame("fake-id"), nil)
		utils.AssertEqual(t, str.FindInactiveGame("fake-id"), nil)
	})
}
