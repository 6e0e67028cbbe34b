package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/CammyCodes/Remik/engine"
	"github.com/CammyCodes/Remik/protocol"
)

var (
	ErrUnknownGameID           = errors.New("unknown game ID")
	ErrUnknownPlayerID         = errors.New("unknown player ID")
	ErrFnUnknownInactiveGameID = func(gameID string) error {
		return fmt.Errorf("pending game with id %q does not exist", gameID)
	}
	ErrGameAlreadyStarted = errors.New("game has already started")
)

// GameStore tracks the live rooms on this server
type GameStore interface {
	FindGame(gameID string) engine.GameEngine
	FindActiveGame(gameID string) engine.GameEngine
	FindInactiveGame(gameID string) engine.GameEngine
	FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo
	AddInactiveGame(engine engine.GameEngine) error
	AddPendingPlayer(gameID, playerID, name string) error
	AddPlayerToGame(gameID string, player engine.Player) error
}

// InMemoryGameStore maps game id to game engine
type InMemoryGameStore struct {
	mu             sync.Mutex
	games          map[string]engine.GameEngine
	pendingPlayers map[string][]protocol.PlayerInfo
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		games:          map[string]engine.GameEngine{},
		pendingPlayers: map[string][]protocol.PlayerInfo{},
	}
}

func (s *InMemoryGameStore) FindGame(ID string) engine.GameEngine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.games[ID]
}

func (s *InMemoryGameStore) FindActiveGame(ID string) engine.GameEngine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByState(ID, true)
}

func (s *InMemoryGameStore) FindInactiveGame(ID string) engine.GameEngine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findByState(ID, false)
}

// findByState requires s.mu held
func (s *InMemoryGameStore) findByState(ID string, active bool) engine.GameEngine {
	game, ok := s.games[ID]
	if !ok {
		return nil
	}
	if (game.PlayState() != engine.Idle) != active {
		return nil
	}
	return game
}

func (s *InMemoryGameStore) FindPendingPlayer(gameID, playerID string) *protocol.PlayerInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	pendingPlayers, ok := s.pendingPlayers[gameID]
	if !ok {
		return nil
	}

	for i, info := range pendingPlayers {
		if info.PlayerID == playerID {
			return &pendingPlayers[i]
		}
	}

	return nil
}

func (s *InMemoryGameStore) AddInactiveGame(game engine.GameEngine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.games[game.ID()]; exists {
		return fmt.Errorf("game with id %s already exists", game.ID())
	}

	s.games[game.ID()] = game
	return nil
}

// AddPendingPlayer adds the information from which to construct a
// Player once they connect. The target game must exist and must not
// have started.
func (s *InMemoryGameStore) AddPendingPlayer(gameID, playerID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	game := s.findByState(gameID, false)
	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}

	s.pendingPlayers[gameID] = append(s.pendingPlayers[gameID], protocol.PlayerInfo{
		PlayerID: playerID,
		Name:     name,
	})

	return nil
}

func (s *InMemoryGameStore) AddPlayerToGame(gameID string, player engine.Player) error {
	s.mu.Lock()
	game := s.findByState(gameID, false)
	s.mu.Unlock()

	if game == nil {
		return ErrFnUnknownInactiveGameID(gameID)
	}

	// outside the lock: registration blocks until the engine's loop
	// picks the player up
	return game.AddPlayer(player)
}
