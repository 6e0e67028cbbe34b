package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/handlers"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	uuid "github.com/satori/go.uuid"

	"github.com/CammyCodes/Remik/engine"
	"github.com/CammyCodes/Remik/game"
	"github.com/CammyCodes/Remik/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NewGameReq struct {
	Name string `json:"name"`
}

type PendingGameRes struct {
	GameID   string   `json:"game_id"`
	PlayerID string   `json:"player_id"`
	Name     string   `json:"name"`
	Admin    bool     `json:"is_admin"`
	Players  []string `json:"players"`
}

type JoinGameReq struct {
	GameID string `json:"game_id"`
	Name   string `json:"name"`
}

type GetGameRes struct {
	Status string `json:"status"`
	GameID string `json:"game_id"`
}

// GameServer hosts the HTTP and websocket surface of the game
type GameServer struct {
	store   store.GameStore
	history store.HistoryStore
	cfg     game.Config
	log     zerolog.Logger
	http.Server
}

// NewID constructs a player ID
func NewID() string {
	return uuid.NewV4().String()
}

var gameIDRand = rand.New(rand.NewSource(time.Now().UnixNano()))

// NewGameID produces the six-letter code players share to join a game
func NewGameID() string {
	letters := []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	code := make([]byte, 6)
	for i := range code {
		code[i] = letters[gameIDRand.Intn(len(letters))]
	}
	return string(code)
}

func unknownGameIDMsg(unknownID string) string {
	return fmt.Sprintf("unknown game ID %q", unknownID)
}

// NewServer creates a GameServer. The history store may be nil, in
// which case finished rounds are not recorded and the leaderboard is
// always empty.
func NewServer(gs store.GameStore, history store.HistoryStore, cfg game.Config, log zerolog.Logger) *GameServer {
	s := &GameServer{
		store:   gs,
		history: history,
		cfg:     cfg,
		log:     log,
	}

	router := chi.NewRouter()
	router.Post("/new", s.HandleNewGame)
	router.Post("/join", s.HandleJoinGame)
	router.Get("/game/{gameID}", s.HandleFindGame)
	router.Get("/leaderboard", s.HandleLeaderboard)
	router.Get("/ws", s.HandleWS)

	s.Handler = handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)(router)

	return s
}

func (g *GameServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.Handler.ServeHTTP(w, r)
}

// HandleNewGame creates a game room and registers its creator as a
// pending player
func (g *GameServer) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var data NewGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}
	if data.Name == "" {
		http.Error(w, "missing player name", http.StatusBadRequest)
		return
	}

	gameID := NewGameID()
	playerID := NewID()

	ge, err := engine.New(engine.Opts{
		GameID:    gameID,
		CreatorID: playerID,
		Config:    g.cfg,
		OnFinish:  g.recordFinished(gameID),
	})
	if err != nil {
		g.log.Error().Err(err).Msg("could not create engine")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	go ge.Listen()

	if err := g.store.AddInactiveGame(ge); err != nil {
		g.log.Error().Err(err).Str("game_id", gameID).Msg("could not store game")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if err := g.store.AddPendingPlayer(gameID, playerID, data.Name); err != nil {
		g.log.Error().Err(err).Str("game_id", gameID).Msg("could not add creator")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.log.Info().Str("game_id", gameID).Str("creator", data.Name).Msg("new game")

	g.writeJSON(w, http.StatusCreated, PendingGameRes{
		GameID:   gameID,
		PlayerID: playerID,
		Name:     data.Name,
		Admin:    true,
	})
}

// HandleJoinGame adds a pending player to a game that has not started
func (g *GameServer) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var data JoinGameReq
	err := json.NewDecoder(r.Body).Decode(&data)
	defer r.Body.Close()
	if err != nil {
		g.writeParseError(err, w)
		return
	}

	if data.GameID == "" {
		http.Error(w, "missing game ID", http.StatusBadRequest)
		return
	}
	if data.Name == "" {
		http.Error(w, "missing player name", http.StatusBadRequest)
		return
	}

	ge := g.store.FindInactiveGame(data.GameID)
	if ge == nil {
		http.Error(w, unknownGameIDMsg(data.GameID), http.StatusBadRequest)
		return
	}

	playerID := NewID()
	if err := g.store.AddPendingPlayer(data.GameID, playerID, data.Name); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	playerNames := []string{}
	for _, p := range ge.Players() {
		playerNames = append(playerNames, p.Name())
	}

	g.writeJSON(w, http.StatusOK, PendingGameRes{
		GameID:   data.GameID,
		PlayerID: playerID,
		Name:     data.Name,
		Players:  playerNames,
	})
}

// HandleFindGame reports whether a game exists and whether it has
// started
func (g *GameServer) HandleFindGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	ge := g.store.FindGame(gameID)
	if ge == nil {
		http.Error(w, unknownGameIDMsg(gameID), http.StatusNotFound)
		return
	}

	g.writeJSON(w, http.StatusOK, GetGameRes{
		Status: ge.PlayState().String(),
		GameID: gameID,
	})
}

// HandleLeaderboard serves aggregate standings from recorded rounds
func (g *GameServer) HandleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if g.history == nil {
		g.writeJSON(w, http.StatusOK, []store.LeaderboardRow{})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := g.history.Leaderboard(r.Context(), limit)
	if err != nil {
		g.log.Error().Err(err).Msg("leaderboard query failed")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	g.writeJSON(w, http.StatusOK, rows)
}

// HandleWS upgrades a pending player's connection and attaches them to
// their game
func (g *GameServer) HandleWS(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	gameID := query.Get("game_id")
	if gameID == "" {
		http.Error(w, "missing game ID", http.StatusBadRequest)
		return
	}
	playerID := query.Get("player_id")
	if playerID == "" {
		http.Error(w, "missing player ID", http.StatusBadRequest)
		return
	}

	ge := g.store.FindGame(gameID)
	if ge == nil {
		http.Error(w, unknownGameIDMsg(gameID), http.StatusBadRequest)
		return
	}

	pending := g.store.FindPendingPlayer(gameID, playerID)
	if pending == nil {
		http.Error(w, "unknown player ID", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	player := NewWSPlayer(playerID, pending.Name, conn, ge, g.log)
	if err := ge.AddPlayer(player); err != nil {
		g.log.Error().Err(err).Str("game_id", gameID).Msg("could not add player")
		conn.Close()
		return
	}

	g.log.Info().Str("game_id", gameID).Str("player", pending.Name).Msg("player connected")
}

// recordFinished builds the engine's OnFinish hook for one game
func (g *GameServer) recordFinished(gameID string) func(*game.Round) {
	return func(r *game.Round) {
		if g.history == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.history.RecordRound(ctx, gameID, r); err != nil {
			g.log.Error().Err(err).Str("game_id", gameID).Msg("could not record round")
		}
	}
}

func (g *GameServer) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		g.log.Error().Err(err).Msg("could not write response")
	}
}

func (g *GameServer) writeParseError(err error, w http.ResponseWriter) {
	if err == io.EOF {
		http.Error(w, "missing body", http.StatusBadRequest)
		return
	}
	g.log.Error().Err(err).Msg("could not parse request")
	w.WriteHeader(http.StatusBadRequest)
}
