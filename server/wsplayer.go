package server

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/CammyCodes/Remik/engine"
	"github.com/CammyCodes/Remik/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

// WSPlayer bridges one websocket connection and the game engine. The
// write pump serializes all writes to the connection; Send is safe to
// call from the engine goroutine.
type WSPlayer struct {
	id     string
	name   string
	conn   *websocket.Conn
	game   engine.GameEngine
	sendCh chan []byte
	log    zerolog.Logger
}

// NewWSPlayer constructs a player around an upgraded connection and
// starts its pumps
func NewWSPlayer(id, name string, conn *websocket.Conn, ge engine.GameEngine, log zerolog.Logger) *WSPlayer {
	p := &WSPlayer{
		id:     id,
		name:   name,
		conn:   conn,
		game:   ge,
		sendCh: make(chan []byte, 16),
		log:    log.With().Str("player", name).Logger(),
	}
	go p.writePump()
	go p.readPump()
	return p
}

func (p *WSPlayer) ID() string {
	return p.id
}

func (p *WSPlayer) Name() string {
	return p.name
}

func (p *WSPlayer) Send(msg protocol.OutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	p.sendCh <- data
	return nil
}

// readPump decodes inbound messages and forwards them to the engine.
// The player ID always comes from the authenticated connection, never
// from the wire.
func (p *WSPlayer) readPump() {
	defer p.conn.Close()

	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		p.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				p.log.Debug().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}

		var msg protocol.InboundMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			p.log.Debug().Err(err).Msg("bad inbound message")
			continue
		}
		msg.PlayerID = p.id

		p.game.Receive(msg)
	}
}

func (p *WSPlayer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-p.sendCh:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
