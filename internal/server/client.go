package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"underkingdom-server/internal/domain"
	"underkingdom-server/internal/engine"
	"underkingdom-server/pkg/logger"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - подписчик на поток событий симуляции.
// Клиент не командует миром напрямую: он наблюдает за уведомлениями,
// которые ядро публикует в Broadcaster.
type Client struct {
	Game *engine.GameService
	Conn *websocket.Conn

	subscriberID string
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game:         game,
		Conn:         conn,
		subscriberID: domain.NewID(),
	}
}

// readPump дочитывает контрольные фреймы и ловит разрыв соединения
func (c *Client) readPump() {
	defer func() {
		c.Game.Hub.Unregister(c.subscriberID)
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Warn("failed to close websocket connection")
		}
		logger.Log.WithField("subscriber", c.subscriberID).Info("Наблюдатель отключился")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump гонит уведомления из персонального канала в сокет
func (c *Client) writePump() {
	events := c.Game.Hub.Register(c.subscriberID)
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case n, ok := <-events:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if !ok {
				// Канал закрыт при Unregister
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(n); err != nil {
				return
			}
		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
