// Package websocket pushes catalog-change notifications to open pages so
// they can re-fetch after an admin mutation or the ingestion bootstrap.
// File: websocket/hub.go
package websocket

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"go-bet-tips/logger"
)

// Configuration constants.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Connection represents a single WebSocket connection for one open page.
type Connection struct {
	conn *websocket.Conn
	send chan []byte
}

var (
	connectionsMu sync.Mutex
	connections   = make(map[*Connection]bool)
)

// broadcast carries encoded events to every registered connection.
var broadcast = make(chan []byte, 64)

// upgrader upgrades HTTP requests to WebSocket connections.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// same-origin single-page site, nothing stricter needed here
		return true
	},
}

// ServeWs upgrades the request and starts the read and write pumps.
func ServeWs(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error.Printf("[ServeWs] WebSocket upgrade error: %v", err)
		return
	}

	c := &Connection{
		conn: wsConn,
		send: make(chan []byte, 16),
	}
	registerConnection(c)

	go c.readPump()
	go c.writePump()
}

func registerConnection(c *Connection) {
	connectionsMu.Lock()
	connections[c] = true
	count := len(connections)
	connectionsMu.Unlock()
	logger.Info.Printf("[registerConnection] live connections: %d", count)
	PublishLiveConnections(count)
}

func unregisterConnection(c *Connection) {
	connectionsMu.Lock()
	if _, ok := connections[c]; ok {
		delete(connections, c)
		close(c.send)
	}
	count := len(connections)
	connectionsMu.Unlock()
	PublishLiveConnections(count)
}

// readPump drains inbound frames. Clients never send anything meaningful;
// the pump exists to notice disconnects and answer pings.
func (c *Connection) readPump() {
	defer func() {
		unregisterConnection(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// writePump forwards queued events and keeps the connection alive with pings.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// HandleMessages listens on the broadcast channel and fans events out to
// every connection, dropping for clients that cannot keep up.
func HandleMessages() {
	for msg := range broadcast {
		connectionsMu.Lock()
		for c := range connections {
			select {
			case c.send <- msg:
			default:
				logger.Warn.Printf("Dropping broadcast message for connection %v", c.conn.RemoteAddr())
			}
		}
		connectionsMu.Unlock()
	}
}

// BroadcastCatalogChanged tells open pages that the catalog (or the site
// configuration) changed and a re-fetch is in order.
func BroadcastCatalogChanged(reason string) {
	msg, err := json.Marshal(map[string]string{
		"action": "catalogChanged",
		"reason": reason,
	})
	if err != nil {
		logger.Error.Printf("BroadcastCatalogChanged: marshal error: %v", err)
		return
	}
	select {
	case broadcast <- msg:
	default:
		logger.Warn.Println("BroadcastCatalogChanged: broadcast channel full, dropping event")
	}
}
