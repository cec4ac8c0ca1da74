// network/connection.go
package network

import (
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ErrMalformedFrame is returned by ReadMessage for a frame that is not a
// JSON object. The connection stays usable; callers should drop the frame
// and keep reading.
var ErrMalformedFrame = errors.New("malformed frame")

// Connection is the persistent duplex channel to the room service. The
// service pushes room events as JSON objects; outbound frames are JSON too.
type Connection interface {
	ReadMessage() (map[string]any, error)
	WriteJSON(v any) error
	Close() error
	RemoteAddr() net.Addr
	SetHeartbeat(interval time.Duration)
}

type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn, done: make(chan struct{})}
}

// Dial opens the duplex connection to the broadcast endpoint and performs
// the join handshake: the first outbound frame carries the socket key
// obtained from the join response.
func Dial(socketURL, socketKey string) (*WSConnection, error) {
	conn, _, err := websocket.DefaultDialer.Dial(socketURL, nil)
	if err != nil {
		return nil, err
	}

	ws := NewWSConnection(conn)
	if err := ws.WriteJSON(map[string]string{"socket_key": socketKey}); err != nil {
		ws.Close()
		return nil, err
	}
	return ws, nil
}

// ReadMessage blocks for the next pushed frame and decodes it into a
// string-keyed object. A transport failure is terminal; a frame that does
// not decode yields ErrMalformedFrame and the connection stays open.
func (c *WSConnection) ReadMessage() (map[string]any, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}

	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, ErrMalformedFrame
	}
	return msg, nil
}

func (c *WSConnection) WriteJSON(v any) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	return c.conn.WriteJSON(v)
}

// SetHeartbeat starts a ping ticker that keeps the connection alive
// through idle periods. It stops when the connection closes.
func (c *WSConnection) SetHeartbeat(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sendMutex.Lock()
				err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(interval))
				c.sendMutex.Unlock()
				if err != nil {
					return
				}
			case <-c.done:
				return
			}
		}
	}()
}

// Close shuts the connection down. Closing an already-closed connection
// returns the result of the first close.
func (c *WSConnection) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
		c.sendMutex.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client disconnecting"),
			time.Now().Add(time.Second))
		c.sendMutex.Unlock()
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
