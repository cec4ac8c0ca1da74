// client/client.go
package client

import (
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/wfunc/bingoclient/bus"
	"github.com/wfunc/bingoclient/events"
	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/models"
	"github.com/wfunc/bingoclient/monitor"
	"github.com/wfunc/bingoclient/network"
	"github.com/wfunc/bingoclient/session"
)

var (
	ErrNotConnected     = errors.New("not connected to a room")
	ErrSquareOutOfRange = errors.New("square index out of range")
	ErrEmptyMessage     = errors.New("empty chat message")
)

// connectionPollInterval bounds the cooperative wait in WaitForConnection.
const connectionPollInterval = 25 * time.Millisecond

// API is the slice of the REST surface the room client drives. *api.Client
// satisfies it; tests substitute a mock.
type API interface {
	GetBoard(roomID string) ([]models.SquareData, error)
	ChangeTeam(roomID string, team models.Team) error
	SelectSquare(roomID string, team models.Team, slot int, remove bool) error
	SendChat(roomID, text string) error
	NewCard(roomID, boardJSON, seed string, hideCard bool) error
	RevealCard(roomID string) error
}

// RoomClient owns one room session: it consumes the pushed event stream,
// classifies every event as self or other, keeps the session state current
// and fans typed notifications out on the bus. Commands may be issued from
// any goroutine; the session fields are written only by the inbound pump
// and by Disconnect.
type RoomClient struct {
	conn    network.Connection
	api     API
	bus     *bus.Bus
	session *session.Session
	metrics *monitor.Monitor

	disconnecting atomic.Bool
	done          chan struct{}
}

// New builds a room client over an already-open connection and starts its
// inbound event pump. The caller owns the client and must call Disconnect
// on every exit path.
func New(conn network.Connection, restAPI API, notifier *bus.Bus, isCreator bool, metrics *monitor.Monitor) *RoomClient {
	c := &RoomClient{
		conn:    conn,
		api:     restAPI,
		bus:     notifier,
		session: session.New(isCreator),
		metrics: metrics,
		done:    make(chan struct{}),
	}
	go c.pump()
	return c
}

// Bus returns the client's notification bus.
func (c *RoomClient) Bus() *bus.Bus {
	return c.bus
}

// Session exposes a read view of the session state.
func (c *RoomClient) Session() *session.Session {
	return c.session
}

// Done is closed when the inbound pump has exited. A pump that exits
// without Disconnect having been called signals a lost connection.
func (c *RoomClient) Done() <-chan struct{} {
	return c.done
}

// WaitForConnection polls until the self-connect event has been processed
// or the timeout elapses, and reports whether the session is connected.
// The wait is cooperative: the inbound pump keeps running while the caller
// sits here.
func (c *RoomClient) WaitForConnection(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		if c.session.Connected() {
			return true
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return false
		}
		if remaining > connectionPollInterval {
			remaining = connectionPollInterval
		}
		time.Sleep(remaining)
	}
}

// pump reads pushed frames until the connection closes. Unparseable frames
// are dropped and the loop continues; a transport error ends the pump.
func (c *RoomClient) pump() {
	defer close(c.done)
	for {
		msg, err := c.conn.ReadMessage()
		if err != nil {
			if errors.Is(err, network.ErrMalformedFrame) {
				logger.Log.Warnf("Dropping malformed frame: %v", err)
				c.metrics.IncParseErrors()
				continue
			}
			if !c.disconnecting.Load() {
				logger.Log.Errorf("Room connection lost: %v", err)
			}
			return
		}

		c.metrics.IncEventsReceived()

		event, ok := events.Parse(msg)
		if !ok {
			c.metrics.IncParseErrors()
			continue
		}
		c.handle(event)
	}
}

// handle applies one decoded event to the session and fans out the matching
// notification. Classification is always by the actor's UUID against the
// local player's UUID; while the local UUID is unset, every event is a peer
// event.
func (c *RoomClient) handle(event events.Event) {
	switch ev := event.(type) {
	case events.Connected:
		c.handleConnected(ev)
	case events.Disconnected:
		c.handleDisconnected(ev)
	case events.Chat:
		if c.isSelf(ev.Player) {
			c.bus.SelfChatted.Publish(bus.SelfChatted{Text: ev.Text, Timestamp: ev.Timestamp})
		} else {
			c.bus.OtherChatted.Publish(bus.OtherChatted{Player: ev.Player, Text: ev.Text, Timestamp: ev.Timestamp})
		}
	case events.ColorChange:
		if c.isSelf(ev.Player) {
			old := c.session.SetTeam(ev.Team)
			c.bus.SelfTeamChanged.Publish(bus.SelfTeamChanged{OldTeam: old, NewTeam: ev.Team})
		} else {
			c.bus.OtherTeamChanged.Publish(bus.OtherTeamChanged{
				Player:  ev.Player,
				OldTeam: ev.Player.Team,
				NewTeam: ev.Team,
			})
		}
	case events.GoalMarked:
		if c.isSelf(ev.Player) {
			c.bus.SelfMarked.Publish(bus.SelfMarked{Square: ev.Square})
		} else {
			c.bus.OtherMarked.Publish(bus.OtherMarked{Player: ev.Player, Square: ev.Square})
		}
	case events.GoalCleared:
		if c.isSelf(ev.Player) {
			c.bus.SelfCleared.Publish(bus.SelfCleared{Square: ev.Square})
		} else {
			c.bus.OtherCleared.Publish(bus.OtherCleared{Player: ev.Player, Square: ev.Square})
		}
	}
}

// handleConnected treats the first connect while the session is empty as
// the local player's own join; every later connect is a peer joining.
func (c *RoomClient) handleConnected(ev events.Connected) {
	if !c.session.Connected() {
		c.session.SetConnected(ev.RoomID, ev.Player)
		c.metrics.SetConnected(true)
		logger.Log.Infof("Connected to room %q as %q", ev.RoomID, ev.Player.Name)
		c.bus.SelfConnected.Publish(bus.SelfConnected{RoomID: ev.RoomID, Player: ev.Player})
		return
	}
	c.bus.OtherConnected.Publish(bus.OtherConnected{Player: ev.Player})
}

// handleDisconnected reports a peer leaving. Disconnect notices arriving
// before the self-connect are ignored. A self-disconnect never travels
// this path: the service only pushes peer lifecycle events, and local
// disconnects are driven by the Disconnect command.
func (c *RoomClient) handleDisconnected(ev events.Disconnected) {
	if !c.session.Connected() {
		return
	}
	c.bus.OtherDisconnected.Publish(bus.OtherDisconnected{Player: ev.Player})
}

func (c *RoomClient) isSelf(player models.PlayerData) bool {
	return c.session.Player().Is(player)
}

// GetBoard fetches the room's current board.
func (c *RoomClient) GetBoard() ([]models.SquareData, error) {
	roomID := c.session.RoomID()
	if roomID == "" {
		logger.Log.Error("Tried to fetch the board before being connected.")
		return nil, ErrNotConnected
	}
	defer c.observe(time.Now())
	return c.api.GetBoard(roomID)
}

// ChangeTeam switches the local player's team. The session is updated
// optimistically on success; the authoritative color event arrives later
// over the push stream and applies the same team again, which is harmless.
func (c *RoomClient) ChangeTeam(team models.Team) error {
	roomID := c.session.RoomID()
	if roomID == "" {
		logger.Log.Error("Tried to change team before being connected.")
		return ErrNotConnected
	}
	defer c.observe(time.Now())
	if err := c.api.ChangeTeam(roomID, team); err != nil {
		return err
	}
	c.session.SetTeam(team)
	return nil
}

// MarkSquare claims the square at the 1-based index for the local team.
func (c *RoomClient) MarkSquare(index int) error {
	return c.selectSquare(index, false)
}

// ClearSquare removes the local team's claim on the square.
func (c *RoomClient) ClearSquare(index int) error {
	return c.selectSquare(index, true)
}

func (c *RoomClient) selectSquare(index int, remove bool) error {
	if index <= 0 || index > models.BoardSize {
		logger.Log.Errorf("Square index %d is out of range.", index)
		return ErrSquareOutOfRange
	}
	roomID := c.session.RoomID()
	if roomID == "" {
		logger.Log.Error("Tried to select a square before being connected.")
		return ErrNotConnected
	}
	defer c.observe(time.Now())
	return c.api.SelectSquare(roomID, c.session.Player().Team, index, remove)
}

// SendMessage sends a chat message. There is no local echo: the chat
// notification arrives over the push stream like everyone else's.
func (c *RoomClient) SendMessage(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	roomID := c.session.RoomID()
	if roomID == "" {
		logger.Log.Error("Tried to send a message before being connected.")
		return ErrNotConnected
	}
	defer c.observe(time.Now())
	return c.api.SendChat(roomID, text)
}

// NewCard replaces the room's board. Only meaningful for the room creator,
// but the service enforces that; the client only gates on the connection.
func (c *RoomClient) NewCard(boardJSON, seed string, hideCard bool) error {
	roomID := c.session.RoomID()
	if roomID == "" {
		logger.Log.Error("Tried to generate a new card before being connected.")
		return ErrNotConnected
	}
	defer c.observe(time.Now())
	return c.api.NewCard(roomID, boardJSON, seed, hideCard)
}

// RevealCard reveals a hidden card for the local player.
func (c *RoomClient) RevealCard() error {
	roomID := c.session.RoomID()
	if roomID == "" {
		logger.Log.Error("Tried to reveal the card before being connected.")
		return ErrNotConnected
	}
	defer c.observe(time.Now())
	return c.api.RevealCard(roomID)
}

// Disconnect closes the connection, waits for the pump to exit, resets the
// session and emits the self-disconnected notification. It is idempotent;
// a second call returns success without touching the transport again. No
// notification fires after Disconnect returns.
func (c *RoomClient) Disconnect() error {
	if !c.disconnecting.CompareAndSwap(false, true) {
		return nil
	}

	if err := c.conn.Close(); err != nil {
		logger.Log.Warnf("Error closing the room connection: %v", err)
	}
	<-c.done

	c.session.Reset()
	c.metrics.SetConnected(false)
	c.bus.SelfDisconnected.Publish(bus.SelfDisconnected{})
	return nil
}

func (c *RoomClient) observe(start time.Time) {
	c.metrics.IncCommands()
	c.metrics.ObserveCommandLatency(time.Since(start))
}
