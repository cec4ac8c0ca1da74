// client/join.go
package client

import (
	"errors"
	"time"

	"github.com/wfunc/bingoclient/api"
	"github.com/wfunc/bingoclient/bus"
	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/monitor"
	"github.com/wfunc/bingoclient/network"
)

// ErrConnectionTimeout is returned when the room never confirms the join
// before the wait deadline.
var ErrConnectionTimeout = errors.New("timed out waiting for the room connection")

const (
	defaultJoinTimeout = 60 * time.Second
	socketPingInterval = 30 * time.Second
)

// SessionAPI is the full REST surface needed to establish a session.
type SessionAPI interface {
	API
	JoinRoom(roomID, password, nickname string, isSpectator bool) (string, error)
	CreateRoom(params api.CreateRoomParams) (string, error)
}

// JoinOptions configures a room join.
type JoinOptions struct {
	RoomID    string
	Password  string
	Nickname  string
	Spectator bool
	SocketURL string
	Timeout   time.Duration

	isCreator bool
}

// dialSocket is swapped out in tests.
var dialSocket = func(socketURL, socketKey string) (network.Connection, error) {
	return network.Dial(socketURL, socketKey)
}

// Join joins an existing room, opens the duplex connection and waits for
// the self-connect event. On timeout the freshly opened connection is
// closed here, so an abandoned join never leaks a socket.
func Join(restAPI SessionAPI, opts JoinOptions, notifier *bus.Bus, metrics *monitor.Monitor) (*RoomClient, error) {
	socketKey, err := restAPI.JoinRoom(opts.RoomID, opts.Password, opts.Nickname, opts.Spectator)
	if err != nil {
		return nil, err
	}

	conn, err := dialSocket(opts.SocketURL, socketKey)
	if err != nil {
		logger.Log.Errorf("Failed to open the room connection: %v", err)
		return nil, err
	}
	conn.SetHeartbeat(socketPingInterval)

	c := New(conn, restAPI, notifier, opts.isCreator, metrics)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultJoinTimeout
	}

	logger.Log.Debug("Waiting for the room connection...")
	if !c.WaitForConnection(timeout) {
		logger.Log.Error("Could not connect before the timeout.")
		_ = c.Disconnect()
		return nil, ErrConnectionTimeout
	}

	logger.Log.Infof("Joined room %q", c.session.RoomID())
	return c, nil
}

// CreateOptions configures room creation.
type CreateOptions struct {
	Name       string
	Password   string
	Nickname   string
	Randomized bool
	BoardJSON  string
	Lockout    bool
	Seed       string
	Spectator  bool
	HideCard   bool
	SocketURL  string
	Timeout    time.Duration
}

// Create creates a room and joins it as its creator.
func Create(restAPI SessionAPI, opts CreateOptions, notifier *bus.Bus, metrics *monitor.Monitor) (*RoomClient, error) {
	roomID, err := restAPI.CreateRoom(api.CreateRoomParams{
		Name:       opts.Name,
		Password:   opts.Password,
		Nickname:   opts.Nickname,
		Randomized: opts.Randomized,
		BoardJSON:  opts.BoardJSON,
		Lockout:    opts.Lockout,
		Seed:       opts.Seed,
		Spectator:  opts.Spectator,
		HideCard:   opts.HideCard,
	})
	if err != nil {
		return nil, err
	}

	return Join(restAPI, JoinOptions{
		RoomID:    roomID,
		Password:  opts.Password,
		Nickname:  opts.Nickname,
		Spectator: opts.Spectator,
		SocketURL: opts.SocketURL,
		Timeout:   opts.Timeout,
		isCreator: true,
	}, notifier, metrics)
}
