// rpc/rpc.go
package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/bingoclient/client"
	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/models"
)

// Server manages the local control listener. It lets external tooling
// drive a running room client over net/rpc.
type Server struct {
	listener net.Listener
	address  string
}

// NewServer creates a new control server.
func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins serving control requests.
func (s *Server) Start() {
	logger.Log.Infof("Control server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("Control server listener closed.")
				return
			}
			logger.Log.Errorf("Control server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the control listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping control server.")
		s.listener.Close()
	}
}

// RoomControl exposes the room client's commands over net/rpc. All methods
// follow the net/rpc signature rules.
type RoomControl struct {
	client *client.RoomClient
}

func NewRoomControl(c *client.RoomClient) *RoomControl {
	return &RoomControl{client: c}
}

// Register registers the service with the rpc package.
func (rc *RoomControl) Register() error {
	return rpc.Register(rc)
}

type SquareArgs struct {
	Index int
}

type ChatArgs struct {
	Text string
}

type TeamArgs struct {
	Team string
}

type Empty struct{}

type StatusReply struct {
	Connected bool
	RoomID    string
	Player    models.PlayerData
}

type BoardReply struct {
	Squares []models.SquareData
}

func (rc *RoomControl) Mark(args *SquareArgs, reply *Empty) error {
	return rc.client.MarkSquare(args.Index)
}

func (rc *RoomControl) Clear(args *SquareArgs, reply *Empty) error {
	return rc.client.ClearSquare(args.Index)
}

func (rc *RoomControl) Chat(args *ChatArgs, reply *Empty) error {
	return rc.client.SendMessage(args.Text)
}

func (rc *RoomControl) ChangeTeam(args *TeamArgs, reply *Empty) error {
	return rc.client.ChangeTeam(models.ParseTeam(args.Team))
}

func (rc *RoomControl) Board(args *Empty, reply *BoardReply) error {
	squares, err := rc.client.GetBoard()
	if err != nil {
		return err
	}
	reply.Squares = squares
	return nil
}

func (rc *RoomControl) Status(args *Empty, reply *StatusReply) error {
	sess := rc.client.Session()
	reply.Connected = sess.Connected()
	reply.RoomID = sess.RoomID()
	reply.Player = sess.Player()
	return nil
}
