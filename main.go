package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/wfunc/bingoclient/api"
	"github.com/wfunc/bingoclient/bus"
	"github.com/wfunc/bingoclient/client"
	"github.com/wfunc/bingoclient/config"
	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/models"
	"github.com/wfunc/bingoclient/monitor"
	"github.com/wfunc/bingoclient/persistence"
	"github.com/wfunc/bingoclient/rpc"
	"github.com/wfunc/bingoclient/services"
)

func main() {
	createRoom := flag.Bool("create", false, "create a new room instead of joining")
	roomName := flag.String("name", "", "room name when creating")
	boardFile := flag.String("board", "", "path to the board goals JSON when creating")
	flag.Parse()

	// Initialize logger
	logger.Init()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize monitoring
	var metrics *monitor.Monitor
	if cfg.Monitor.Enabled {
		metrics = monitor.NewMonitor(cfg.Monitor.Namespace)
		metrics.StartServer(cfg.Monitor.Address)
	}

	// Initialize the event archive
	var history *services.HistoryService
	if cfg.Archive.Enabled {
		store, err := openStore(cfg)
		if err != nil {
			logger.Log.Fatalf("Failed to open the archive store: %v", err)
		}
		defer store.Close()
		history = services.NewHistoryService(store)
		logger.Log.Info("Event archive enabled.")
	}

	notifier := bus.New()

	// Chat relay: print peer messages with team-colored attribution.
	notifier.OtherChatted.Subscribe(func(n bus.OtherChatted) {
		text := strings.TrimSpace(n.Text)
		if text == "" {
			return
		}
		name := n.Player.Name
		if name == "" {
			name = "???"
		}
		fmt.Printf("<%s %s> %s: %s\n", n.Player.Team.Name(), n.Player.Team.HexColor(), name, text)
	})
	notifier.OtherConnected.Subscribe(func(n bus.OtherConnected) {
		fmt.Printf("* %s joined the room\n", n.Player.Name)
	})
	notifier.OtherDisconnected.Subscribe(func(n bus.OtherDisconnected) {
		fmt.Printf("* %s left the room\n", n.Player.Name)
	})

	restAPI := api.NewClient(cfg.Service.BaseURL)

	c, err := establish(restAPI, cfg, notifier, metrics, *createRoom, *roomName, *boardFile)
	if err != nil {
		logger.Log.Fatalf("Failed to establish the room session: %v", err)
	}
	defer c.Disconnect()

	if history != nil {
		detach := history.Attach(notifier, c.Session().RoomID)
		defer detach()
	}

	// Local control surface
	if cfg.RPC.Enabled {
		control := rpc.NewRoomControl(c)
		if err := control.Register(); err != nil {
			logger.Log.Fatalf("Failed to register the control service: %v", err)
		}
		controlServer, err := rpc.NewServer(cfg.RPC.Address)
		if err != nil {
			logger.Log.Fatalf("Failed to create the control server: %v", err)
		}
		go controlServer.Start()
		defer controlServer.Stop()
	}

	runShell(c, history)
}

func establish(restAPI *api.Client, cfg *config.Config, notifier *bus.Bus, metrics *monitor.Monitor,
	create bool, roomName, boardFile string) (*client.RoomClient, error) {

	if create {
		boardJSON, err := os.ReadFile(boardFile)
		if err != nil {
			return nil, fmt.Errorf("read board file: %w", err)
		}
		return client.Create(restAPI, client.CreateOptions{
			Name:      roomName,
			Password:  cfg.Service.Password,
			Nickname:  cfg.Service.Nickname,
			BoardJSON: string(boardJSON),
			Spectator: cfg.Service.IsSpectator,
			SocketURL: cfg.Service.SocketURL,
		}, notifier, metrics)
	}

	return client.Join(restAPI, client.JoinOptions{
		RoomID:    cfg.Service.Room,
		Password:  cfg.Service.Password,
		Nickname:  cfg.Service.Nickname,
		Spectator: cfg.Service.IsSpectator,
		SocketURL: cfg.Service.SocketURL,
	}, notifier, metrics)
}

func openStore(cfg *config.Config) (persistence.Store, error) {
	pg := cfg.Database.Postgres
	if cfg.Archive.Driver == "pq" {
		return persistence.NewPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
	}
	return persistence.NewGormPostgreSQL(pg.Host, pg.Port, pg.User, pg.Password, pg.DBName)
}

// runShell drives the client from stdin until quit, EOF or interrupt.
// Commands: board, mark N, clear N, team <color>, say <text>,
// newcard <file>, reveal, stats, quit.
func runShell(c *client.RoomClient, history *services.HistoryService) {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	fmt.Println("Connected. Commands: board | mark N | clear N | team <color> | say <text> | newcard <file> | reveal | stats | quit")

	for {
		select {
		case <-interrupt:
			fmt.Println("Interrupted, disconnecting.")
			return
		case <-c.Done():
			fmt.Println("Room connection lost.")
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if quit := runCommand(c, history, line); quit {
				return
			}
		}
	}
}

func runCommand(c *client.RoomClient, history *services.HistoryService, line string) (quit bool) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")

	switch cmd {
	case "":
	case "quit", "exit":
		return true
	case "board":
		squares, err := c.GetBoard()
		if err != nil {
			fmt.Println("board:", err)
			break
		}
		printBoard(squares)
	case "mark", "clear":
		index, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			fmt.Println("usage:", cmd, "N")
			break
		}
		if cmd == "mark" {
			err = c.MarkSquare(index)
		} else {
			err = c.ClearSquare(index)
		}
		if err != nil {
			fmt.Printf("%s: %v\n", cmd, err)
		}
	case "team":
		team := models.ParseTeam(arg)
		if team == models.TeamBlank {
			fmt.Println("unknown team:", arg)
			break
		}
		if err := c.ChangeTeam(team); err != nil {
			fmt.Println("team:", err)
		}
	case "say":
		if err := c.SendMessage(arg); err != nil {
			fmt.Println("say:", err)
		}
	case "newcard":
		boardJSON, err := os.ReadFile(strings.TrimSpace(arg))
		if err != nil {
			fmt.Println("newcard:", err)
			break
		}
		if err := c.NewCard(string(boardJSON), "", false); err != nil {
			fmt.Println("newcard:", err)
		}
	case "reveal":
		if err := c.RevealCard(); err != nil {
			fmt.Println("reveal:", err)
		}
	case "stats":
		if history == nil {
			fmt.Println("archive disabled")
			break
		}
		stats, err := history.Stats(c.Session().RoomID())
		if err != nil {
			fmt.Println("stats:", err)
			break
		}
		for kind, total := range stats {
			fmt.Printf("%s: %d\n", kind, total)
		}
	default:
		fmt.Println("unknown command:", cmd)
	}
	return false
}

func printBoard(squares []models.SquareData) {
	for _, sq := range squares {
		if sq.Index == 0 {
			continue
		}
		teams := make([]string, 0, len(sq.Teams))
		for _, t := range sq.Teams {
			teams = append(teams, t.Name())
		}
		marker := " "
		if len(teams) > 0 {
			marker = "x"
		}
		fmt.Printf("%2d [%s] %-40s %s\n", sq.Index, marker, sq.Name, strings.Join(teams, " "))
	}
}
