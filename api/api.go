// api/api.go
package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"time"

	"github.com/wfunc/bingoclient/logger"
	"github.com/wfunc/bingoclient/models"
)

// Room service endpoints, relative to the base URL. Field names in the
// request bodies are fixed by the service's wire contract.
const (
	joinRoomPath     = "/api/join-room"
	boardPathFormat  = "/room/%s/board"
	changeColorPath  = "/api/color"
	selectSquarePath = "/api/select"
	sendChatPath     = "/api/chat"
	newCardPath      = "/api/new-card"
	revealCardPath   = "/api/revealed"
)

// roomCodeLength is the length of the room id tail on the create-room
// redirect URL.
const roomCodeLength = 22

// Client issues side-effecting REST calls against the room service. It is
// safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
}

// JoinRoom joins an existing room and returns the socket key used to open
// the duplex connection.
func (c *Client) JoinRoom(roomID, password, nickname string, isSpectator bool) (string, error) {
	logger.Log.Debugf("Joining the room %q...", roomID)

	body := map[string]any{
		"room":         roomID,
		"password":     password,
		"nickname":     nickname,
		"is_spectator": isSpectator,
	}

	data, err := c.do(http.MethodPost, joinRoomPath, body, fmt.Sprintf("Failed to join room %q", roomID))
	if err != nil {
		return "", err
	}

	var resp map[string]any
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode join response: %w", err)
	}

	key := models.String(resp, "socket_key")
	if key == "" {
		return "", fmt.Errorf("join response carried no socket key")
	}
	return key, nil
}

// CreateRoomParams carries the room creation form.
type CreateRoomParams struct {
	Name       string
	Password   string
	Nickname   string
	Randomized bool
	BoardJSON  string
	Lockout    bool
	Seed       string
	Spectator  bool
	HideCard   bool
}

// CreateRoom creates a room and returns its id, parsed from the tail of
// the redirect URL the service answers with.
func (c *Client) CreateRoom(params CreateRoomParams) (string, error) {
	logger.Log.Debug("Creating a new room...")

	// Magic numbers below are the service's form constants: game type 18 is
	// "Custom (Advanced)", variant 172 randomizes the board, lockout 2
	// enables lockout scoring.
	variant := 18
	if params.Randomized {
		variant = 172
	}
	lockout := 1
	if params.Lockout {
		lockout = 2
	}

	form := url.Values{
		"room_name":    {params.Name},
		"passphrase":   {params.Password},
		"nickname":     {params.Nickname},
		"game_type":    {"18"},
		"variant_type": {strconv.Itoa(variant)},
		"custom_json":  {params.BoardJSON},
		"lockout_mode": {strconv.Itoa(lockout)},
		"seed":         {params.Seed},
		"is_spectator": {strconv.FormatBool(params.Spectator)},
		"hide_card":    {strconv.FormatBool(params.HideCard)},
	}

	resp, err := c.http.PostForm(c.baseURL+"/", form)
	if err != nil {
		logger.Log.Errorf("Failed to create a new room: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		logRemoteError(resp.StatusCode, body, "Failed to create a new room")
		return "", fmt.Errorf("create room: status %d", resp.StatusCode)
	}

	// The service redirects to /room/<id>; the final URL tail is the id.
	final := resp.Request.URL.String()
	if len(final) < roomCodeLength {
		return "", fmt.Errorf("create room: unexpected redirect URL %q", final)
	}
	roomID := final[len(final)-roomCodeLength:]

	logger.Log.Debugf("Room %q created", roomID)
	return roomID, nil
}

// GetBoard fetches the current 5x5 board of the room.
func (c *Client) GetBoard(roomID string) ([]models.SquareData, error) {
	logger.Log.Debugf("Obtaining the board of room %q...", roomID)

	data, err := c.do(http.MethodGet, fmt.Sprintf(boardPathFormat, roomID), nil,
		fmt.Sprintf("Failed to obtain the board of room %q", roomID))
	if err != nil {
		return nil, err
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}

	squares := make([]models.SquareData, 0, len(raw))
	for _, obj := range raw {
		squares = append(squares, models.ParseSquare(obj))
	}
	return squares, nil
}

// ChangeTeam switches the local player's color in the room.
func (c *Client) ChangeTeam(roomID string, team models.Team) error {
	logger.Log.Debugf("Changing team to %q...", team.Name())

	body := map[string]any{
		"room":  roomID,
		"color": team.Name(),
	}
	_, err := c.do(http.MethodPut, changeColorPath, body,
		fmt.Sprintf("Failed to change team to %q", team.Name()))
	return err
}

// SelectSquare marks (remove=false) or clears (remove=true) a square for
// the given team.
func (c *Client) SelectSquare(roomID string, team models.Team, slot int, remove bool) error {
	body := map[string]any{
		"room":         roomID,
		"color":        team.Name(),
		"slot":         slot,
		"remove_color": remove,
	}
	_, err := c.do(http.MethodPut, selectSquarePath, body,
		fmt.Sprintf("Failed to select square %d", slot))
	return err
}

// SendChat sends a chat message to the room.
func (c *Client) SendChat(roomID, text string) error {
	body := map[string]any{
		"room": roomID,
		"text": text,
	}
	_, err := c.do(http.MethodPut, sendChatPath, body, "Failed to send the message")
	return err
}

// NewCard replaces the room's board with a freshly generated one.
func (c *Client) NewCard(roomID, boardJSON, seed string, hideCard bool) error {
	body := map[string]any{
		"room":        roomID,
		"custom_json": boardJSON,
		"seed":        seed,
		"hide_card":   hideCard,
	}
	_, err := c.do(http.MethodPut, newCardPath, body, "Failed to generate a new card")
	return err
}

// RevealCard marks the hidden card as revealed for the local player.
func (c *Client) RevealCard(roomID string) error {
	body := map[string]any{"room": roomID}
	_, err := c.do(http.MethodPut, revealCardPath, body, "Failed to reveal the card")
	return err
}

// do issues one JSON request and returns the response body. Non-success
// responses are logged with the status and the best-effort remote message,
// and returned as errors.
func (c *Client) do(method, path string, body any, errContext string) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.Log.Errorf("%s: %v", errContext, err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logRemoteError(resp.StatusCode, data, errContext)
		return nil, fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}
	return data, nil
}

// logRemoteError extracts the remote failure reason from a response body:
// the `error` field, else the first `__all__` entry's message, else
// "Unknown Error".
func logRemoteError(status int, body []byte, errContext string) {
	logger.Log.Errorf("[%d] %s: %q", status, errContext, remoteError(body))
}

func remoteError(body []byte) string {
	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err == nil {
		if msg := models.String(resp, "error"); msg != "" {
			return msg
		}
		if all, ok := resp["__all__"].([]any); ok && len(all) > 0 {
			if entry, ok := all[0].(map[string]any); ok {
				if msg := models.String(entry, "message"); msg != "" {
					return msg
				}
			}
		}
	}
	return "Unknown Error"
}
