package websocket

import "encoding/json"

// Command names accepted from clients.
const (
	CmdListGames  = "list_games"
	CmdCreateGame = "create_game"
	CmdJoinGame   = "join_game"
	CmdMove       = "move"
	CmdEndTurn    = "end_turn"
)

// Events pushed by the server.
const (
	EventGameStarted  = "game_started"
	EventPlayYourTurn = "play_your_turn"
	EventGameEnded    = "game_ended"
)

// Envelope is one inbound command frame. Seq is the optional acknowledgement
// handle: when non-zero the server answers with a Response carrying the same
// Seq, otherwise the command is fire-and-forget.
type Envelope struct {
	Cmd  string          `json:"cmd"`
	Seq  int64           `json:"seq,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Response answers an acknowledged command.
type Response struct {
	Type string      `json:"type"`
	Seq  int64       `json:"seq"`
	Data interface{} `json:"data,omitempty"`
}

// Event is a server-initiated push.
type Event struct {
	Type  string      `json:"type"`
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

// Command payloads. GameData travels as base64 inside JSON and is never
// inspected by the server.

type createGameRequest struct {
	PlayerName string `json:"player_name"`
	Difficulty int    `json:"difficulty"`
	GameData   []byte `json:"game_data"`
}

type joinGameRequest struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
}

type turnRequest struct {
	GameData []byte `json:"game_data"`
}

type turnPayload struct {
	GameData []byte `json:"game_data"`
}

// commandError reports a transport-level rejection (unknown command,
// malformed payload) distinct from the service's result codes.
type commandError struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func badRequest() commandError {
	return commandError{Error: "bad_request"}
}

func unknownCommand() commandError {
	return commandError{Error: "unknown_command"}
}
