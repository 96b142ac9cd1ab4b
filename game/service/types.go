package service

import (
	"strings"
	"time"
)

// Role identifies which side of a game a connection is playing.
type Role int

const (
	RoleNone Role = iota
	RoleInitiator
	RoleJoiner
)

// String returns a human-readable role name for logs.
func (r Role) String() string {
	switch r {
	case RoleInitiator:
		return "initiator"
	case RoleJoiner:
		return "joiner"
	default:
		return "none"
	}
}

// Endpoint is the push side of one connected client. The service notifies
// players through this interface and never touches the transport directly.
type Endpoint interface {
	// ID returns a stable identifier for the connection.
	ID() string

	// GameStarted tells the initiator their game has been joined.
	GameStarted()

	// PlayYourTurn hands the current game snapshot to whichever side must act.
	PlayYourTurn(data []byte)

	// GameEnded tells the surviving side their opponent disconnected.
	GameEnded()
}

// Session represents an active two-player game.
type Session struct {
	Code          string
	Name          string
	Difficulty    int
	CreatedAt     time.Time
	InitiatorName string
	JoinerName    string

	// TurnData is the opaque game snapshot, last writer wins. The server
	// stores and forwards it without inspecting its contents.
	TurnData []byte

	Initiator Endpoint
	Joiner    Endpoint
}

// Joinable reports whether the game is still waiting for a second player.
func (s *Session) Joinable() bool {
	return s.Joiner == nil
}

// Opponent returns the endpoint opposite to the given role, or nil when that
// side is not present.
func (s *Session) Opponent(r Role) Endpoint {
	switch r {
	case RoleInitiator:
		return s.Joiner
	case RoleJoiner:
		return s.Initiator
	}
	return nil
}

// Summary returns the lobby view of the game.
func (s *Session) Summary() GameSummary {
	return GameSummary{
		ID:         s.Code,
		Name:       s.Name,
		Created:    s.CreatedAt,
		Difficulty: s.Difficulty,
	}
}

// ConnState is the game binding of one connection. It lives in a side table
// keyed by endpoint ID, not on the transport object.
type ConnState struct {
	GameCode string
	Role     Role
}

// GameSummary is the lobby listing entry for a game.
type GameSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Created    time.Time `json:"created"`
	Difficulty int       `json:"difficulty"`
}

// ErrorCode classifies a rejected command.
type ErrorCode string

const (
	ErrorNotFound      ErrorCode = "not_found"
	ErrorNameCollision ErrorCode = "name_collision"
	ErrorForbidden     ErrorCode = "forbidden"
)

// Result is the synchronous outcome of a join/move/end-turn command.
type Result struct {
	OK    bool      `json:"ok"`
	Error ErrorCode `json:"error,omitempty"`
}

func okResult() Result {
	return Result{OK: true}
}

func failResult(code ErrorCode) Result {
	return Result{Error: code}
}

// ServerStats is a point-in-time census of the server, served on the health
// endpoint and the MCP surface.
type ServerStats struct {
	ActiveGames   int `json:"active_games"`
	JoinableGames int `json:"joinable_games"`
	BoundPlayers  int `json:"bound_players"`
}

// DisplayName derives the listed name of a game from its creator's name:
// "Jack" becomes "Jack's Game", "Chris" becomes "Chris' Game".
func DisplayName(player string) string {
	if strings.HasSuffix(player, "s") {
		return player + "' Game"
	}
	return player + "'s Game"
}
