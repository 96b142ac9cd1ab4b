package service

import (
	"context"
	"errors"
)

// ErrAlreadyBound is returned when a connection that is already part of a
// game tries to create or join another one.
var ErrAlreadyBound = errors.New("connection is already bound to a game")

// GameService defines the lobby and turn-relay operations
type GameService interface {
	// Lobby
	ListGames(ctx context.Context) []GameSummary
	CreateGame(ctx context.Context, ep Endpoint, playerName string, difficulty int, gameData []byte) (*GameSummary, error)
	JoinGame(ctx context.Context, ep Endpoint, gameID, playerName string) Result

	// Turn relay
	Move(ctx context.Context, ep Endpoint, gameData []byte) Result
	EndTurn(ctx context.Context, ep Endpoint, gameData []byte) Result

	// Lifecycle
	Disconnect(ctx context.Context, ep Endpoint)

	// Introspection
	Stats(ctx context.Context) ServerStats
}

// GameRegistry defines session storage operations
type GameRegistry interface {
	NewCode() (string, error)
	Register(s *Session)
	Get(code string) (*Session, bool)
	ListJoinable() []*Session
	Remove(code string)
	Len() int
}
