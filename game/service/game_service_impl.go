package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	registry GameRegistry

	// mu serializes every command, including disconnects delivered by the
	// transport. A game's read-mutate-notify sequence is therefore atomic
	// with respect to other commands.
	mu    sync.Mutex
	conns map[string]*ConnState
}

// NewGameService creates a new game service instance
func NewGameService(registry GameRegistry) GameService {
	return &gameServiceImpl{
		registry: registry,
		conns:    make(map[string]*ConnState),
	}
}

// state returns the connection state for an endpoint, creating an empty
// lobby state on first contact. Callers must hold s.mu.
func (s *gameServiceImpl) state(ep Endpoint) *ConnState {
	st, ok := s.conns[ep.ID()]
	if !ok {
		st = &ConnState{}
		s.conns[ep.ID()] = st
	}
	return st
}

// ListGames returns the lobby view of every game waiting for a second player.
// It takes the service mutex like every other command: joinability reads
// Session.Joiner, which JoinGame writes under that mutex.
func (s *gameServiceImpl) ListGames(ctx context.Context) []GameSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	joinable := s.registry.ListJoinable()

	games := make([]GameSummary, 0, len(joinable))
	for _, sess := range joinable {
		games = append(games, sess.Summary())
	}
	return games
}

// CreateGame registers a new game and binds the caller as its initiator.
func (s *gameServiceImpl) CreateGame(ctx context.Context, ep Endpoint, playerName string, difficulty int, gameData []byte) (*GameSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(ep)
	if st.Role != RoleNone {
		return nil, ErrAlreadyBound
	}

	code, err := s.registry.NewCode()
	if err != nil {
		return nil, fmt.Errorf("failed to allocate game code: %w", err)
	}

	sess := &Session{
		Code:          code,
		Name:          DisplayName(playerName),
		Difficulty:    difficulty,
		CreatedAt:     time.Now(),
		InitiatorName: playerName,
		TurnData:      gameData,
		Initiator:     ep,
	}
	s.registry.Register(sess)

	st.GameCode = code
	st.Role = RoleInitiator

	log.Printf("Game %s created by %q (difficulty %d)", code, playerName, difficulty)

	summary := sess.Summary()
	return &summary, nil
}

// JoinGame binds the caller as the joiner of an open game and kicks off the
// turn relay: the initiator learns the game started, the joiner moves first.
func (s *gameServiceImpl) JoinGame(ctx context.Context, ep Endpoint, gameID, playerName string) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(ep)
	if st.Role != RoleNone {
		return failResult(ErrorForbidden)
	}

	sess, ok := s.registry.Get(gameID)
	if !ok {
		return failResult(ErrorNotFound)
	}
	if playerName == sess.InitiatorName {
		return failResult(ErrorNameCollision)
	}
	if !sess.Joinable() {
		return failResult(ErrorForbidden)
	}

	sess.JoinerName = playerName
	sess.Joiner = ep

	st.GameCode = sess.Code
	st.Role = RoleJoiner

	log.Printf("Game %s joined by %q", sess.Code, playerName)

	sess.Initiator.GameStarted()
	ep.PlayYourTurn(sess.TurnData)

	return okResult()
}

// Move accepts the joiner's snapshot and hands the turn to the initiator.
func (s *gameServiceImpl) Move(ctx context.Context, ep Endpoint, gameData []byte) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(ep)
	if st.Role != RoleJoiner || st.GameCode == "" {
		return failResult(ErrorForbidden)
	}

	sess, ok := s.registry.Get(st.GameCode)
	if !ok {
		return failResult(ErrorNotFound)
	}

	sess.TurnData = gameData
	sess.Initiator.PlayYourTurn(gameData)

	return okResult()
}

// EndTurn accepts the initiator's snapshot and hands the turn to the joiner.
func (s *gameServiceImpl) EndTurn(ctx context.Context, ep Endpoint, gameData []byte) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state(ep)
	if st.Role != RoleInitiator || st.GameCode == "" {
		return failResult(ErrorForbidden)
	}

	sess, ok := s.registry.Get(st.GameCode)
	if !ok {
		return failResult(ErrorNotFound)
	}
	if sess.Joiner == nil {
		// Nobody has joined yet, there is no turn to end.
		return failResult(ErrorForbidden)
	}

	sess.TurnData = gameData
	sess.Joiner.PlayYourTurn(gameData)

	return okResult()
}

// Disconnect tears down whatever game the endpoint was part of. The opponent,
// if any, is notified once and returned to the lobby. Safe to call for
// connections that never joined a game.
func (s *gameServiceImpl) Disconnect(ctx context.Context, ep Endpoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.conns[ep.ID()]
	if ok {
		delete(s.conns, ep.ID())
	}
	if !ok || st.Role == RoleNone || st.GameCode == "" {
		return
	}

	sess, found := s.registry.Get(st.GameCode)
	if !found {
		return
	}

	if opp := sess.Opponent(st.Role); opp != nil {
		opp.GameEnded()
		if oppState, ok := s.conns[opp.ID()]; ok {
			oppState.GameCode = ""
			oppState.Role = RoleNone
		}
	}

	s.registry.Remove(sess.Code)

	log.Printf("Game %s ended (%s disconnected)", sess.Code, st.Role)
}

// Stats reports the current lobby census.
func (s *gameServiceImpl) Stats(ctx context.Context) ServerStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	bound := 0
	for _, st := range s.conns {
		if st.Role != RoleNone {
			bound++
		}
	}

	return ServerStats{
		ActiveGames:   s.registry.Len(),
		JoinableGames: len(s.registry.ListJoinable()),
		BoundPlayers:  bound,
	}
}
