package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"sync"

	"github.com/SEPR-EEP/taxe-server/game/service"
)

var (
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique game code")
)

const (
	// codeLength of 8 over a 36-character alphabet gives ~2.8e12 codes, so
	// the generate-then-check loop practically never retries.
	codeLength      = 8
	codeAlphabet    = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxCodeAttempts = 64
)

// Registry owns the mapping from game code to Session. It is the only writer
// of that mapping; all mutation goes through its methods.
type Registry struct {
	games map[string]*service.Session
	mu    sync.RWMutex
}

// NewRegistry creates an empty game registry
func NewRegistry() *Registry {
	return &Registry{
		games: make(map[string]*service.Session),
	}
}

// NewCode generates a game code guaranteed unique against the current
// registry keys. The attempt bound only matters if the code space ever
// fills up, which a healthy server never approaches.
func (r *Registry) NewCode() (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := 0; i < maxCodeAttempts; i++ {
		code, err := randomCode()
		if err != nil {
			return "", fmt.Errorf("failed to generate game code: %w", err)
		}
		if _, taken := r.games[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// Register adds a session under its code, replacing nothing: codes come from
// NewCode and are unique by construction.
func (r *Registry) Register(s *service.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.games[s.Code] = s
}

// Get retrieves a session by code.
func (r *Registry) Get(code string) (*service.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.games[code]
	return s, ok
}

// ListJoinable returns every session still waiting for a second player.
// Order is unspecified.
func (r *Registry) ListJoinable() []*service.Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*service.Session, 0, len(r.games))
	for _, s := range r.games {
		if s.Joinable() {
			result = append(result, s)
		}
	}
	return result
}

// Remove deletes the session with the given code. Removing an unknown code
// is a no-op, so duplicate removal is safe.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, code)
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}

// randomCode draws codeLength characters from the alphabet using crypto/rand.
// The alphabet length doesn't divide 256 evenly; the resulting bias is far
// too small to matter for collision avoidance.
func randomCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, codeLength)
	for i, b := range buf {
		out[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(out), nil
}
