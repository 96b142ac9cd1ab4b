package session

import (
	"strings"
	"testing"
	"time"

	"github.com/SEPR-EEP/taxe-server/game/service"
)

func newSession(code string) *service.Session {
	return &service.Session{
		Code:          code,
		Name:          "Jack's Game",
		Difficulty:    1,
		CreatedAt:     time.Now(),
		InitiatorName: "Jack",
	}
}

func TestRegistry_NewCode(t *testing.T) {
	registry := NewRegistry()

	t.Run("format", func(t *testing.T) {
		code, err := registry.NewCode()
		if err != nil {
			t.Fatalf("NewCode failed: %v", err)
		}
		if len(code) != codeLength {
			t.Errorf("Expected %d-character code, got %q", codeLength, code)
		}
		for _, c := range code {
			if !strings.ContainsRune(codeAlphabet, c) {
				t.Errorf("Code %q contains character outside the alphabet", code)
			}
		}
	})

	t.Run("codes are pairwise distinct", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 200; i++ {
			code, err := registry.NewCode()
			if err != nil {
				t.Fatalf("NewCode failed: %v", err)
			}
			if seen[code] {
				t.Fatalf("Duplicate code %q", code)
			}
			seen[code] = true
			registry.Register(newSession(code))
		}
	})

	t.Run("never returns a registered code", func(t *testing.T) {
		r := NewRegistry()
		r.Register(newSession("taken123"))

		for i := 0; i < 100; i++ {
			code, err := r.NewCode()
			if err != nil {
				t.Fatalf("NewCode failed: %v", err)
			}
			if code == "taken123" {
				t.Fatal("NewCode returned an already registered code")
			}
		}
	})
}

func TestRegistry_RegisterGet(t *testing.T) {
	registry := NewRegistry()

	sess := newSession("abcd1234")
	registry.Register(sess)

	got, ok := registry.Get("abcd1234")
	if !ok {
		t.Fatal("Expected to find the registered session")
	}
	if got != sess {
		t.Error("Get returned a different session")
	}

	if _, ok := registry.Get("missing1"); ok {
		t.Error("Expected unknown code to miss")
	}

	if registry.Len() != 1 {
		t.Errorf("Expected Len 1, got %d", registry.Len())
	}
}

func TestRegistry_ListJoinable(t *testing.T) {
	registry := NewRegistry()

	open := newSession("open0001")
	registry.Register(open)

	full := newSession("full0001")
	full.JoinerName = "Chris"
	full.Joiner = stubEndpoint{}
	registry.Register(full)

	joinable := registry.ListJoinable()
	if len(joinable) != 1 {
		t.Fatalf("Expected 1 joinable session, got %d", len(joinable))
	}
	if joinable[0].Code != "open0001" {
		t.Errorf("Expected open0001 to be joinable, got %q", joinable[0].Code)
	}
}

func TestRegistry_Remove(t *testing.T) {
	registry := NewRegistry()
	registry.Register(newSession("abcd1234"))

	registry.Remove("abcd1234")
	if _, ok := registry.Get("abcd1234"); ok {
		t.Error("Expected session to be removed")
	}

	// Removing again, or removing an unknown code, is a no-op
	registry.Remove("abcd1234")
	registry.Remove("missing1")

	if registry.Len() != 0 {
		t.Errorf("Expected empty registry, got %d", registry.Len())
	}
}

// stubEndpoint fills the joiner slot in tests that only care about presence.
type stubEndpoint struct{}

func (stubEndpoint) ID() string          { return "stub" }
func (stubEndpoint) GameStarted()        {}
func (stubEndpoint) PlayYourTurn([]byte) {}
func (stubEndpoint) GameEnded()          {}
