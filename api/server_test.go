package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/SEPR-EEP/taxe-server/game/config"
	"github.com/SEPR-EEP/taxe-server/game/service"
	"github.com/SEPR-EEP/taxe-server/game/session"
)

// testEndpoint satisfies service.Endpoint for seeding games through the
// service; the REST tests never read its pushes.
type testEndpoint struct{ id string }

func (e *testEndpoint) ID() string          { return e.id }
func (e *testEndpoint) GameStarted()        {}
func (e *testEndpoint) PlayYourTurn([]byte) {}
func (e *testEndpoint) GameEnded()          {}

func newTestServer(t *testing.T) (*Server, service.GameService) {
	t.Helper()

	presets, err := config.NewManager(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("Failed to create preset manager: %v", err)
	}

	svc := service.NewGameService(session.NewRegistry())
	return NewServer(svc, presets, nil), svc
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	return w
}

func TestHandleListGames(t *testing.T) {
	server, svc := newTestServer(t)

	t.Run("empty lobby", func(t *testing.T) {
		w := doGet(t, server, "/api/games")
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var resp struct {
			Count int                   `json:"count"`
			Games []service.GameSummary `json:"games"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Undecodable response: %v", err)
		}
		if resp.Count != 0 || len(resp.Games) != 0 {
			t.Errorf("Expected empty lobby, got %+v", resp)
		}
	})

	t.Run("lists joinable games", func(t *testing.T) {
		summary, err := svc.CreateGame(context.Background(), &testEndpoint{id: "c1"}, "Jack", 2, nil)
		if err != nil {
			t.Fatalf("CreateGame failed: %v", err)
		}

		w := doGet(t, server, "/api/games")
		var resp struct {
			Count int                   `json:"count"`
			Games []service.GameSummary `json:"games"`
		}
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Undecodable response: %v", err)
		}
		if resp.Count != 1 || resp.Games[0].ID != summary.ID {
			t.Errorf("Expected the new game, got %+v", resp)
		}
		if resp.Games[0].Name != "Jack's Game" {
			t.Errorf("Expected derived name, got %q", resp.Games[0].Name)
		}
	})
}

func TestHandleGetGame(t *testing.T) {
	server, svc := newTestServer(t)

	summary, err := svc.CreateGame(context.Background(), &testEndpoint{id: "c1"}, "Chris", 1, nil)
	if err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	t.Run("found", func(t *testing.T) {
		w := doGet(t, server, "/api/games/"+summary.ID)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var game service.GameSummary
		if err := json.NewDecoder(w.Body).Decode(&game); err != nil {
			t.Fatalf("Undecodable response: %v", err)
		}
		if game.Name != "Chris' Game" {
			t.Errorf("Expected \"Chris' Game\", got %q", game.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		w := doGet(t, server, "/api/games/missing1")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestHandlePresets(t *testing.T) {
	server, _ := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		w := doGet(t, server, "/api/presets")
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var presets []config.Preset
		if err := json.NewDecoder(w.Body).Decode(&presets); err != nil {
			t.Fatalf("Undecodable response: %v", err)
		}
		if len(presets) != 3 {
			t.Errorf("Expected 3 default presets, got %d", len(presets))
		}
	})

	t.Run("get", func(t *testing.T) {
		w := doGet(t, server, "/api/presets/standard")
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}

		var preset config.Preset
		if err := json.NewDecoder(w.Body).Decode(&preset); err != nil {
			t.Fatalf("Undecodable response: %v", err)
		}
		if preset.Difficulty != 2 {
			t.Errorf("Expected difficulty 2, got %d", preset.Difficulty)
		}
	})

	t.Run("get missing", func(t *testing.T) {
		w := doGet(t, server, "/api/presets/nope")
		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestHandleHealth(t *testing.T) {
	server, svc := newTestServer(t)

	if _, err := svc.CreateGame(context.Background(), &testEndpoint{id: "c1"}, "Jack", 1, nil); err != nil {
		t.Fatalf("CreateGame failed: %v", err)
	}

	w := doGet(t, server, "/api/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Status      string              `json:"status"`
		Connections int                 `json:"connections"`
		Stats       service.ServerStats `json:"stats"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Undecodable response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy, got %q", resp.Status)
	}
	if resp.Stats.ActiveGames != 1 || resp.Stats.JoinableGames != 1 {
		t.Errorf("Unexpected stats: %+v", resp.Stats)
	}
}

func TestHandleWebSocketWithoutHub(t *testing.T) {
	server, _ := newTestServer(t)

	w := doGet(t, server, "/ws")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without a hub, got %d", w.Code)
	}
}
