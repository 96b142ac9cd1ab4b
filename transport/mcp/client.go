package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/SEPR-EEP/taxe-server/game/config"
	"github.com/SEPR-EEP/taxe-server/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"TaxE Game Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`TaxE Game Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The server hosts two-player games: one player creates a game, a second
player joins it by code, and the two exchange opaque game snapshots in
alternating turns (the joiner moves first). Playing requires a persistent
WebSocket connection; this MCP surface is read-only lobby inspection.

AVAILABLE TOOLS:
- list_games: List games waiting for a second player
- get_game: Get one joinable game by its code
- list_presets: List named difficulty presets
- server_stats: Get the server's lobby census`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List all games currently waiting for a second player",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_game",
		Description: "Get details of one joinable game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"game_id": map[string]interface{}{
					"type":        "string",
					"description": "Game code to look up",
				},
			},
			Required: []string{"game_id"},
		},
	}, c.handleGetGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_presets",
		Description: "List the named difficulty presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListPresets)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "server_stats",
		Description: "Get the server's lobby census (active games, joinable games, bound players)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleServerStats)
}

// Tool handlers

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int                   `json:"count"`
		Games []service.GameSummary `json:"games"`
	}

	err := c.apiCall("GET", "/api/games", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No games are waiting for a second player."), nil
	}

	result := fmt.Sprintf("Joinable Games (%d):\n\n", response.Count)
	for _, g := range response.Games {
		result += fmt.Sprintf("- %s: %s (difficulty %d, created %s)\n",
			g.ID, g.Name, g.Difficulty, g.Created.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	gameID, _ := args["game_id"].(string)

	var game service.GameSummary
	err := c.apiCall("GET", fmt.Sprintf("/api/games/%s", gameID), nil, &game)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Game %s\nName: %s\nDifficulty: %d\nCreated: %s\n",
		game.ID, game.Name, game.Difficulty, game.Created.Format(time.RFC3339))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListPresets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var presets []config.Preset
	err := c.apiCall("GET", "/api/presets", nil, &presets)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Difficulty Presets:\n\n"
	for _, p := range presets {
		result += fmt.Sprintf("• %s (difficulty %d)\n  %s\n\n", p.Name, p.Difficulty, p.Description)
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleServerStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Status      string              `json:"status"`
		Connections int                 `json:"connections"`
		Stats       service.ServerStats `json:"stats"`
	}

	err := c.apiCall("GET", "/api/health", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Server: %s\nConnections: %d\nActive games: %d\nJoinable games: %d\nBound players: %d\n",
		response.Status, response.Connections,
		response.Stats.ActiveGames, response.Stats.JoinableGames, response.Stats.BoundPlayers)
	return mcp.NewToolResultText(result), nil
}

// apiCall performs one REST request against the API server
func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}
