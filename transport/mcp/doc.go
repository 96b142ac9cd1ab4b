// Package mcp provides a Model Context Protocol surface for the TaxE game
// server.
//
// The package exposes read-only lobby inspection tools for AI agents:
//   - list_games: games waiting for a second player
//   - get_game: one joinable game by code
//   - list_presets: named difficulty presets
//   - server_stats: lobby census
//
// Design:
//
// The MCP server is a thin client proxying every tool call to the REST API,
// so both surfaces always agree. Playing a game requires a persistent
// WebSocket connection and is out of scope for MCP.
//
// Transport Modes:
//
//   - Stdio: server.ServeStdio(client.GetMCPServer()) for local MCP clients
//   - HTTP: the entrypoint mounts HandleMessage at POST /mcp
package mcp
