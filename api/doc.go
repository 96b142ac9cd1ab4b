// Package api provides the HTTP surface of the TaxE game server.
//
// Endpoints:
//
// Lobby (read-only):
//   - GET /api/games        - List joinable games
//   - GET /api/games/{id}   - Get one joinable game
//
// Presets:
//   - GET /api/presets      - List difficulty presets
//   - GET /api/presets/{id} - Get one preset
//
// Operations:
//   - GET /api/health       - Server status and lobby census
//   - GET /ws               - WebSocket upgrade (the command channel)
//
// Game mutation (create/join/move/end-turn) is deliberately absent from the
// REST surface: those commands bind to a connection identity, which only the
// WebSocket channel has.
//
// Request/Response Format:
//
// All endpoints return JSON. Errors carry an HTTP status and a body of the
// form {"error": "message"}.
package api
