// Package websocket provides the WebSocket transport for the TaxE game server.
//
// The websocket package implements:
//   - Persistent bidirectional connections carrying named commands
//   - Optional per-command acknowledgements
//   - Server-initiated push notifications on the same channel
//   - Connection lifecycle management and disconnect propagation
//
// Architecture:
//
// A central Hub tracks every connection and dispatches inbound commands to
// the game service. Each client connection runs a dedicated read/write
// goroutine pair handling decoding, keepalive, and cleanup. The Client type
// implements service.Endpoint, so pushes from the service land directly on
// the right connection.
//
// Message Protocol:
//
// Frames are JSON-encoded:
//   - Command:  {"cmd": "join_game", "seq": 3, "data": {"game_id": "k2j9x0qa", "player_name": "Chris"}}
//   - Response: {"type": "response", "seq": 3, "data": {"ok": true}}
//   - Push:     {"type": "event", "event": "play_your_turn", "data": {"game_data": "..."}}
//
// A command without a seq gets no response. Game data is an opaque base64
// payload the server forwards untouched.
//
// Connection Lifecycle:
//
// 1. Client connects at /ws; it starts in the lobby, bound to no game
// 2. Connection registered with hub under a fresh UUID
// 3. Client issues lobby and turn commands, receives responses and pushes
// 4. Read failure or close triggers disconnect: the opponent is notified,
//    returned to the lobby, and the game is removed
//
// Concurrency:
//
// Command dispatch happens on each connection's read goroutine; the service
// serializes commands internally. Pushes go through buffered per-connection
// send channels and never block a command in flight.
package websocket
