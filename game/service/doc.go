// Package service provides the business logic layer for the TaxE game server.
//
// The service package implements:
//   - The lobby: listing, creating, and joining two-player games
//   - The turn relay: alternating opaque snapshot exchange between the
//     initiator and the joiner (the joiner always moves first)
//   - Connection state tracking in a side table keyed by endpoint ID
//   - Disconnect cleanup and opponent notification
//
// Core Interfaces:
//
// GameService is the main service interface consumed by every transport.
// GameRegistry abstracts session storage (see game/session).
// Endpoint is the push surface of one connected client; transports implement
// it so the service can notify players without knowing the wire format.
//
// Architecture:
//
// The service layer sits between the transports (WebSocket/REST/MCP) and the
// session registry. One internal mutex serializes every command, so a game's
// read-mutate-notify sequence is atomic with respect to other commands and no
// per-session locking is needed.
//
// Error Handling:
//
// Protocol violations never terminate a connection. Join, move, and end-turn
// return a Result carrying one of three error codes: not_found (unknown game
// code), name_collision (joiner reused the initiator's name), and forbidden
// (wrong role or out-of-turn action). State is never mutated before
// validation fails.
//
// Usage:
//
//	registry := session.NewRegistry()
//	svc := service.NewGameService(registry)
//
//	summary, err := svc.CreateGame(ctx, endpoint, "Jack", 2, snapshot)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	res := svc.JoinGame(ctx, other, summary.ID, "Chris")
//	if !res.OK {
//		log.Printf("join rejected: %s", res.Error)
//	}
package service
