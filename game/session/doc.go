// Package session provides game registration for the TaxE game server.
//
// The session package implements:
//   - Thread-safe storage of active games keyed by code
//   - Collision-checked game code generation
//   - Joinable-game listing for the lobby
//   - Idempotent removal on game teardown
//
// Game Codes:
//
// Games are addressed by 8-character lowercase alphanumeric codes drawn from
// cryptographic randomness. NewCode generates and checks against current
// registry keys, so codes are unique for the lifetime of the process.
//
// Concurrency:
//
// The registry carries its own lock guarding the code→session map. Session
// field access is serialized by the service layer; the registry only
// guarantees consistent map reads.
//
// Usage:
//
//	registry := session.NewRegistry()
//
//	code, err := registry.NewCode()
//	if err != nil {
//		log.Fatal(err)
//	}
//	registry.Register(&service.Session{Code: code /* ... */})
//
//	open := registry.ListJoinable()
package session
