// Package config provides the difficulty preset catalog for the TaxE game
// server.
//
// Presets are small JSON documents ({id, name, difficulty, description})
// loaded from a directory at startup. When the directory is absent or holds
// no valid presets, a built-in set (easy/standard/veteran) applies, so the
// server always has a catalog to serve.
//
// Presets are purely advisory: game creation takes a raw difficulty integer
// and never consults the catalog. The REST and MCP surfaces expose the list
// so clients can offer named choices.
package config
