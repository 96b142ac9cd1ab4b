// Command probe runs a scripted two-player game against a running TaxE
// server and reports whether the full exchange behaved as expected. It is a
// smoke test for deployments: create, list, join, the first three turns, and
// disconnect cleanup.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
	"github.com/urfave/cli/v3"
)

const eventWait = 5 * time.Second

// frame is any server-to-client message: a response or an event.
type frame struct {
	Type  string          `json:"type"`
	Seq   int64           `json:"seq"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// player is one scripted websocket participant. All of its traffic is
// sequential: a request reads frames until its response arrives, parking any
// events seen on the way for a later waitEvent.
type player struct {
	name   string
	conn   *websocket.Conn
	seq    int64
	parked []frame
}

func dialPlayer(name, addr string) (*player, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return nil, fmt.Errorf("%s failed to connect: %w", name, err)
	}
	return &player{name: name, conn: conn}, nil
}

func (p *player) close() {
	p.conn.Close()
}

// request sends one acknowledged command and returns the response payload.
func (p *player) request(cmd string, data interface{}) (json.RawMessage, error) {
	p.seq++
	env := map[string]interface{}{"cmd": cmd, "seq": p.seq}
	if data != nil {
		env["data"] = data
	}
	if err := p.conn.WriteJSON(env); err != nil {
		return nil, fmt.Errorf("%s: write %s: %w", p.name, cmd, err)
	}

	p.conn.SetReadDeadline(time.Now().Add(eventWait))
	for {
		var f frame
		if err := p.conn.ReadJSON(&f); err != nil {
			return nil, fmt.Errorf("%s: awaiting %s response: %w", p.name, cmd, err)
		}
		if f.Type == "event" {
			p.parked = append(p.parked, f)
			continue
		}
		if f.Seq == p.seq {
			return f.Data, nil
		}
	}
}

// waitEvent returns the payload of the next push with the given name,
// checking parked frames first.
func (p *player) waitEvent(name string) (json.RawMessage, error) {
	for i, f := range p.parked {
		if f.Event == name {
			p.parked = append(p.parked[:i], p.parked[i+1:]...)
			return f.Data, nil
		}
	}

	p.conn.SetReadDeadline(time.Now().Add(eventWait))
	for {
		var f frame
		if err := p.conn.ReadJSON(&f); err != nil {
			return nil, fmt.Errorf("%s: awaiting %s event: %w", p.name, name, err)
		}
		if f.Type == "event" && f.Event == name {
			return f.Data, nil
		}
		p.parked = append(p.parked, f)
	}
}

// expectOK decodes a command result and fails unless it was accepted.
func expectOK(who, cmd string, data json.RawMessage) error {
	var res struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &res); err != nil {
		return fmt.Errorf("%s: undecodable %s result: %w", who, cmd, err)
	}
	if !res.OK {
		return fmt.Errorf("%s: %s rejected: %s", who, cmd, res.Error)
	}
	return nil
}

// expectTurnData decodes a play_your_turn payload and compares the snapshot.
func expectTurnData(who string, data json.RawMessage, want []byte) error {
	var payload struct {
		GameData []byte `json:"game_data"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("%s: undecodable turn payload: %w", who, err)
	}
	if !bytes.Equal(payload.GameData, want) {
		return fmt.Errorf("%s: turn payload mismatch: got %q, want %q", who, payload.GameData, want)
	}
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "probe",
		Usage: "run a scripted two-player game against a running TaxE server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Value: "ws://localhost:8080/ws",
				Usage: "WebSocket address of the server",
			},
			&cli.StringFlag{
				Name:  "initiator",
				Value: "Alice",
				Usage: "name of the player creating the game",
			},
			&cli.StringFlag{
				Name:  "joiner",
				Value: "Bob",
				Usage: "name of the player joining the game",
			},
			&cli.IntFlag{
				Name:  "difficulty",
				Value: 2,
				Usage: "difficulty to create the game with",
			},
		},
		Action: runProbe,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runProbe(ctx context.Context, cmd *cli.Command) error {
	addr := cmd.String("addr")
	initiatorName := cmd.String("initiator")
	joinerName := cmd.String("joiner")
	difficulty := int(cmd.Int("difficulty"))

	d0 := []byte("snapshot-0")
	d1 := []byte("snapshot-1")
	d2 := []byte("snapshot-2")

	initiator, err := dialPlayer(initiatorName, addr)
	if err != nil {
		return err
	}
	defer initiator.close()

	joiner, err := dialPlayer(joinerName, addr)
	if err != nil {
		return err
	}
	defer joiner.close()

	// Create
	raw, err := initiator.request("create_game", map[string]interface{}{
		"player_name": initiatorName,
		"difficulty":  difficulty,
		"game_data":   d0,
	})
	if err != nil {
		return err
	}
	var game struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &game); err != nil || game.ID == "" {
		return fmt.Errorf("create_game returned no game: %s", raw)
	}
	fmt.Printf("created game %s (%s)\n", game.ID, game.Name)

	// The new game must be listed as joinable
	raw, err = joiner.request("list_games", nil)
	if err != nil {
		return err
	}
	if !containsGame(raw, game.ID) {
		return fmt.Errorf("game %s missing from lobby listing", game.ID)
	}

	// Join: initiator learns the game started, joiner gets the first turn
	raw, err = joiner.request("join_game", map[string]interface{}{
		"game_id":     game.ID,
		"player_name": joinerName,
	})
	if err != nil {
		return err
	}
	if err := expectOK(joinerName, "join_game", raw); err != nil {
		return err
	}
	if _, err := initiator.waitEvent("game_started"); err != nil {
		return err
	}
	turn, err := joiner.waitEvent("play_your_turn")
	if err != nil {
		return err
	}
	if err := expectTurnData(joinerName, turn, d0); err != nil {
		return err
	}
	fmt.Printf("%s joined, first turn delivered\n", joinerName)

	// Joiner moves, initiator replies
	raw, err = joiner.request("move", map[string]interface{}{"game_data": d1})
	if err != nil {
		return err
	}
	if err := expectOK(joinerName, "move", raw); err != nil {
		return err
	}
	turn, err = initiator.waitEvent("play_your_turn")
	if err != nil {
		return err
	}
	if err := expectTurnData(initiatorName, turn, d1); err != nil {
		return err
	}

	raw, err = initiator.request("end_turn", map[string]interface{}{"game_data": d2})
	if err != nil {
		return err
	}
	if err := expectOK(initiatorName, "end_turn", raw); err != nil {
		return err
	}
	turn, err = joiner.waitEvent("play_your_turn")
	if err != nil {
		return err
	}
	if err := expectTurnData(joinerName, turn, d2); err != nil {
		return err
	}
	fmt.Println("turn relay verified in both directions")

	// Disconnect: joiner must be told and the game must leave the lobby
	initiator.close()
	if _, err := joiner.waitEvent("game_ended"); err != nil {
		return err
	}

	deadline := time.Now().Add(eventWait)
	for {
		raw, err = joiner.request("list_games", nil)
		if err != nil {
			return err
		}
		if !containsGame(raw, game.ID) {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("game %s still listed after disconnect", game.ID)
		}
		time.Sleep(50 * time.Millisecond)
	}

	fmt.Println("PASS")
	return nil
}

// containsGame reports whether a list_games payload mentions the given ID.
func containsGame(raw json.RawMessage, id string) bool {
	var games []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &games); err != nil {
		return false
	}
	for _, g := range games {
		if g.ID == id {
			return true
		}
	}
	return false
}
