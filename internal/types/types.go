package types

import "encoding/json"

// Client -> Server event types.
const (
	TypeCreateRoom = "create_room"
	TypeJoinRoom   = "join_room"
	TypeRoll       = "roll"
)

// Server -> Client event types.
const (
	TypeAck          = "ack"
	TypeRoomJoined   = "room_joined"
	TypePlayerJoined = "player_joined"
	TypePlayerLeft   = "player_left"
	TypeError        = "error"
)

// ClientMessage is the envelope of every inbound frame. Ref is chosen by the
// client and echoed on the matching ack.
type ClientMessage struct {
	Type string          `json:"type"`
	Ref  int64           `json:"ref,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

type ServerMessage struct {
	Type  string `json:"type"`
	Ref   int64  `json:"ref,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// Ack answers create_room and join_room. Either Error is set or the rest is.
type Ack struct {
	Code       string `json:"code,omitempty"`
	ID         string `json:"id,omitempty"`
	PlayerName string `json:"playerName,omitempty"`
	Error      string `json:"error,omitempty"`
}

// RosterEntry is a roster line sent to one specific recipient.
type RosterEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	You  bool   `json:"you"`
}

// Member is an untagged roster line.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomJoined struct {
	Code    string        `json:"code"`
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Players []RosterEntry `json:"players"`
}

// Membership is the payload of player_joined and player_left.
type Membership struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Total   int      `json:"total"`
	Players []Member `json:"players"`
}

type Roll struct {
	ID         string `json:"id"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	NumDice    int    `json:"numDice"`
	Results    []int  `json:"results"`
	At         int64  `json:"at"` // unix millis
}
