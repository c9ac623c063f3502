package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomRequest_Forms(t *testing.T) {
	var r CreateRoomRequest
	require.NoError(t, json.Unmarshal([]byte(`"Nyx"`), &r))
	assert.Equal(t, "Nyx", r.PlayerName)

	r = CreateRoomRequest{}
	require.NoError(t, json.Unmarshal([]byte(`{"playerName":"Rook"}`), &r))
	assert.Equal(t, "Rook", r.PlayerName)

	assert.Error(t, json.Unmarshal([]byte(`42`), &r))
}

func TestJoinRoomRequest_Forms(t *testing.T) {
	var r JoinRoomRequest
	require.NoError(t, json.Unmarshal([]byte(`{"code":"k7x2qf","playerName":"Rook"}`), &r))
	assert.Equal(t, JoinRoomRequest{Code: "k7x2qf", PlayerName: "Rook"}, r)

	r = JoinRoomRequest{}
	require.NoError(t, json.Unmarshal([]byte(`"K7X2QF"`), &r))
	assert.Equal(t, JoinRoomRequest{Code: "K7X2QF"}, r)
}

func TestRollRequest_Lenient(t *testing.T) {
	cases := []struct {
		name        string
		in          string
		wantNum     int
		wantResults []int
	}{
		{"well formed", `{"numDice":3,"results":[2,5,6]}`, 3, []int{2, 5, 6}},
		{"null results", `{"numDice":0,"results":null}`, 0, nil},
		{"object results", `{"numDice":99,"results":{"a":1}}`, 99, nil},
		{"string numDice", `{"numDice":"lots","results":[1]}`, 0, []int{1}},
		{"numeric string numDice", `{"numDice":" 3 ","results":[]}`, 3, []int{}},
		{"fractional numDice", `{"numDice":2.7,"results":[]}`, 2, []int{}},
		{"float results", `{"numDice":3,"results":[6.0,2]}`, 3, []int{6, 2}},
		{"fractional results", `{"numDice":1,"results":[1.5]}`, 1, []int{1}},
		{"huge results", `{"numDice":1,"results":[1e20]}`, 1, []int{math.MaxInt32}},
		{"mixed results", `{"numDice":2,"results":[1,"a",null,"4",{}]}`, 2, []int{1, 4}},
		{"empty after skipping", `{"numDice":1,"results":["a"]}`, 1, []int{}},
		{"missing fields", `{}`, 0, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var r RollRequest
			require.NoError(t, json.Unmarshal([]byte(tc.in), &r))
			assert.Equal(t, tc.wantNum, r.NumDice)
			assert.Equal(t, tc.wantResults, r.Results)
		})
	}
}

func TestServerMessage_OmitsEmpty(t *testing.T) {
	b, err := json.Marshal(ServerMessage{Type: TypeError, Error: "bad json"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","error":"bad json"}`, string(b))

	b, err = json.Marshal(ServerMessage{Type: TypeRoll, Data: Roll{ID: "E", Results: []int{}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"roll","data":{"id":"E","playerId":"","playerName":"","numDice":0,"results":[],"at":0}}`, string(b))
}
