package types

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CreateRoomRequest accepts either a bare JSON string (the player name) or
// {"playerName": "..."}.
type CreateRoomRequest struct {
	PlayerName string
}

func (r *CreateRoomRequest) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		r.PlayerName = name
		return nil
	}
	var obj struct {
		PlayerName string `json:"playerName"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	r.PlayerName = obj.PlayerName
	return nil
}

// JoinRoomRequest accepts {"code", "playerName"} or a bare code string.
type JoinRoomRequest struct {
	Code       string
	PlayerName string
}

func (r *JoinRoomRequest) UnmarshalJSON(b []byte) error {
	var code string
	if err := json.Unmarshal(b, &code); err == nil {
		r.Code = code
		return nil
	}
	var obj struct {
		Code       string `json:"code"`
		PlayerName string `json:"playerName"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	r.Code, r.PlayerName = obj.Code, obj.PlayerName
	return nil
}

// RollRequest is decoded leniently. numDice may be a number or a numeric
// string; anything else reads as 0. Any JSON array counts as results: numeric
// entries are truncated to ints and other entries are skipped. A results value
// that is not an array leaves Results nil. Range handling is left to the roll
// acceptor.
type RollRequest struct {
	NumDice int
	Results []int
}

func (r *RollRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		NumDice json.RawMessage `json:"numDice"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	r.NumDice, _ = lenientInt(raw.NumDice)
	r.Results = lenientInts(raw.Results)
	return nil
}

// lenientInt reads a JSON number or numeric string, truncated toward zero and
// saturated to the int32 range.
func lenientInt(b json.RawMessage) (int, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return 0, false
	}
	var f float64
	if b[0] == '"' {
		var s string
		if json.Unmarshal(b, &s) != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = v
	} else if json.Unmarshal(b, &f) != nil {
		return 0, false
	}
	switch {
	case math.IsNaN(f):
		return 0, false
	case f > math.MaxInt32:
		return math.MaxInt32, true
	case f < math.MinInt32:
		return math.MinInt32, true
	}
	return int(f), true
}

func lenientInts(b json.RawMessage) []int {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}
	out := make([]int, 0, len(items))
	for _, item := range items {
		if v, ok := lenientInt(item); ok {
			out = append(out, v)
		}
	}
	return out
}
