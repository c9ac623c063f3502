package ids

import (
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Alphabet is the 32-symbol set used for room codes and player ids. It leaves
// out 0, 1, I and O so codes can be read aloud and typed without confusion.
const Alphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const (
	RoomCodeLen = 6
	PlayerIDLen = 10
	EventIDLen  = 10
)

// Generator hands out the identifiers the hub needs.
type Generator interface {
	RoomCode() string
	PlayerID() string
	EventID() string
}

// NanoID draws identifiers from Alphabet using crypto/rand.
type NanoID struct{}

func (NanoID) RoomCode() string { return gonanoid.MustGenerate(Alphabet, RoomCodeLen) }
func (NanoID) PlayerID() string { return gonanoid.MustGenerate(Alphabet, PlayerIDLen) }
func (NanoID) EventID() string  { return gonanoid.MustGenerate(Alphabet, EventIDLen) }

// ConnID returns a transport connection identifier. It never shares a
// namespace with player ids.
func ConnID() string { return uuid.NewString() }

// Valid reports whether s has length n and only uses Alphabet symbols.
func Valid(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlphabet(s[i]) {
			return false
		}
	}
	return true
}

func isAlphabet(c byte) bool {
	switch {
	case c >= '2' && c <= '9':
		return true
	case c >= 'A' && c <= 'Z':
		return c != 'I' && c != 'O'
	default:
		return false
	}
}
