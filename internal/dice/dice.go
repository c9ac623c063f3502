// Package dice decides what roll a player is credited with.
//
// The default policy trusts the client: the tray is casual and the 3D
// animation on the client already produced the faces. A deployment that wants
// server-side randomness swaps in ServerRoller without touching the hub.
package dice

import (
	"fmt"
	"math/rand/v2"
)

const (
	MinDice = 1
	MaxDice = 12
)

// Outcome is the accepted shape of a roll.
type Outcome struct {
	NumDice int
	Results []int
}

// Acceptor turns a reported roll into the canonical outcome that gets
// broadcast. reported is nil when the client sent no usable results.
type Acceptor interface {
	Accept(numDice int, reported []int) Outcome
}

// Clamp bounds n to [MinDice, MaxDice].
func Clamp(n int) int {
	return min(MaxDice, max(MinDice, n))
}

// Trusting keeps client results as reported. It does not check the count
// against numDice or the face values.
type Trusting struct{}

func (Trusting) Accept(numDice int, reported []int) Outcome {
	results := reported
	if results == nil {
		results = []int{}
	}
	return Outcome{NumDice: Clamp(numDice), Results: results}
}

// ServerRoller ignores reported faces and rolls numDice dice itself.
type ServerRoller struct {
	Sides int
	Rand  *rand.Rand
}

// NewServerRoller returns a roller for d-sided dice seeded from the runtime.
func NewServerRoller(sides int) *ServerRoller {
	return &ServerRoller{Sides: sides, Rand: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (r *ServerRoller) Accept(numDice int, _ []int) Outcome {
	n := Clamp(numDice)
	results := make([]int, n)
	for i := range results {
		results[i] = r.Rand.IntN(r.Sides) + 1
	}
	return Outcome{NumDice: n, Results: results}
}

// Policy names accepted by ForPolicy.
const (
	PolicyClient = "client"
	PolicyServer = "server"
)

// ForPolicy returns the acceptor configured by name.
func ForPolicy(name string) (Acceptor, error) {
	switch name {
	case "", PolicyClient:
		return Trusting{}, nil
	case PolicyServer:
		return NewServerRoller(6), nil
	default:
		return nil, fmt.Errorf("unknown roll policy %q", name)
	}
}
